package tuning

// Resolver turns an order entry into the absolute target frequency for
// its tune step, combining temperament, stretch, and (in quick mode)
// the piano's own measured baseline.
type Resolver struct {
	Temperament Temperament
	Stretch     *StretchCurve
	Mode        Mode
	// OffsetCents is the piano's deviation from concert pitch,
	// measured during calibration. Quick mode only.
	OffsetCents float64
	// Profile supplies per-note measured baselines. Quick mode only;
	// may be nil.
	Profile *PianoProfile
}

// NewResolver builds a resolver for a session.
func NewResolver(s *Session, profile *PianoProfile) *Resolver {
	return &Resolver{
		Temperament: NewTemperament(s.A4Reference),
		Stretch:     NewStretchCurve(),
		Mode:        s.Mode,
		OffsetCents: s.PianoOffsetCents,
		Profile:     profile,
	}
}

// Target resolves the target frequency for an entry.
//
// Concert mode: the equal-temperament frequency shifted by the stretch
// curve. Octave-phase entries are expressed relative to their
// reference (reference target doubled or halved, adjusted by the
// stretch delta), which reduces to the same value but keeps the
// octave-relative procedure honest.
//
// Quick mode: the equal-temperament frequency shifted by the piano's
// measured pitch center; a note the profile has measured keeps its own
// baseline instead. Stretch is not applied — it is meaningless without
// knowing the instrument's actual inharmonicity.
func (r *Resolver) Target(e Entry) float64 {
	if r.Mode == ModeQuick {
		return r.quickTarget(e.Note)
	}
	base := r.Temperament.Frequency(e.Note.Midi)
	if e.Reference == nil {
		return FrequencyFromCents(base, r.Stretch.OffsetFor(e.Note.Midi))
	}
	refTarget := FrequencyFromCents(
		r.Temperament.Frequency(e.Reference.Midi),
		r.Stretch.OffsetFor(e.Reference.Midi),
	)
	var octave float64
	if e.Phase == PhaseOctaveUp {
		octave = refTarget * 2
	} else {
		octave = refTarget / 2
	}
	delta := r.Stretch.OffsetFor(e.Note.Midi) - r.Stretch.OffsetFor(e.Reference.Midi)
	return FrequencyFromCents(octave, delta)
}

func (r *Resolver) quickTarget(n Note) float64 {
	base := r.Temperament.Frequency(n.Midi)
	if r.Profile != nil {
		if p, ok := r.Profile.Lookup(n.Midi); ok {
			return FrequencyFromCents(base, p.Cents)
		}
	}
	return FrequencyFromCents(base, r.OffsetCents)
}
