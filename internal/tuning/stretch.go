package tuning

// StretchCurve approximates the Railsback curve: octaves are widened
// outward from the temperament region to compensate for string
// inharmonicity. Offsets are in cents, keyed by MIDI number, with
// piecewise-linear interpolation between anchors.
type StretchCurve struct {
	anchors []stretchAnchor
}

type stretchAnchor struct {
	midi  int
	cents float64
}

// NewStretchCurve returns the default curve: -20 cents at A0, flat
// through the middle of the keyboard, +20 cents at C8.
func NewStretchCurve() *StretchCurve {
	return &StretchCurve{
		anchors: []stretchAnchor{
			{MidiA0, -20},
			{MidiF3, 0},
			{MidiA4, 0},
			{77, 0}, // F5
			{MidiC8, 20},
		},
	}
}

// OffsetFor returns the stretch offset in cents for a MIDI note.
// Outside the anchor range the nearest anchor's value is used.
func (c *StretchCurve) OffsetFor(midi int) float64 {
	first := c.anchors[0]
	if midi <= first.midi {
		return first.cents
	}
	last := c.anchors[len(c.anchors)-1]
	if midi >= last.midi {
		return last.cents
	}
	for i := 1; i < len(c.anchors); i++ {
		hi := c.anchors[i]
		if midi > hi.midi {
			continue
		}
		lo := c.anchors[i-1]
		span := float64(hi.midi - lo.midi)
		frac := float64(midi-lo.midi) / span
		return lo.cents + frac*(hi.cents-lo.cents)
	}
	return last.cents
}
