package audio

import (
	"errors"
	"io"
	"sync"

	"github.com/jwulff/onkey/internal/pitch"
)

// queueDepth bounds the window queue between the capture goroutine and
// the detector. When the detector falls behind, the oldest window is
// dropped: stale pitch data is worse than none.
const queueDepth = 8

// Update is one detector outcome pushed to the consumer.
type Update struct {
	// Result holds the detection when Pitched is true.
	Result pitch.Result
	// Pitched is false for silence or an unvoiced buffer.
	Pitched bool
	// Err is set once, when the source fails; the pump stops after.
	Err error
}

// Pump runs the capture-and-detect pipeline: a producer goroutine
// reads fixed-size windows from the source with 50% overlap and queues
// them; a single consumer runs the detector and emits Updates. The
// detector is stateless, so dropped windows never corrupt results.
type Pump struct {
	src Source
	det *pitch.Detector

	windows chan []float32
	updates chan Update
	stop    chan struct{}
	once    sync.Once
	wg      sync.WaitGroup

	mu     sync.Mutex
	srcErr error
}

// NewPump wires a source to a detector. The detector's buffer size
// sets the window length.
func NewPump(src Source, det *pitch.Detector) *Pump {
	return &Pump{
		src:     src,
		det:     det,
		windows: make(chan []float32, queueDepth),
		updates: make(chan Update, queueDepth),
		stop:    make(chan struct{}),
	}
}

// Updates returns the stream of detector outcomes. Closed when the
// pump stops.
func (p *Pump) Updates() <-chan Update {
	return p.updates
}

// Start launches the producer and consumer goroutines.
func (p *Pump) Start() {
	p.wg.Add(2)
	go p.produce()
	go p.consume()
}

// Stop ends both goroutines and waits for them. Safe to call more than
// once.
func (p *Pump) Stop() {
	p.once.Do(func() { close(p.stop) })
	p.wg.Wait()
}

func (p *Pump) produce() {
	defer p.wg.Done()
	defer close(p.windows)

	size := p.det.BufferSize()
	hop := size / 2
	window := make([]float32, 0, size)
	chunk := make([]float32, hop)

	for {
		select {
		case <-p.stop:
			return
		default:
		}

		n, err := p.src.ReadSamples(chunk)
		if n > 0 {
			window = append(window, chunk[:n]...)
		}
		if len(window) >= size {
			out := make([]float32, size)
			copy(out, window[len(window)-size:])
			p.enqueue(out)
			// Keep the second half for 50% overlap.
			window = append(window[:0], out[hop:]...)
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				p.setErr(err)
			}
			return
		}
	}
}

func (p *Pump) setErr(err error) {
	p.mu.Lock()
	if p.srcErr == nil {
		p.srcErr = err
	}
	p.mu.Unlock()
}

func (p *Pump) takeErr() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.srcErr
}

// enqueue adds a window, evicting the oldest when the queue is full.
func (p *Pump) enqueue(window []float32) {
	for {
		select {
		case p.windows <- window:
			return
		default:
			select {
			case <-p.windows:
			default:
			}
		}
	}
}

func (p *Pump) consume() {
	defer p.wg.Done()
	defer close(p.updates)

	for window := range p.windows {
		res, ok, err := p.det.Detect(window)
		if err != nil {
			// Window sizing is the pump's own contract with the
			// detector; a mismatch is a bug worth surfacing.
			p.setErr(err)
			break
		}
		p.emit(Update{Result: res, Pitched: ok})
	}
	if err := p.takeErr(); err != nil {
		p.emit(Update{Err: err})
	}
}

// emit pushes an update, evicting the oldest when the channel is full.
func (p *Pump) emit(u Update) {
	for {
		select {
		case <-p.stop:
			return
		case p.updates <- u:
			return
		default:
			select {
			case <-p.updates:
			default:
			}
		}
	}
}
