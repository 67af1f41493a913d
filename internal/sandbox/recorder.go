package sandbox

import (
	"github.com/san-kum/partsim/internal/physics"
)

const recorderCapacity = 16384

// FrameRecord is one captured simulation frame.
type FrameRecord struct {
	Time   float32
	Count  int
	Energy float64
	Y      float64
	VY     float64
}

// Recorder keeps a bounded in-memory history of simulation frames. The Y
// and VY columns track the first particle, which is the dropped particle
// in the single-spawn scenarios the analysis commands study. When the
// history is full the oldest frame is dropped.
type Recorder struct {
	frames []FrameRecord
	cap    int
}

func NewRecorder() *Recorder {
	return &Recorder{
		frames: make([]FrameRecord, 0, 1024),
		cap:    recorderCapacity,
	}
}

func (r *Recorder) Capture(w *physics.World, t float32) {
	rec := FrameRecord{
		Time:   t,
		Count:  len(w.Particles()),
		Energy: worldKineticEnergy(w),
	}
	if ps := w.Particles(); len(ps) > 0 {
		first := &ps[0]
		rec.Y = float64(first.Pos[1])
		rec.VY = float64(w.VelocityOf(first)[1])
	}

	r.frames = append(r.frames, rec)
	if len(r.frames) > r.cap {
		r.frames = r.frames[1:]
	}
}

func (r *Recorder) Len() int {
	return len(r.frames)
}

func (r *Recorder) Frames() []FrameRecord {
	return r.frames
}

func (r *Recorder) Reset() {
	r.frames = r.frames[:0]
}

func (r *Recorder) EnergySeries() []float64 {
	out := make([]float64, len(r.frames))
	for i, f := range r.frames {
		out[i] = f.Energy
	}
	return out
}

func (r *Recorder) YSeries() []float64 {
	out := make([]float64, len(r.frames))
	for i, f := range r.frames {
		out[i] = f.Y
	}
	return out
}

func (r *Recorder) VYSeries() []float64 {
	out := make([]float64, len(r.frames))
	for i, f := range r.frames {
		out[i] = f.VY
	}
	return out
}

// worldKineticEnergy sums 1/2 m v^2 over all particles using the mode's
// kinematic velocity.
func worldKineticEnergy(w *physics.World) float64 {
	total := 0.0
	particles := w.Particles()
	for i := range particles {
		p := &particles[i]
		v := w.VelocityOf(p)
		total += 0.5 * float64(p.Mass) * float64(v.LenSqr())
	}
	return total
}
