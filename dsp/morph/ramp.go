package morph

// ramp advances a control value linearly toward a target over a fixed number
// of samples. Coefficient-rate controls tick once per block, audio-rate
// controls once per sample; both reach the target exactly and then report
// settled so callers can skip recomputation.
type ramp struct {
	current float64
	target  float64
	step    float64
	settled bool
}

func newRamp(value float64) ramp {
	return ramp{current: value, target: value, settled: true}
}

// setTarget starts a linear ramp toward target lasting lengthSamples. A
// non-positive length snaps immediately.
func (r *ramp) setTarget(target float64, lengthSamples int) {
	if target == r.current {
		r.snapTo(target)
		return
	}

	r.target = target
	if lengthSamples <= 0 {
		r.snapTo(target)
		return
	}

	r.step = (target - r.current) / float64(lengthSamples)
	r.settled = false
}

// next advances the ramp by one sample and returns the new value.
func (r *ramp) next() float64 {
	if r.settled {
		return r.current
	}

	r.current += r.step
	if r.reachedTarget() {
		r.current = r.target
		r.settled = true
	}

	return r.current
}

// tickBlock advances the ramp by n samples at once and returns the new
// value. Used for controls that only take effect at block boundaries.
func (r *ramp) tickBlock(n int) float64 {
	if r.settled || n <= 0 {
		return r.current
	}

	r.current += r.step * float64(n)
	if r.reachedTarget() {
		r.current = r.target
		r.settled = true
	}

	return r.current
}

// snapTo jumps to value immediately and marks the ramp settled.
func (r *ramp) snapTo(value float64) {
	r.current = value
	r.target = value
	r.step = 0
	r.settled = true
}

func (r *ramp) reachedTarget() bool {
	return (r.step > 0 && r.current >= r.target) || (r.step < 0 && r.current <= r.target)
}
