package morph

import "github.com/cwbudde/algo-zplane/dsp/zplane"

// Snapshot is an immutable copy of the pole set loaded by the most recent
// coefficient update, for visualization consumers.
type Snapshot struct {
	SampleRate float64
	Morph      float64
	Poles      [zplane.NumSections]zplane.PolePair
}

// PolePairs returns a copy of the most recently computed poles, one per
// cascade section, at the processing sample rate. Audio thread only; other
// goroutines must use LatestSnapshot.
func (f *Filter) PolePairs() [zplane.NumSections]zplane.PolePair {
	return f.poles
}

// LatestSnapshot returns the snapshot published by the last coefficient
// update. The filter is the single writer; any goroutine may read.
func (f *Filter) LatestSnapshot() (Snapshot, bool) {
	snap := f.snapshot.Load()
	if snap == nil {
		return Snapshot{}, false
	}

	return *snap, true
}

func (f *Filter) publishSnapshot() {
	f.snapshot.Store(&Snapshot{
		SampleRate: f.sampleRate,
		Morph:      f.effectiveMorph,
		Poles:      f.poles,
	})
}
