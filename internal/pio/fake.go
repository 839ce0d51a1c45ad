package pio

// FakeStateMachine is an in-memory StateMachine for tests that want to
// exercise the real FIFO spin code. PushLimit/PullLimit, when non-zero, make TryPush/TryPull
// refuse the first N-1 attempts before succeeding, to exercise the bound.
type FakeStateMachine struct {
	PushLimit int
	PullLimit int
	PullValue byte

	pushAttempts int
	pullAttempts int
	Pushed       []uint16
}

// TryPush refuses the first PushLimit-1 attempts, then records word and
// accepts it.
func (f *FakeStateMachine) TryPush(word uint16) bool {
	f.pushAttempts++
	if f.pushAttempts < f.PushLimit {
		return false
	}
	f.Pushed = append(f.Pushed, word)
	return true
}

// TryPull refuses the first PullLimit-1 attempts, then returns
// PullValue.
func (f *FakeStateMachine) TryPull() (byte, bool) {
	f.pullAttempts++
	if f.pullAttempts < f.PullLimit {
		return 0, false
	}
	return f.PullValue, true
}

// FakeSampleSource is an in-memory SampleSource fed from a fixed queue of
// samples, for exercising the passive sniffer without real hardware.
type FakeSampleSource struct {
	Samples []uint32
	next    int
}

// TryPullSample returns the next queued sample, or (0, false) once the
// queue is drained.
func (f *FakeSampleSource) TryPullSample() (uint32, bool) {
	if f.next >= len(f.Samples) {
		return 0, false
	}
	s := f.Samples[f.next]
	f.next++
	return s, true
}
