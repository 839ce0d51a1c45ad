// Package pio abstracts the RP2040 PIO state-machine FIFO seam used by the
// active-master and passive-sniffer transports, so the bridge logic can be
// exercised without real hardware.
package pio

// MaxPollAttempts bounds every FIFO spin. No operation in this package
// blocks unboundedly; exceeding this many polls is a timeout.
const MaxPollAttempts = 100_000

// TimeoutSentinel is substituted for a pull that exhausted its poll budget.
const TimeoutSentinel = 0xFF

// StateMachine is the minimal PIO state-machine surface the bridge needs:
// pushing a 16-bit word to the TX FIFO and pulling a byte from the RX
// FIFO, both as single non-blocking attempts so the caller owns the spin
// loop and its bound.
type StateMachine interface {
	// TryPush attempts to push word into the TX FIFO without blocking.
	// It reports whether the FIFO accepted it.
	TryPush(word uint16) bool

	// TryPull attempts to pull one byte from the RX FIFO without
	// blocking. It reports whether a byte was available.
	TryPull() (byte, bool)
}

// PushBounded spins up to MaxPollAttempts times attempting TryPush. It
// returns false, having consumed the full budget, if the FIFO never
// accepted the word.
func PushBounded(sm StateMachine, word uint16) bool {
	for i := 0; i < MaxPollAttempts; i++ {
		if sm.TryPush(word) {
			return true
		}
	}
	return false
}

// PullBounded spins up to MaxPollAttempts times attempting TryPull. On
// exhaustion it returns (TimeoutSentinel, false).
func PullBounded(sm StateMachine) (byte, bool) {
	for i := 0; i < MaxPollAttempts; i++ {
		if b, ok := sm.TryPull(); ok {
			return b, true
		}
	}
	return TimeoutSentinel, false
}

// SampleSource is a PIO state machine configured input-only across the
// full bus width, yielding one 32-bit sample word per RX FIFO entry. The
// passive sniffer transport never blocks on it: an empty FIFO is simply
// "nothing to report this tick", not a timeout.
type SampleSource interface {
	// TryPullSample attempts to pull one 32-bit sample from the RX
	// FIFO without blocking. It reports whether a sample was available.
	TryPullSample() (uint32, bool)
}
