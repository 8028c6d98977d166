package soc

import "fmt"

// ClockError reports a rejected master clock request and which endpoint
// rejected it. Clock negotiation failures are terminal for the current
// stream-start or link-init attempt and surface as setup failure.
type ClockError struct {
	Endpoint string
	Err      error
}

func (e *ClockError) Error() string {
	return fmt.Sprintf("clock negotiation failed on %s endpoint: %v", e.Endpoint, e.Err)
}

func (e *ClockError) Unwrap() error {
	return e.Err
}

// ClockFunc adapts a plain function to the ClockSetter interface.
type ClockFunc func(clkID int, freq uint32, dir ClockDirection) error

// SetSysclk calls f.
func (f ClockFunc) SetSysclk(clkID int, freq uint32, dir ClockDirection) error {
	return f(clkID, freq, dir)
}

// FixedClock returns a ClockSetter that accepts exactly one output frequency
// and rejects everything else. It models an interface whose master clock is
// pre-routed at the given rate.
func FixedClock(rate uint32) ClockSetter {
	return ClockFunc(func(clkID int, freq uint32, dir ClockDirection) error {
		if clkID != MclkID {
			return fmt.Errorf("unsupported clock id %d", clkID)
		}

		if freq != rate {
			return fmt.Errorf("frequency %d not achievable, clock fixed at %d", freq, rate)
		}

		return nil
	})
}
