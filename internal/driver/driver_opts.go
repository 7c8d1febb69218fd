package driver

import "time"

type GameDriverOpt func(*GameDriver)

func WithTickLength(tickLength time.Duration) GameDriverOpt {
	return func(d *GameDriver) {
		d.tickLength = tickLength
	}
}

// WithStopOn makes a tick error matching err a clean shutdown. fn runs
// once when that happens.
func WithStopOn(err error, fn func()) GameDriverOpt {
	return func(d *GameDriver) {
		d.stopErr = err
		d.onStop = fn
	}
}
