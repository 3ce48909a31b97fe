package driver

import "time"

type SimDriverOpt func(*SimDriver)

func WithTickLength(tickLength time.Duration) SimDriverOpt {
	return func(d *SimDriver) {
		d.tickLength = tickLength
	}
}
