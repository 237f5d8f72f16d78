package ar0144

import (
	"context"
	"fmt"
	"time"
)

// ErrInvalidState is returned when a streaming transition does not match the
// current state: starting while streaming or stopping while stopped.
var ErrInvalidState = fmt.Errorf("ar0144: invalid streaming state for requested transition")

// startStream applies the configuration tables in their required order and
// finally enables pixel output. A failure anywhere aborts the sequence and
// leaves the device partially configured; the recovery path is a power
// cycle. Must run under the instance lock.
func (s *Sensor) startStream(ctx context.Context) error {
	if err := s.ch.apply(ctx, pll27MHz); err != nil {
		return err
	}
	// conservative PLL lock wait; the part has no usable lock status bit in
	// this configuration
	time.Sleep(s.cfg.PLLSettle)

	for _, table := range []regTable{
		mipi2Lane12Bit,
		mode1280x800x60,
		contextB2x2Binning,
		embeddedDataStats,
		streamOn,
	} {
		if err := s.ch.apply(ctx, table); err != nil {
			return err
		}
	}
	return nil
}

// stopStream disables pixel output. Must run under the instance lock.
func (s *Sensor) stopStream(ctx context.Context) error {
	return s.ch.apply(ctx, streamOff)
}
