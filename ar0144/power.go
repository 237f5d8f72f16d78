package ar0144

import (
	"context"
	"fmt"
	"time"
)

// IdentityError reports a chip that answered the version query with an
// unexpected value, meaning the attached part is not one this driver's
// register tables were written for. It is fatal and never retried.
type IdentityError struct {
	Expected uint16
	Actual   uint16
}

func (e *IdentityError) Error() string {
	return fmt.Sprintf("ar0144: wrong chip id %#04x, expected %#04x", e.Actual, e.Expected)
}

// powerUp brings the sensor from reset to a verified, configured state:
// reset pulse with datasheet timing, chip identity check, then the vendor
// recommended settings. Must run under the instance lock.
func (s *Sensor) powerUp(ctx context.Context) error {
	if err := s.reset.Assert(ctx); err != nil {
		return fmt.Errorf("ar0144: could not assert reset: %w", err)
	}
	// more than 1ms
	time.Sleep(s.cfg.ResetAssert)
	if err := s.reset.Deassert(ctx); err != nil {
		return fmt.Errorf("ar0144: could not release reset: %w", err)
	}
	// the chip ignores the bus until its boot clocks have elapsed
	time.Sleep(s.bootSettle())

	id, err := s.ch.readReg(ctx, regChipVersion)
	if err != nil {
		return fmt.Errorf("ar0144: chip id read failed: %w", err)
	}
	if id != chipVersionVal {
		return &IdentityError{Expected: chipVersionVal, Actual: id}
	}
	if err := s.ch.apply(ctx, recommendedSettings); err != nil {
		return fmt.Errorf("ar0144: recommended settings failed: %w", err)
	}
	return nil
}

// powerDown holds the sensor in reset. No bus traffic is involved, so it can
// only fail if the reset line itself does. A device held in reset no longer
// drives its output, so the streaming flag is cleared.
func (s *Sensor) powerDown(ctx context.Context) error {
	if err := s.reset.Assert(ctx); err != nil {
		return fmt.Errorf("ar0144: could not assert reset: %w", err)
	}
	s.streaming = false
	return nil
}
