package gpio

import (
	"context"
	"fmt"

	"github.com/mklimuk/camera"
	"github.com/warthog618/go-gpiocdev"
)

var _ camera.ResetLine = &ResetLine{}

// ResetLine drives a sensor reset pin through the gpio character device. The
// pin is requested active-low and held asserted, the state a sensor should be
// in before power sequencing starts.
type ResetLine struct {
	line *gpiocdev.Line
}

func NewResetLine(chip string, offset int) (*ResetLine, error) {
	line, err := gpiocdev.RequestLine(chip, offset, gpiocdev.AsOutput(1), gpiocdev.AsActiveLow)
	if err != nil {
		return nil, fmt.Errorf("could not request reset line %s:%d: %w", chip, offset, err)
	}
	return &ResetLine{line: line}, nil
}

func (r *ResetLine) Assert(ctx context.Context) error {
	if err := r.line.SetValue(1); err != nil {
		return fmt.Errorf("could not assert reset line: %w", err)
	}
	return nil
}

func (r *ResetLine) Deassert(ctx context.Context) error {
	if err := r.line.SetValue(0); err != nil {
		return fmt.Errorf("could not release reset line: %w", err)
	}
	return nil
}

func (r *ResetLine) Close() error {
	return r.line.Close()
}
