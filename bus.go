package camera

import (
	"context"
	"fmt"
)

var ErrBusBusy = fmt.Errorf("I2C engine is busy (command not completed)")

type AddressableReader interface {
	ReadFromAddr(ctx context.Context, address byte, buffer []byte) error
}

type AddressableWriter interface {
	WriteToAddr(ctx context.Context, address byte, buffer []byte) error
	Release(ctx context.Context) error
}

// I2CBus is the control-plane transport a sensor driver talks through.
// Implementations perform a single addressed bus transaction per call.
type I2CBus interface {
	AddressableReader
	AddressableWriter
}

// ResetLine drives a sensor's hardware reset pin. The pin is active-low on
// the wire; implementations hide the polarity so that Assert always means
// "hold the device in reset".
type ResetLine interface {
	Assert(ctx context.Context) error
	Deassert(ctx context.Context) error
}
