package ar0144

import (
	"context"
	"encoding/binary"
	"fmt"

	"github.com/mklimuk/camera"
)

// BusError reports a single failed register transaction. It carries the
// register address (and value, for writes) so a failure can be traced to a
// wiring fault, a mis-addressed device or a one-off bus glitch.
type BusError struct {
	Addr  uint16
	Value uint16
	Read  bool
	cause error
}

func (e *BusError) Error() string {
	if e.Read {
		return fmt.Sprintf("ar0144: read reg %#04x failed: %v", e.Addr, e.cause)
	}
	return fmt.Sprintf("ar0144: write reg %#04x=%#04x failed: %v", e.Addr, e.Value, e.cause)
}

func (e *BusError) Unwrap() error { return e.cause }

// channel performs 16-bit register transactions on the control bus. Register
// addresses and values travel big-endian on the wire.
type channel struct {
	transport camera.I2CBus
	addr      byte
}

// writeReg performs one combined transaction carrying address and value.
func (c *channel) writeReg(ctx context.Context, reg, val uint16) error {
	var buf [4]byte
	binary.BigEndian.PutUint16(buf[0:2], reg)
	binary.BigEndian.PutUint16(buf[2:4], val)
	if err := c.transport.WriteToAddr(ctx, c.addr, buf[:]); err != nil {
		return &BusError{Addr: reg, Value: val, cause: err}
	}
	return nil
}

// readReg writes the register address, then reads the two value bytes back.
func (c *channel) readReg(ctx context.Context, reg uint16) (uint16, error) {
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], reg)
	if err := c.transport.WriteToAddr(ctx, c.addr, buf[:]); err != nil {
		return 0, &BusError{Addr: reg, Read: true, cause: err}
	}
	if err := c.transport.ReadFromAddr(ctx, c.addr, buf[:]); err != nil {
		return 0, &BusError{Addr: reg, Read: true, cause: err}
	}
	return binary.BigEndian.Uint16(buf[:]), nil
}
