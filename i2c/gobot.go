package i2c

import (
	"context"
	"fmt"

	"github.com/mklimuk/camera"
	gi2c "gobot.io/x/gobot/v2/drivers/i2c"
)

var _ camera.I2CBus = &GobotBus{}

// GobotBus adapts a gobot I2C connector to the camera transport interface so
// drivers can run on any platform gobot supports. Connections are opened
// lazily per device address and cached.
type GobotBus struct {
	connector gi2c.Connector
	busNr     int
	conns     map[byte]gi2c.Connection
}

func NewGobotBus(connector gi2c.Connector, busNr int) *GobotBus {
	return &GobotBus{
		connector: connector,
		busNr:     busNr,
		conns:     map[byte]gi2c.Connection{},
	}
}

func (b *GobotBus) connection(address byte) (gi2c.Connection, error) {
	if conn, ok := b.conns[address]; ok {
		return conn, nil
	}
	conn, err := b.connector.GetI2cConnection(int(address), b.busNr)
	if err != nil {
		return nil, fmt.Errorf("could not open i2c connection to %#x: %w", address, err)
	}
	b.conns[address] = conn
	return conn, nil
}

func (b *GobotBus) WriteToAddr(ctx context.Context, address byte, buffer []byte) error {
	conn, err := b.connection(address)
	if err != nil {
		return err
	}
	n, err := conn.Write(buffer)
	if err != nil {
		return fmt.Errorf("could not write to i2c device %#x: %w", address, err)
	}
	if n != len(buffer) {
		return fmt.Errorf("short write to i2c device %#x: %d of %d bytes", address, n, len(buffer))
	}
	return nil
}

func (b *GobotBus) ReadFromAddr(ctx context.Context, address byte, buffer []byte) error {
	conn, err := b.connection(address)
	if err != nil {
		return err
	}
	n, err := conn.Read(buffer)
	if err != nil {
		return fmt.Errorf("could not read from i2c device %#x: %w", address, err)
	}
	if n != len(buffer) {
		return fmt.Errorf("short read from i2c device %#x: %d of %d bytes", address, n, len(buffer))
	}
	return nil
}

func (b *GobotBus) Release(ctx context.Context) error {
	return nil
}

func (b *GobotBus) Close() error {
	var last error
	for addr, conn := range b.conns {
		if err := conn.Close(); err != nil {
			last = fmt.Errorf("could not close connection to %#x: %w", addr, err)
		}
	}
	b.conns = map[byte]gi2c.Connection{}
	return last
}
