package adapter

import (
	"context"
	"encoding/binary"
	"fmt"
	"sync"
	"time"

	"github.com/karalabe/hid"
	"github.com/mklimuk/camera"
)

const VendorID = 0x04D8
const ProductID = 0x00DD

// MCP2221 command codes used by this adapter.
const (
	cmdStatus       byte = 0x10
	cmdReadData     byte = 0x40
	cmdSetGPIO      byte = 0x50
	cmdI2CWrite     byte = 0x90
	cmdI2CReadStart byte = 0x91
)

var _ camera.I2CBus = &MCP2221{}

// MCP2221 is a USB HID to I2C bridge. Besides the I2C engine it exposes four
// GP pins; GPPin wraps one of them as a camera reset line so a sensor can be
// brought up from a bench host with nothing but this adapter.
type MCP2221 struct {
	mx           sync.Mutex
	dev          *hid.Device
	request      []byte
	response     []byte
	responseWait time.Duration
}

// Open finds the first MCP2221 on the USB bus and opens it.
func Open() (*MCP2221, error) {
	devs := hid.Enumerate(VendorID, ProductID)
	if len(devs) == 0 {
		return nil, fmt.Errorf("MCP2221 device not found")
	}
	dev, err := devs[0].Open()
	if err != nil {
		return nil, fmt.Errorf("error opening device: %w", err)
	}
	return &MCP2221{
		dev:          dev,
		request:      make([]byte, 64),
		response:     make([]byte, 64),
		responseWait: 50 * time.Millisecond,
	}, nil
}

func (d *MCP2221) Close() error {
	d.mx.Lock()
	defer d.mx.Unlock()
	return d.dev.Close()
}

func (d *MCP2221) WriteToAddr(ctx context.Context, address byte, buffer []byte) error {
	d.mx.Lock()
	defer d.mx.Unlock()
	d.resetBuffers()
	d.request[0] = cmdI2CWrite
	binary.LittleEndian.PutUint16(d.request[1:3], uint16(len(buffer)))
	d.request[3] = address << 1
	copy(d.request[4:], buffer)
	if err := d.send(); err != nil {
		return fmt.Errorf("write to %#x failed: %w", address, err)
	}
	if d.response[1] == 0x01 {
		return camera.ErrBusBusy
	}
	return nil
}

func (d *MCP2221) ReadFromAddr(ctx context.Context, address byte, buffer []byte) error {
	d.mx.Lock()
	defer d.mx.Unlock()
	d.resetBuffers()
	d.request[0] = cmdI2CReadStart
	binary.LittleEndian.PutUint16(d.request[1:3], uint16(len(buffer)))
	d.request[3] = address<<1 + 1
	if err := d.send(); err != nil {
		return fmt.Errorf("bus read from %#x failed: %w", address, err)
	}
	d.request[0] = cmdReadData
	resetBuffer(d.response)
	if err := d.send(); err != nil {
		return fmt.Errorf("error getting read data from adapter: %w", err)
	}
	if d.response[1] == 0x41 {
		return fmt.Errorf("error reading the I2C slave data from the I2C engine")
	}
	if d.response[3] == 127 || int(d.response[3]) != len(buffer) {
		return fmt.Errorf("invalid data size byte; expected %d, got %d", len(buffer), d.response[3])
	}
	copy(buffer, d.response[4:])
	return nil
}

// Release cancels a pending transfer and frees the I2C engine.
func (d *MCP2221) Release(ctx context.Context) error {
	d.mx.Lock()
	defer d.mx.Unlock()
	d.resetBuffers()
	d.request[0] = cmdStatus
	d.request[2] = 0x10
	if err := d.send(); err != nil {
		return fmt.Errorf("bus release failed: %w", err)
	}
	return nil
}

// setGPIO drives one GP pin as an output with the given value.
func (d *MCP2221) setGPIO(pin int, value byte) error {
	if pin < 0 || pin > 3 {
		return fmt.Errorf("invalid GP pin %d", pin)
	}
	d.mx.Lock()
	defer d.mx.Unlock()
	d.resetBuffers()
	d.request[0] = cmdSetGPIO
	// each pin occupies a 4-byte group: alter output, output value, alter
	// direction, direction (0 = output)
	base := 2 + pin*4
	d.request[base] = 0xFF
	d.request[base+1] = value
	d.request[base+2] = 0xFF
	d.request[base+3] = 0x00
	if err := d.send(); err != nil {
		return fmt.Errorf("set GP%d failed: %w", pin, err)
	}
	return nil
}

// send issues the prepared 64-byte request and reads the response.
func (d *MCP2221) send() error {
	n, err := d.dev.Write(d.request)
	if err != nil {
		return fmt.Errorf("could not write request: %w", err)
	}
	if n != 64 {
		return fmt.Errorf("short write: %d", n)
	}
	time.Sleep(d.responseWait)
	n, err = d.dev.Read(d.response)
	if err != nil {
		return fmt.Errorf("could not read response: %w", err)
	}
	if n != 64 {
		return fmt.Errorf("short read: %d", n)
	}
	return nil
}

func (d *MCP2221) resetBuffers() {
	resetBuffer(d.request)
	resetBuffer(d.response)
}

func resetBuffer(buf []byte) {
	for i := range buf {
		buf[i] = 0x00
	}
}

var _ camera.ResetLine = &GPPin{}

// GPPin exposes one of the adapter's GP pins as a reset line. The sensor
// reset input is active-low, so asserting reset drives the pin low.
type GPPin struct {
	adapter *MCP2221
	pin     int
}

func (d *MCP2221) ResetPin(pin int) *GPPin {
	return &GPPin{adapter: d, pin: pin}
}

func (p *GPPin) Assert(ctx context.Context) error {
	return p.adapter.setGPIO(p.pin, 0)
}

func (p *GPPin) Deassert(ctx context.Context) error {
	return p.adapter.setGPIO(p.pin, 1)
}
