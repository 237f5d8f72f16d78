package ar0144

import (
	"context"
	"sync"
	"time"

	"github.com/mklimuk/camera"
)

// Default timing values. Reset assert time comes from the datasheet minimum
// of 1ms; the boot wait corresponds to bootClocks cycles of the input clock.
const (
	defaultResetAssert = 2 * time.Millisecond
	defaultPLLSettle   = 100 * time.Millisecond
	defaultExtClk      = 24_000_000

	// The sensor needs this many input clock cycles after reset release
	// before it responds on the control bus.
	bootClocks = 160_000

	minBootSettle = 10 * time.Millisecond
)

type Opts struct {
	Address     byte
	ExtClk      int // input clock frequency in Hz
	ResetAssert time.Duration
	PLLSettle   time.Duration
}

type Opt func(*Opts)

func WithAddress(address byte) Opt {
	return func(o *Opts) {
		o.Address = address
	}
}

// WithExtClk sets the input clock frequency used to derive the post-reset
// boot wait.
func WithExtClk(hz int) Opt {
	return func(o *Opts) {
		o.ExtClk = hz
	}
}

func WithResetAssert(d time.Duration) Opt {
	return func(o *Opts) {
		o.ResetAssert = d
	}
}

func WithPLLSettle(d time.Duration) Opt {
	return func(o *Opts) {
		o.PLLSettle = d
	}
}

// Sensor drives the AR0144 image sensor control plane: power sequencing,
// stream start/stop and output pad format negotiation. One mutex serializes
// every public operation end to end, so power management, streaming control
// and format queries may be issued from independent goroutines without ever
// observing a half-applied register sequence. Operations are not cancellable
// once started; a caller that times out externally must assume the device is
// in an indeterminate state and power cycle it.
//
// Typical usage:
//
//	s := ar0144.New(bus, reset)
//	err := s.SetPower(ctx, true)
//	err = s.SetStreaming(ctx, true)
type Sensor struct {
	mx    sync.Mutex
	ch    channel
	reset camera.ResetLine
	cfg   Opts

	active    formatState
	try       formatState
	tryInit   bool
	streaming bool
}

func New(bus camera.I2CBus, reset camera.ResetLine, opts ...Opt) *Sensor {
	config := Opts{
		Address:     DefaultAddress,
		ExtClk:      defaultExtClk,
		ResetAssert: defaultResetAssert,
		PLLSettle:   defaultPLLSettle,
	}
	for _, opt := range opts {
		opt(&config)
	}
	s := &Sensor{
		ch:    channel{transport: bus, addr: config.Address},
		reset: reset,
		cfg:   config,
	}
	s.active.initDefaults()
	return s
}

// bootSettle is the wait between reset release and the first bus transaction:
// bootClocks cycles of the input clock, never less than the 10ms margin the
// reference 24MHz timing used.
func (s *Sensor) bootSettle() time.Duration {
	d := time.Duration(bootClocks) * time.Second / time.Duration(s.cfg.ExtClk)
	if d < minBootSettle {
		d = minBootSettle
	}
	return d
}

// SetPower powers the sensor up or down. Power-up runs the full reset,
// identity verification and recommended-settings sequence; power-down only
// asserts the reset line and produces no bus traffic.
func (s *Sensor) SetPower(ctx context.Context, on bool) error {
	s.mx.Lock()
	defer s.mx.Unlock()
	if !on {
		return s.powerDown(ctx)
	}
	return s.powerUp(ctx)
}

// SetStreaming starts or stops pixel output. Asking to start while already
// streaming, or to stop while stopped, fails with ErrInvalidState; the legacy
// behavior of re-applying the table unconditionally is deliberately not kept.
// If the stop sequence fails the streaming flag stays set, since the device's
// actual output state is then unknown.
func (s *Sensor) SetStreaming(ctx context.Context, enable bool) error {
	s.mx.Lock()
	defer s.mx.Unlock()
	if enable {
		if s.streaming {
			return ErrInvalidState
		}
		if err := s.startStream(ctx); err != nil {
			return err
		}
		s.streaming = true
		return nil
	}
	if !s.streaming {
		return ErrInvalidState
	}
	if err := s.stopStream(ctx); err != nil {
		return err
	}
	s.streaming = false
	return nil
}

// Streaming reports whether the start-stream sequence has been fully applied.
func (s *Sensor) Streaming() bool {
	s.mx.Lock()
	defer s.mx.Unlock()
	return s.streaming
}

// state returns the format storage for the requested context. The Try
// context is initialized to the defaults on first use.
func (s *Sensor) state(which Which) *formatState {
	if which == Try {
		if !s.tryInit {
			s.try.initDefaults()
			s.tryInit = true
		}
		return &s.try
	}
	return &s.active
}

// EnumCode enumerates the supported pixel codes; only index 0 exists.
func (s *Sensor) EnumCode(index int) (PixelCode, error) {
	if index != 0 {
		return 0, ErrOutOfRange
	}
	return CodeSRGGB12, nil
}

// EnumFrameSize enumerates the frame sizes available for a pixel code. The
// sensor runs a single fixed mode, so the range collapses to 1280x800.
func (s *Sensor) EnumFrameSize(code PixelCode, index int) (FrameSizeRange, error) {
	if code != CodeSRGGB12 {
		return FrameSizeRange{}, ErrInvalidCode
	}
	if index != 0 {
		return FrameSizeRange{}, ErrOutOfRange
	}
	return FrameSizeRange{
		MinWidth:  frameWidth,
		MaxWidth:  frameWidth,
		MinHeight: frameHeight,
		MaxHeight: frameHeight,
	}, nil
}

// Format returns a copy of the pad format held by the requested context.
func (s *Sensor) Format(which Which) FrameFormat {
	s.mx.Lock()
	defer s.mx.Unlock()
	return s.state(which).format
}

// SetFormat negotiates the pad format for the requested context. The request
// is normalized to the fixed sensor mode and the stored value is returned,
// never the caller's request.
func (s *Sensor) SetFormat(which Which, req FrameFormat) FrameFormat {
	s.mx.Lock()
	defer s.mx.Unlock()
	return s.state(which).setFormat(req)
}

// Crop returns the selection rectangle for the requested context. Only
// TargetCrop is recognized; the sensor always outputs the full frame.
func (s *Sensor) Crop(which Which, target Target) (Rect, error) {
	if target != TargetCrop {
		return Rect{}, ErrUnsupportedTarget
	}
	s.mx.Lock()
	defer s.mx.Unlock()
	return s.state(which).crop, nil
}

// InitDefaults resets the requested context to the fixed default format and
// full-frame crop.
func (s *Sensor) InitDefaults(which Which) {
	s.mx.Lock()
	defer s.mx.Unlock()
	s.state(which).initDefaults()
}

// ReadReg reads a single 16-bit register. Intended for bring-up tooling.
func (s *Sensor) ReadReg(ctx context.Context, reg uint16) (uint16, error) {
	s.mx.Lock()
	defer s.mx.Unlock()
	return s.ch.readReg(ctx, reg)
}

// WriteReg writes a single 16-bit register. Intended for bring-up tooling.
func (s *Sensor) WriteReg(ctx context.Context, reg, val uint16) error {
	s.mx.Lock()
	defer s.mx.Unlock()
	return s.ch.writeReg(ctx, reg, val)
}
