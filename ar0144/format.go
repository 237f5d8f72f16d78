package ar0144

import "fmt"

// PixelCode identifies the pixel layout on the sensor's output pad, using the
// media bus format numbering.
type PixelCode uint32

// CodeSRGGB12 is 12-bit Bayer RGGB, one pixel per sample. It is the only
// layout this sensor produces in the supported configuration.
const CodeSRGGB12 PixelCode = 0x3012

// Field describes interlacing of the output frames.
type Field int

// FieldNone means progressive output; the sensor never interlaces.
const FieldNone Field = iota

// Colorspace of the output data.
type Colorspace int

const ColorspaceSRGB Colorspace = iota

// Fixed output geometry. The sensor is operated in a single mode; format
// negotiation never yields any other size.
const (
	frameWidth  = 1280
	frameHeight = 800
)

// Which selects between the committed device configuration and a caller's
// negotiation draft. The two are stored independently so probing a format in
// the Try context never disturbs what the device is actually doing.
type Which int

const (
	Active Which = iota
	Try
)

// Target selects a rectangle for selection queries. Only the crop rectangle
// is supported.
type Target int

const TargetCrop Target = iota

var (
	ErrOutOfRange        = fmt.Errorf("ar0144: enumeration index out of range")
	ErrInvalidCode       = fmt.Errorf("ar0144: unsupported pixel code")
	ErrUnsupportedTarget = fmt.Errorf("ar0144: unsupported selection target")
)

// FrameFormat describes the output pad format.
type FrameFormat struct {
	Width      int        `yaml:"width"`
	Height     int        `yaml:"height"`
	Code       PixelCode  `yaml:"code"`
	Field      Field      `yaml:"field"`
	Colorspace Colorspace `yaml:"colorspace"`
}

// Rect is a crop rectangle on the pixel array.
type Rect struct {
	Left   int `yaml:"left"`
	Top    int `yaml:"top"`
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// FrameSizeRange bounds the frame sizes available for a pixel code. Min and
// max coincide here since the mode is fixed.
type FrameSizeRange struct {
	MinWidth  int `yaml:"min_width"`
	MaxWidth  int `yaml:"max_width"`
	MinHeight int `yaml:"min_height"`
	MaxHeight int `yaml:"max_height"`
}

func defaultFormat() FrameFormat {
	return FrameFormat{
		Width:      frameWidth,
		Height:     frameHeight,
		Code:       CodeSRGGB12,
		Field:      FieldNone,
		Colorspace: ColorspaceSRGB,
	}
}

// formatState holds the pad format and crop for one context (Active or Try).
type formatState struct {
	format FrameFormat
	crop   Rect
}

func (s *formatState) initDefaults() {
	s.format = defaultFormat()
	s.crop = Rect{Left: 0, Top: 0, Width: frameWidth, Height: frameHeight}
}

// setFormat stores the fixed sensor mode regardless of what was requested and
// returns the value actually stored. Negotiation against a fixed-mode sensor
// is informational only.
func (s *formatState) setFormat(_ FrameFormat) FrameFormat {
	s.initDefaults()
	return s.format
}
