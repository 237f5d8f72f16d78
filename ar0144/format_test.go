package ar0144

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnumCode(t *testing.T) {
	sensor := New(nil, nil)

	code, err := sensor.EnumCode(0)
	assert.NoError(t, err)
	assert.Equal(t, CodeSRGGB12, code)

	for _, index := range []int{-1, 1, 5} {
		t.Run(fmt.Sprintf("index %d", index), func(t *testing.T) {
			_, err := sensor.EnumCode(index)
			assert.ErrorIs(t, err, ErrOutOfRange)
		})
	}
}

func TestEnumFrameSize(t *testing.T) {
	sensor := New(nil, nil)

	sizes, err := sensor.EnumFrameSize(CodeSRGGB12, 0)
	assert.NoError(t, err)
	assert.Equal(t, FrameSizeRange{MinWidth: 1280, MaxWidth: 1280, MinHeight: 800, MaxHeight: 800}, sizes)

	_, err = sensor.EnumFrameSize(PixelCode(0x3001), 0)
	assert.ErrorIs(t, err, ErrInvalidCode)

	_, err = sensor.EnumFrameSize(CodeSRGGB12, 1)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestSetFormat_InputInvariant(t *testing.T) {
	tests := []struct {
		name string
		req  FrameFormat
	}{
		{name: "zero request", req: FrameFormat{}},
		{name: "oversized", req: FrameFormat{Width: 4096, Height: 2160, Code: CodeSRGGB12}},
		{name: "wrong code", req: FrameFormat{Width: 1280, Height: 800, Code: PixelCode(0x300A)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sensor := New(nil, nil)
			for _, which := range []Which{Active, Try} {
				got := sensor.SetFormat(which, tt.req)
				assert.Equal(t, defaultFormat(), got)
				assert.Equal(t, defaultFormat(), sensor.Format(which))
			}
		})
	}
}

func TestFormatContexts_Independent(t *testing.T) {
	sensor := New(nil, nil)

	// negotiating in the Try context must leave the Active context alone
	sensor.SetFormat(Try, FrameFormat{Width: 1, Height: 1})
	assert.Equal(t, defaultFormat(), sensor.Format(Active))

	crop, err := sensor.Crop(Active, TargetCrop)
	assert.NoError(t, err)
	assert.Equal(t, Rect{Left: 0, Top: 0, Width: 1280, Height: 800}, crop)

	// and the other way around
	sensor.SetFormat(Active, FrameFormat{Width: 99, Height: 99})
	assert.Equal(t, defaultFormat(), sensor.Format(Try))
}

func TestCrop(t *testing.T) {
	sensor := New(nil, nil)

	for _, which := range []Which{Active, Try} {
		crop, err := sensor.Crop(which, TargetCrop)
		assert.NoError(t, err)
		assert.Equal(t, Rect{Left: 0, Top: 0, Width: 1280, Height: 800}, crop)
	}

	_, err := sensor.Crop(Active, Target(7))
	assert.ErrorIs(t, err, ErrUnsupportedTarget)
}

func TestInitDefaults(t *testing.T) {
	sensor := New(nil, nil)
	sensor.InitDefaults(Try)
	assert.Equal(t, defaultFormat(), sensor.Format(Try))
	assert.Equal(t, defaultFormat(), sensor.Format(Active))
}
