package ar0144

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mklimuk/camera/gpio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func testSensor(bus *MockI2CBus, reset *gpio.MockResetLine) *Sensor {
	return New(bus, reset,
		WithResetAssert(time.Millisecond),
		WithPLLSettle(time.Millisecond),
	)
}

func TestPowerUp_Success(t *testing.T) {
	bus := new(MockI2CBus)
	reset := gpio.NewMockResetLine()
	sensor := testSensor(bus, reset)
	ctx := context.Background()

	bus.On("WriteToAddr", mock.Anything, byte(DefaultAddress), mock.Anything).
		Return(nil)
	bus.On("ReadFromAddr", mock.Anything, byte(DefaultAddress), mock.Anything).
		Return(idResponse(chipVersionVal), nil).Once()

	err := sensor.SetPower(ctx, true)
	assert.NoError(t, err)

	// reset pulse: asserted, then released
	assert.Equal(t, []bool{true, false}, reset.Transitions())
	assert.False(t, reset.Asserted())

	// the full recommended settings table reached the device, in order
	writes := regWrites(bus)
	assert.Len(t, writes, len(recommendedSettings.entries))
	assert.Equal(t, [2]uint16{0x3ED6, 0x3CB5}, writes[0])
	assert.Equal(t, [2]uint16{0x317C, 0x0480}, writes[len(writes)-1])
}

func TestPowerUp_IdentityMismatch(t *testing.T) {
	bus := new(MockI2CBus)
	reset := gpio.NewMockResetLine()
	sensor := testSensor(bus, reset)
	ctx := context.Background()

	bus.On("WriteToAddr", mock.Anything, byte(DefaultAddress), mock.Anything).
		Return(nil)
	bus.On("ReadFromAddr", mock.Anything, byte(DefaultAddress), mock.Anything).
		Return(idResponse(0x2600), nil).Once()

	err := sensor.SetPower(ctx, true)
	assert.Error(t, err)

	var iderr *IdentityError
	assert.ErrorAs(t, err, &iderr)
	assert.Equal(t, uint16(0x1356), iderr.Expected)
	assert.Equal(t, uint16(0x2600), iderr.Actual)

	// nothing from the recommended settings table was written
	assert.Empty(t, regWrites(bus))
}

func TestPowerUp_IDReadFailure(t *testing.T) {
	bus := new(MockI2CBus)
	reset := gpio.NewMockResetLine()
	sensor := testSensor(bus, reset)
	ctx := context.Background()

	bus.On("WriteToAddr", mock.Anything, byte(DefaultAddress), mock.Anything).
		Return(nil)
	bus.On("ReadFromAddr", mock.Anything, byte(DefaultAddress), mock.Anything).
		Return(nil, errors.New("i2c read failed")).Once()

	err := sensor.SetPower(ctx, true)
	assert.Error(t, err)

	var buserr *BusError
	assert.ErrorAs(t, err, &buserr)
	assert.Equal(t, regChipVersion, buserr.Addr)
	assert.Empty(t, regWrites(bus))
}

func TestPowerUp_RecommendedSettingsFailure(t *testing.T) {
	bus := new(MockI2CBus)
	reset := gpio.NewMockResetLine()
	sensor := testSensor(bus, reset)
	ctx := context.Background()

	// first write is the id read address phase, then two table entries
	// succeed and the third fails
	bus.On("WriteToAddr", mock.Anything, byte(DefaultAddress), mock.Anything).
		Return(nil).Times(3)
	bus.On("WriteToAddr", mock.Anything, byte(DefaultAddress), mock.Anything).
		Return(errors.New("i2c write failed")).Once()
	bus.On("ReadFromAddr", mock.Anything, byte(DefaultAddress), mock.Anything).
		Return(idResponse(chipVersionVal), nil).Once()

	err := sensor.SetPower(ctx, true)
	assert.Error(t, err)

	var seqerr *SequenceError
	assert.ErrorAs(t, err, &seqerr)
	assert.Equal(t, "recommended-settings", seqerr.Table)
	assert.Equal(t, 2, seqerr.Index)
	assert.Len(t, regWrites(bus), 3)
	bus.AssertExpectations(t)
}

func TestPowerDown(t *testing.T) {
	bus := new(MockI2CBus)
	reset := gpio.NewMockResetLine()
	sensor := testSensor(bus, reset)
	ctx := context.Background()

	err := sensor.SetPower(ctx, false)
	assert.NoError(t, err)
	assert.True(t, reset.Asserted())
	// power down produces no bus traffic
	assert.Empty(t, bus.Calls)
}
