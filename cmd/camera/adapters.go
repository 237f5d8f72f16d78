package main

import (
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/mklimuk/camera"
	"github.com/mklimuk/camera/adapter"
	"github.com/mklimuk/camera/ar0144"
	"github.com/mklimuk/camera/gpio"
	"github.com/mklimuk/camera/i2c"
	"github.com/urfave/cli/v2"
	"gobot.io/x/gobot/v2/platforms/raspi"
)

// flags shared by every command that talks to the sensor
var sensorFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    "adapter",
		Aliases: []string{"a"},
		Value:   "periph",
		Usage:   "bus adapter: periph, gobot or mcp2221",
	},
	&cli.StringFlag{
		Name:    "bus",
		Aliases: []string{"b"},
		Value:   "1",
		Usage:   "i2c bus (device name or number)",
	},
	&cli.StringFlag{
		Name:  "chip",
		Value: "gpiochip0",
		Usage: "gpio chip holding the reset line",
	},
	&cli.IntFlag{
		Name:  "line",
		Value: 17,
		Usage: "gpio line offset of the reset pin",
	},
	&cli.StringFlag{
		Name:  "addr",
		Value: "10",
		Usage: "sensor i2c address (hex)",
	},
	&cli.IntFlag{
		Name:  "extclk",
		Value: 24_000_000,
		Usage: "sensor input clock in Hz",
	},
}

// openSensor builds the bus and reset line selected by the flags and wraps
// them in a driver instance. The returned function releases the resources.
func openSensor(c *cli.Context) (*ar0144.Sensor, func(), error) {
	addrBytes, err := hex.DecodeString(c.String("addr"))
	if err != nil || len(addrBytes) != 1 {
		return nil, nil, fmt.Errorf("could not decode sensor address %q", c.String("addr"))
	}

	var bus camera.I2CBus
	var reset camera.ResetLine
	cleanup := func() {}

	switch c.String("adapter") {
	case "periph":
		pbus, err := i2c.NewGenericBus(c.String("bus"))
		if err != nil {
			return nil, nil, fmt.Errorf("adapter initialization error: %w", err)
		}
		line, err := gpio.NewResetLine(c.String("chip"), c.Int("line"))
		if err != nil {
			_ = pbus.Close()
			return nil, nil, fmt.Errorf("reset line error: %w", err)
		}
		bus, reset = pbus, line
		cleanup = func() {
			_ = line.Close()
			_ = pbus.Close()
		}
	case "gobot":
		busNr, err := strconv.Atoi(c.String("bus"))
		if err != nil {
			return nil, nil, fmt.Errorf("gobot adapter needs a numeric bus, got %q", c.String("bus"))
		}
		adaptor := raspi.NewAdaptor()
		if err := adaptor.Connect(); err != nil {
			return nil, nil, fmt.Errorf("adaptor connect error: %w", err)
		}
		gbus := i2c.NewGobotBus(adaptor, busNr)
		line, err := gpio.NewResetLine(c.String("chip"), c.Int("line"))
		if err != nil {
			_ = gbus.Close()
			_ = adaptor.Finalize()
			return nil, nil, fmt.Errorf("reset line error: %w", err)
		}
		bus, reset = gbus, line
		cleanup = func() {
			_ = line.Close()
			_ = gbus.Close()
			_ = adaptor.Finalize()
		}
	case "mcp2221":
		dev, err := adapter.Open()
		if err != nil {
			return nil, nil, fmt.Errorf("adapter initialization error: %w", err)
		}
		bus, reset = dev, dev.ResetPin(0)
		cleanup = func() {
			_ = dev.Close()
		}
	default:
		return nil, nil, fmt.Errorf("unknown adapter %q", c.String("adapter"))
	}

	sensor := ar0144.New(bus, reset,
		ar0144.WithAddress(addrBytes[0]),
		ar0144.WithExtClk(c.Int("extclk")),
	)
	return sensor, cleanup, nil
}
