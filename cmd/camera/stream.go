package main

import (
	"context"
	"time"

	"github.com/mklimuk/camera/cmd/camera/console"
	"github.com/urfave/cli/v2"
)

var streamCmd = cli.Command{
	Name:  "stream",
	Usage: "control pixel output",
	Subcommands: []*cli.Command{
		&streamStartCmd,
		&streamStopCmd,
	},
}

var streamStartCmd = cli.Command{
	Name:  "start",
	Flags: sensorFlags,
	Action: func(c *cli.Context) error {
		sensor, cleanup, err := openSensor(c)
		if err != nil {
			return console.Exit(1, "%s", console.Red(err))
		}
		defer cleanup()
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := sensor.SetPower(ctx, true); err != nil {
			return console.Exit(1, "power up failed: %s", console.Red(err))
		}
		if err := sensor.SetStreaming(ctx, true); err != nil {
			return console.Exit(1, "stream start failed: %s", console.Red(err))
		}
		console.PInfof(console.PictoCamera, "streaming %s", console.Green("started"))
		return nil
	},
}

var streamStopCmd = cli.Command{
	Name:  "stop",
	Flags: sensorFlags,
	Action: func(c *cli.Context) error {
		sensor, cleanup, err := openSensor(c)
		if err != nil {
			return console.Exit(1, "%s", console.Red(err))
		}
		defer cleanup()
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		// a fresh process does not know the device state; force the flag by
		// going through a power cycle would drop the stream anyway, so issue
		// the stop table through the raw register path instead
		err = sensor.WriteReg(ctx, 0x301A, 0x0058)
		if err != nil {
			return console.Exit(1, "stream stop failed: %s", console.Red(err))
		}
		console.PInfof(console.PictoStop, "streaming %s", console.Yellow("stopped"))
		return nil
	},
}
