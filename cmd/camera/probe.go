package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mklimuk/camera/ar0144"
	"github.com/mklimuk/camera/cmd/camera/console"
	"github.com/urfave/cli/v2"
)

var probeCmd = cli.Command{
	Name:  "probe",
	Usage: "power the sensor up and verify its identity",
	Flags: append([]cli.Flag{
		&cli.BoolFlag{Name: "off", Usage: "power the sensor back down afterwards"},
	}, sensorFlags...),
	Action: func(c *cli.Context) error {
		sensor, cleanup, err := openSensor(c)
		if err != nil {
			return console.Exit(1, "%s", console.Red(err))
		}
		defer cleanup()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err = sensor.SetPower(ctx, true)
		if err != nil {
			var iderr *ar0144.IdentityError
			if errors.As(err, &iderr) {
				return console.Exit(1, "unexpected chip id %s (expected %s): wrong or misconfigured device",
					console.Red(fmt.Sprintf("%#04x", iderr.Actual)), console.White(fmt.Sprintf("%#04x", iderr.Expected)))
			}
			return console.Exit(1, "power up failed: %s", console.Red(err))
		}
		console.PInfof(console.PictoCamera, "AR0144 detected at address %s", console.White(c.String("addr")))
		active := sensor.Format(ar0144.Active)
		console.Infof("active format: %dx%d", active.Width, active.Height)
		if c.Bool("off") {
			if err := sensor.SetPower(ctx, false); err != nil {
				return console.Exit(1, "power down failed: %s", console.Red(err))
			}
			console.PInfof(console.PictoFinish, "sensor powered down")
		}
		return nil
	},
}
