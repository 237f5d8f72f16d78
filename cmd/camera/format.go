package main

import (
	"os"

	"github.com/mklimuk/camera/ar0144"
	"github.com/mklimuk/camera/cmd/camera/console"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

type formatReport struct {
	Codes  []uint32              `yaml:"codes"`
	Sizes  ar0144.FrameSizeRange `yaml:"sizes"`
	Format ar0144.FrameFormat    `yaml:"format"`
	Crop   ar0144.Rect           `yaml:"crop"`
}

var formatCmd = cli.Command{
	Name:  "format",
	Usage: "show the negotiated pad format and crop",
	Action: func(c *cli.Context) error {
		// format state never touches the bus, so no adapter is needed
		sensor := ar0144.New(nil, nil)

		var report formatReport
		for i := 0; ; i++ {
			code, err := sensor.EnumCode(i)
			if err != nil {
				break
			}
			report.Codes = append(report.Codes, uint32(code))
		}
		sizes, err := sensor.EnumFrameSize(ar0144.CodeSRGGB12, 0)
		if err != nil {
			return console.Exit(1, "size enumeration failed: %s", console.Red(err))
		}
		report.Sizes = sizes
		report.Format = sensor.Format(ar0144.Active)
		crop, err := sensor.Crop(ar0144.Active, ar0144.TargetCrop)
		if err != nil {
			return console.Exit(1, "crop query failed: %s", console.Red(err))
		}
		report.Crop = crop

		enc := yaml.NewEncoder(os.Stdout)
		defer func() { _ = enc.Close() }()
		if err := enc.Encode(report); err != nil {
			return console.Exit(1, "could not encode report: %s", console.Red(err))
		}
		return nil
	},
}
