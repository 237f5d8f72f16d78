package main

import (
	"context"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/mklimuk/camera/cmd/camera/console"
	"github.com/urfave/cli/v2"
)

var shellCmd = cli.Command{
	Name:  "shell",
	Usage: "interactive register access for bring-up",
	Flags: sensorFlags,
	Action: func(c *cli.Context) error {
		sensor, cleanup, err := openSensor(c)
		if err != nil {
			return console.Exit(1, "%s", console.Red(err))
		}
		defer cleanup()

		rl, err := readline.New("ar0144> ")
		if err != nil {
			return console.Exit(1, "could not open prompt: %s", console.Red(err))
		}
		defer func() { _ = rl.Close() }()

		console.Infof("commands: get <reg>, set <reg> <val>, id, exit (registers in hex)")
		for {
			line, err := rl.Readline()
			if err == readline.ErrInterrupt || err == io.EOF {
				return nil
			}
			if err != nil {
				return console.Exit(1, "prompt error: %s", console.Red(err))
			}
			fields := strings.Fields(line)
			if len(fields) == 0 {
				continue
			}
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			switch fields[0] {
			case "exit", "quit":
				cancel()
				return nil
			case "id":
				val, err := sensor.ReadReg(ctx, 0x3000)
				if err != nil {
					console.Errorf("%v", err)
					break
				}
				console.Printf("chip id: %#04x\n", val)
			case "get":
				if len(fields) != 2 {
					console.Errorf("usage: get <reg>")
					break
				}
				reg, err := parseReg(fields[1])
				if err != nil {
					console.Errorf("%v", err)
					break
				}
				val, err := sensor.ReadReg(ctx, reg)
				if err != nil {
					console.Errorf("%v", err)
					break
				}
				console.Printf("%#04x = %#04x\n", reg, val)
			case "set":
				if len(fields) != 3 {
					console.Errorf("usage: set <reg> <val>")
					break
				}
				reg, err := parseReg(fields[1])
				if err != nil {
					console.Errorf("%v", err)
					break
				}
				val, err := parseReg(fields[2])
				if err != nil {
					console.Errorf("%v", err)
					break
				}
				if err := sensor.WriteReg(ctx, reg, val); err != nil {
					console.Errorf("%v", err)
					break
				}
				console.Printf("%#04x <- %#04x\n", reg, val)
			default:
				console.Errorf("unknown command %q", fields[0])
			}
			cancel()
		}
	},
}

func parseReg(s string) (uint16, error) {
	s = strings.TrimPrefix(strings.ToLower(s), "0x")
	v, err := strconv.ParseUint(s, 16, 16)
	if err != nil {
		return 0, err
	}
	return uint16(v), nil
}
