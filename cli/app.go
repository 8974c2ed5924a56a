// Package cli contains the beaconrc command line: running a robot model against simulated
// hardware, printing the directive table and listing models.
package cli

import (
	"io"

	"github.com/urfave/cli/v2"
)

// Flags.
const (
	flagConfig   = "config"
	flagScript   = "script"
	flagDebug    = "debug"
	flagNoWatch  = "no-watch"
	flagSpeed    = "speed"
	flagTurnRate = "turn-rate"
	flagDrive    = "drive-only"
)

// NewApp returns the beaconrc command line app writing its output to out.
func NewApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:      "beaconrc",
		Usage:     "drive EV3 robot models with an IR beacon remote",
		Writer:    out,
		ErrWriter: out,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    flagDebug,
				Aliases: []string{"vvv"},
				Usage:   "enable debug logging",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "run",
				Usage:     "run a robot model on simulated hardware, reading beacon presses from a script",
				UsageText: "beaconrc run --config <robot.json> --script <presses.jsonl>",
				Flags: []cli.Flag{
					&cli.PathFlag{
						Name:     flagConfig,
						Aliases:  []string{"c"},
						Required: true,
						Usage:    "load configuration from `FILE`",
					},
					&cli.PathFlag{
						Name:     flagScript,
						Aliases:  []string{"s"},
						Required: true,
						Usage:    "replay beacon presses from `FILE`, one JSON frame per line",
					},
					&cli.BoolFlag{
						Name:  flagNoWatch,
						Usage: "do not reload the config file when it changes",
					},
				},
				Action: RunAction,
			},
			{
				Name:  "table",
				Usage: "print what every combination of beacon buttons does",
				Flags: []cli.Flag{
					&cli.Float64Flag{
						Name:  flagSpeed,
						Value: 1000,
						Usage: "linear speed in mm/s",
					},
					&cli.Float64Flag{
						Name:  flagTurnRate,
						Value: 90,
						Usage: "turn rate in deg/s",
					},
					&cli.BoolFlag{
						Name:  flagDrive,
						Usage: "treat the beacon button as a drive-only robot does",
					},
				},
				Action: TableAction,
			},
			{
				Name:   "models",
				Usage:  "list the robot models that can be run",
				Action: ModelsAction,
			},
		},
	}
}
