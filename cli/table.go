package cli

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v2"

	"go.viam.com/beaconrc/components/beacon"
	"go.viam.com/beaconrc/robots"
	rc "go.viam.com/beaconrc/services/beaconremotecontrol"
)

// DirectiveTable renders what every subset of beacon buttons decodes to and the drive vector it
// produces at the given speeds.
func DirectiveTable(speed, turnRate float64, actionEnabled bool) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Buttons", "Directive", "Linear (mm/s)", "Turn (deg/s)"})
	decoder := rc.NewDecoder(actionEnabled)
	for mask := 0; mask < 1<<len(beacon.AllButtons); mask++ {
		pressed := beacon.ButtonSet(mask)
		d := decoder.Decode(pressed)
		v := rc.Apply(d, speed, turnRate)
		t.AppendRow(table.Row{
			pressed.String(),
			d.String(),
			fmt.Sprintf("%g", v.LinearSpeed),
			fmt.Sprintf("%g", v.TurnRate),
		})
	}
	return t.Render()
}

// TableAction prints the directive table.
func TableAction(c *cli.Context) error {
	_, err := fmt.Fprintln(c.App.Writer, DirectiveTable(c.Float64(flagSpeed), c.Float64(flagTurnRate), !c.Bool(flagDrive)))
	return err
}

// ModelsAction lists the registered robot models.
func ModelsAction(c *cli.Context) error {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Model", "Motors", "Touch", "Color", "Description"})
	for _, model := range robots.Models() {
		reg, _ := robots.Lookup(model)
		t.AppendRow(table.Row{model, reg.Motors, reg.TouchSensors, reg.ColorSensors, reg.Description})
	}
	_, err := fmt.Fprintln(c.App.Writer, t.Render())
	return err
}
