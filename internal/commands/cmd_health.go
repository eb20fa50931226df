package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/ndquang/vietproof/internal/corrector"
	"github.com/ndquang/vietproof/pkg/iotext"
)

type HealthCmd struct {
	flags *Flags

	// flags
	jsonOutput bool
}

// NewHealthCmd creates a new health command
func NewHealthCmd(flags *Flags) *HealthCmd {
	return &HealthCmd{flags: flags}
}

// Register adds the health command to the application
func (cmd *HealthCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "health",
		Usage:     "Check that the correction API is reachable",
		UsageText: "vietproof health [--json]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output the raw health response as JSON",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *HealthCmd) run(ctx context.Context, c *cli.Command) error {
	health, err := cmd.flags.Client.Health(ctx)
	if err != nil {
		return fmt.Errorf("health check against %s: %w", cmd.flags.Client.BaseURL(), err)
	}

	if cmd.jsonOutput {
		return iotext.WriteJSONWith(c.Root().Writer, c.Root().ErrWriter, health)
	}

	w := c.Root().Writer
	fmt.Fprintf(w, "API:            %s\n", cmd.flags.Client.BaseURL())
	fmt.Fprintf(w, "Status:         %s\n", health.Status)
	if health.Message != "" {
		fmt.Fprintf(w, "Message:        %s\n", health.Message)
	}
	if len(health.AvailableModels) > 0 {
		names := make([]string, 0, len(health.AvailableModels))
		for _, id := range health.AvailableModels {
			names = append(names, corrector.ModelDisplayName(id))
		}
		fmt.Fprintf(w, "Models:         %s\n", strings.Join(names, ", "))
	}
	if health.DefaultModel != "" {
		fmt.Fprintf(w, "Default model:  %s\n", corrector.ModelDisplayName(health.DefaultModel))
	}

	return nil
}
