package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/ndquang/vietproof/internal/corrector"
	"github.com/ndquang/vietproof/pkg/iotext"
)

type CorrectCmd struct {
	flags *Flags
	fr    *iotext.FileReader

	// flags
	model      string
	jsonOutput bool
}

// NewCorrectCmd creates a new correct command
func NewCorrectCmd(flags *Flags) *CorrectCmd {
	return &CorrectCmd{
		flags: flags,
		fr:    &iotext.FileReader{},
	}
}

// Register adds the correct command to the application
func (cmd *CorrectCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "correct",
		Usage:     "Correct Vietnamese text from a file or stdin",
		UsageText: "vietproof correct [-f file] [-m model] [--json]",
		Description: `Sends the input text to the correction API paragraph by paragraph and
prints the corrected text to stdout.

Use --json for the full response including per-paragraph explanations.`,
		Flags: []cli.Flag{
			cmd.fr.Flag(),
			&cli.StringFlag{
				Name:        "model",
				Aliases:     []string{"m"},
				Usage:       "correction model (bartpho, qwen, vistral)",
				Destination: &cmd.model,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output the full response as JSON",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *CorrectCmd) run(ctx context.Context, c *cli.Command) error {
	text, err := cmd.fr.Read()
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	model := cmd.model
	if model == "" {
		model = cmd.flags.Config.Model
	}

	resp, err := cmd.flags.Client.CorrectParagraphs(ctx, text, model)
	if err != nil {
		if corrector.IsValidationError(err) {
			return err
		}
		return fmt.Errorf("correct text: %w", err)
	}

	if cmd.jsonOutput {
		return iotext.WriteJSONWith(c.Root().Writer, c.Root().ErrWriter, resp)
	}

	fmt.Fprintln(c.Root().Writer, resp.FullCorrected)
	return nil
}
