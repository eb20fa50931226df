package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/ndquang/vietproof/internal/corrector"
	"github.com/ndquang/vietproof/pkg/iotext"
)

type ExportCmd struct {
	flags *Flags
	fr    *iotext.FileReader

	// flags
	output string
}

// NewExportCmd creates a new export command
func NewExportCmd(flags *Flags) *ExportCmd {
	return &ExportCmd{
		flags: flags,
		fr:    &iotext.FileReader{},
	}
}

// Register adds the export command to the application
func (cmd *ExportCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "export",
		Usage:     "Render text into a .docx document",
		UsageText: "vietproof export [-f file] [-o output.docx]",
		Description: `Sends the input text to the API's document renderer and saves the
returned .docx file. Pairs with 'vietproof correct' in a pipeline:

    vietproof correct -f draft.txt | vietproof export -o corrected.docx`,
		Flags: []cli.Flag{
			cmd.fr.Flag(),
			&cli.StringFlag{
				Name:        "output",
				Aliases:     []string{"o"},
				Usage:       "output path (defaults to the configured download filename)",
				Destination: &cmd.output,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ExportCmd) run(ctx context.Context, c *cli.Command) error {
	text, err := cmd.fr.Read()
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	output := cmd.output
	if output == "" {
		output = cmd.flags.Config.DownloadFilename
	}

	data, err := cmd.flags.Client.DownloadDocx(ctx, text, output)
	if err != nil {
		if corrector.IsValidationError(err) {
			return err
		}
		return fmt.Errorf("render document: %w", err)
	}

	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("save document: %w", err)
	}

	fmt.Fprintf(c.Root().Writer, "Saved %s (%d bytes)\n", output, len(data))
	return nil
}
