package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/ndquang/vietproof/pkg/iotext"
)

type ExtractCmd struct {
	flags *Flags

	// flags
	jsonOutput bool
}

// NewExtractCmd creates a new extract command
func NewExtractCmd(flags *Flags) *ExtractCmd {
	return &ExtractCmd{flags: flags}
}

// Register adds the extract command to the application
func (cmd *ExtractCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "extract",
		Usage:     "Extract plain text from a .docx file",
		UsageText: "vietproof extract [--json] <file.docx>",
		Description: `Uploads the document to the API and prints the extracted paragraph text.
The output can be piped straight into 'vietproof correct'.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output the extraction result as JSON",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ExtractCmd) run(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("expected exactly one document path, got %d", c.Args().Len())
	}
	path := c.Args().First()

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open document: %w", err)
	}
	defer func() { _ = f.Close() }()

	result, err := cmd.flags.Client.UploadDocx(ctx, path, f)
	if err != nil {
		return fmt.Errorf("extract text: %w", err)
	}

	if cmd.jsonOutput {
		return iotext.WriteJSONWith(c.Root().Writer, c.Root().ErrWriter, result)
	}

	fmt.Fprintln(c.Root().Writer, result.Text)
	return nil
}
