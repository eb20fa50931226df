// Package iotext provides input/output helpers for the headless commands:
// plain-text input from a file or stdin, and pretty JSON output for
// scripting consumers.
package iotext

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// FileReader reads text input from a file flag or, when the flag is unset,
// from stdin. Reading from an interactive terminal is refused so a command
// run without piped input fails fast instead of hanging.
type FileReader struct {
	fileFlagValue string
}

// Flag returns the -f/--file flag to register on the command.
func (fr *FileReader) Flag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:        "file",
		Aliases:     []string{"f"},
		Usage:       "path to input text file (reads from stdin if not provided)",
		Destination: &fr.fileFlagValue,
	}
}

// Read returns the full input text.
func (fr *FileReader) Read() (string, error) {
	var reader io.Reader

	if fr.fileFlagValue != "" {
		f, err := os.Open(fr.fileFlagValue)
		if err != nil {
			return "", fmt.Errorf("open file: %w", err)
		}
		defer func() { _ = f.Close() }()
		reader = f
	} else {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return "", fmt.Errorf("no input provided (stdin is a terminal); use -f flag or pipe text input")
		}
		reader = os.Stdin
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}

	return string(data), nil
}

// WriteJSONWith writes obj as indented JSON to w. Marshal failures are
// reported to ew as a JSON error object so consumers always receive JSON.
func WriteJSONWith(w io.Writer, ew io.Writer, obj any) error {
	bits, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		msgBytes, _ := json.Marshal(err.Error())
		_, werr := fmt.Fprintf(ew, `{"message":"error marshaling in iotext.WriteJSON","data":{"json_error":%s}}`+"\n", msgBytes)
		return werr
	}

	_, err = fmt.Fprintln(w, string(bits))
	return err
}

// WriteJSON calls WriteJSONWith with [os.Stdout] and [os.Stderr].
func WriteJSON(obj any) error {
	return WriteJSONWith(os.Stdout, os.Stderr, obj)
}
