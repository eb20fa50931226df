package tui

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/atotto/clipboard"

	"github.com/ndquang/vietproof/internal/corrector"
)

// Completion messages for the remote operations. Each carries the error so
// the model maps every outcome onto UI state in one place.

type healthCheckedMsg struct {
	health corrector.Health
	err    error
}

type correctionDoneMsg struct {
	tok  uint64
	resp *corrector.CorrectResponse
	err  error
}

type uploadDoneMsg struct {
	filename string
	result   *corrector.UploadResult
	err      error
}

type downloadDoneMsg struct {
	filename string
	size     int
	err      error
}

type clipboardPastedMsg struct {
	text string
	err  error
}

type clipboardCopiedMsg struct {
	err error
}

func checkHealthCmd(client *corrector.Client) tea.Cmd {
	return func() tea.Msg {
		health, err := client.Health(context.Background())
		return healthCheckedMsg{health: health, err: err}
	}
}

// correctCmd submits text for correction. tok ties the completion back to
// the submission so a stale response is dropped instead of applied.
func correctCmd(client *corrector.Client, text, model string, tok uint64) tea.Cmd {
	return func() tea.Msg {
		resp, err := client.CorrectParagraphs(context.Background(), text, model)
		return correctionDoneMsg{tok: tok, resp: resp, err: err}
	}
}

func uploadCmd(client *corrector.Client, path string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return uploadDoneMsg{filename: path, err: fmt.Errorf("open document: %w", err)}
		}
		defer func() { _ = f.Close() }()

		result, err := client.UploadDocx(context.Background(), path, f)
		return uploadDoneMsg{filename: path, result: result, err: err}
	}
}

// downloadCmd fetches the rendered document and saves it under filename in
// the working directory.
func downloadCmd(client *corrector.Client, text, filename string) tea.Cmd {
	return func() tea.Msg {
		data, err := client.DownloadDocx(context.Background(), text, filename)
		if err != nil {
			return downloadDoneMsg{filename: filename, err: err}
		}

		if err := os.WriteFile(filename, data, 0o644); err != nil {
			return downloadDoneMsg{filename: filename, err: fmt.Errorf("save document: %w", err)}
		}

		return downloadDoneMsg{filename: filename, size: len(data)}
	}
}

func pasteCmd() tea.Cmd {
	return func() tea.Msg {
		text, err := clipboard.ReadAll()
		return clipboardPastedMsg{text: text, err: err}
	}
}

func copyCmd(text string) tea.Cmd {
	return func() tea.Msg {
		return clipboardCopiedMsg{err: clipboard.WriteAll(text)}
	}
}
