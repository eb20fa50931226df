package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/ndquang/vietproof/internal/core/config"
	"github.com/ndquang/vietproof/internal/corrector"
)

func newTestApp(t *testing.T, handler http.Handler) (*Flags, *cli.Command, *bytes.Buffer) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := config.DefaultConfig()
	flags := &Flags{
		Config: &cfg,
		Client: corrector.NewClient(srv.URL, 5*time.Second),
	}

	var buf bytes.Buffer
	app := &cli.Command{
		Name:      "vietproof",
		Writer:    &buf,
		ErrWriter: &buf,
	}

	return flags, app, &buf
}

func writeInputFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "input.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCorrectCmd(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/correct-paragraphs", r.URL.Path)

		var req struct {
			Text  string `json:"text"`
			Model string `json:"model"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		_ = json.NewEncoder(w).Encode(corrector.CorrectResponse{
			Success:         true,
			ModelUsed:       req.Model,
			TotalParagraphs: 1,
			Results: []corrector.Result{
				{Index: 0, Original: "Toi di hoc.", Corrected: "Tôi đi học.", HasChanges: true},
			},
			FullCorrected: "Tôi đi học.",
		})
	})

	t.Run("plain output", func(t *testing.T) {
		flags, app, buf := newTestApp(t, handler)
		NewCorrectCmd(flags).Register(app)

		input := writeInputFile(t, "Toi di hoc.")
		err := app.Run(context.Background(), []string{"vietproof", "correct", "-f", input})

		require.NoError(t, err)
		assert.Equal(t, "Tôi đi học.\n", buf.String())
	})

	t.Run("json output", func(t *testing.T) {
		flags, app, buf := newTestApp(t, handler)
		NewCorrectCmd(flags).Register(app)

		input := writeInputFile(t, "Toi di hoc.")
		err := app.Run(context.Background(), []string{"vietproof", "correct", "-f", input, "--json", "-m", "qwen"})
		require.NoError(t, err)

		var resp corrector.CorrectResponse
		require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, "qwen", resp.ModelUsed)
		assert.Len(t, resp.Results, 1)
	})

	t.Run("model defaults to config", func(t *testing.T) {
		var gotModel string
		capture := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var req struct {
				Model string `json:"model"`
			}
			_ = json.NewDecoder(r.Body).Decode(&req)
			gotModel = req.Model

			_ = json.NewEncoder(w).Encode(corrector.CorrectResponse{
				Success:         true,
				ModelUsed:       req.Model,
				TotalParagraphs: 1,
				Results:         []corrector.Result{{Index: 0, Original: "a", Corrected: "a"}},
				FullCorrected:   "a",
			})
		})

		flags, app, _ := newTestApp(t, capture)
		flags.Config.Model = corrector.ModelVistral
		NewCorrectCmd(flags).Register(app)

		input := writeInputFile(t, "a")
		require.NoError(t, app.Run(context.Background(), []string{"vietproof", "correct", "-f", input}))
		assert.Equal(t, corrector.ModelVistral, gotModel)
	})

	t.Run("api failure surfaces error", func(t *testing.T) {
		failing := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "model not loaded"})
		})

		flags, app, _ := newTestApp(t, failing)
		NewCorrectCmd(flags).Register(app)

		input := writeInputFile(t, "Toi di hoc.")
		err := app.Run(context.Background(), []string{"vietproof", "correct", "-f", input})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "model not loaded")
	})
}

func TestHealthCmd(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/health", r.URL.Path)
		_ = json.NewEncoder(w).Encode(corrector.Health{
			Status:          "ok",
			AvailableModels: []string{"bartpho", "qwen"},
			DefaultModel:    "bartpho",
		})
	})

	t.Run("plain output", func(t *testing.T) {
		flags, app, buf := newTestApp(t, handler)
		NewHealthCmd(flags).Register(app)

		require.NoError(t, app.Run(context.Background(), []string{"vietproof", "health"}))

		out := buf.String()
		assert.Contains(t, out, "Status:         ok")
		assert.Contains(t, out, "BartPho, Qwen 2.5")
	})

	t.Run("json output", func(t *testing.T) {
		flags, app, buf := newTestApp(t, handler)
		NewHealthCmd(flags).Register(app)

		require.NoError(t, app.Run(context.Background(), []string{"vietproof", "health", "--json"}))

		var health corrector.Health
		require.NoError(t, json.Unmarshal(buf.Bytes(), &health))
		assert.Equal(t, "ok", health.Status)
	})

	t.Run("unreachable api", func(t *testing.T) {
		flags, app, _ := newTestApp(t, handler)
		flags.Client = corrector.NewClient("http://127.0.0.1:1", time.Second)
		NewHealthCmd(flags).Register(app)

		err := app.Run(context.Background(), []string{"vietproof", "health"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "http://127.0.0.1:1")
	})
}

func TestExtractCmd(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/upload-docx", r.URL.Path)
		_ = json.NewEncoder(w).Encode(corrector.UploadResult{
			Success:        true,
			Text:           "Toi di hoc.",
			Filename:       "thesis.docx",
			ParagraphCount: 1,
		})
	})

	t.Run("prints extracted text", func(t *testing.T) {
		flags, app, buf := newTestApp(t, handler)
		NewExtractCmd(flags).Register(app)

		path := filepath.Join(t.TempDir(), "thesis.docx")
		require.NoError(t, os.WriteFile(path, []byte("PK fake docx"), 0o644))

		require.NoError(t, app.Run(context.Background(), []string{"vietproof", "extract", path}))
		assert.Equal(t, "Toi di hoc.\n", buf.String())
	})

	t.Run("requires exactly one argument", func(t *testing.T) {
		flags, app, _ := newTestApp(t, handler)
		NewExtractCmd(flags).Register(app)

		err := app.Run(context.Background(), []string{"vietproof", "extract"})
		require.Error(t, err)
	})
}

func TestExportCmd(t *testing.T) {
	docx := []byte("PK fake docx bytes")
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/download-docx", r.URL.Path)
		_, _ = w.Write(docx)
	})

	flags, app, buf := newTestApp(t, handler)
	NewExportCmd(flags).Register(app)

	input := writeInputFile(t, "Tôi đi học.")
	output := filepath.Join(t.TempDir(), "out.docx")

	err := app.Run(context.Background(), []string{"vietproof", "export", "-f", input, "-o", output})
	require.NoError(t, err)

	saved, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, docx, saved)
	assert.Contains(t, buf.String(), "Saved "+output)
}
