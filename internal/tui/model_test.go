package tui

import (
	"errors"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndquang/vietproof/internal/corrector"
	"github.com/ndquang/vietproof/pkg/tuitest"
)

func newTestModel(t *testing.T) Model {
	t.Helper()

	client := corrector.NewClient("http://localhost:5000", time.Second)
	m := New(Options{
		Client:           client,
		Model:            corrector.ModelBartPho,
		DownloadFilename: "van_ban_da_sua.docx",
	})

	updated, _ := m.Update(tuitest.WindowSize(120, 40))
	return updated.(Model)
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()

	updated, cmd := m.Update(msg)
	next, ok := updated.(Model)
	require.True(t, ok)
	return next, cmd
}

func logTexts(m Model) []string {
	texts := make([]string, 0, len(m.log.entries))
	for _, e := range m.log.entries {
		texts = append(texts, e.text)
	}
	return texts
}

func sampleResponse() *corrector.CorrectResponse {
	return &corrector.CorrectResponse{
		Success:         true,
		ModelUsed:       corrector.ModelBartPho,
		TotalParagraphs: 2,
		Results: []corrector.Result{
			{Index: 0, Original: "Toi di hoc.", Corrected: "Tôi đi học.", HasChanges: true, Explanation: "Added diacritics."},
			{Index: 1, Original: "Đúng rồi.", Corrected: "Đúng rồi.", HasChanges: false},
		},
		FullCorrected: "Tôi đi học.\nĐúng rồi.",
	}
}

func TestModelEmptyInputNeverSubmits(t *testing.T) {
	tt := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "spaces", input: "   "},
		{name: "newlines and tabs", input: "\n\t\n"},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			m := newTestModel(t)
			m.input.SetValue(tc.input)

			m, cmd := update(t, m, tuitest.KeyCtrl('r'))

			assert.Nil(t, cmd, "empty input must not produce a request command")
			assert.Equal(t, stateNormal, m.state)
			assert.Equal(t, statusError, m.status)
			assert.Contains(t, logTexts(m), "Nothing to correct: the input is empty")
		})
	}
}

func TestModelCorrectionLifecycle(t *testing.T) {
	m := newTestModel(t)
	m.input.SetValue("Toi di hoc.\nĐúng rồi.")

	m, cmd := update(t, m, tuitest.KeyCtrl('r'))
	require.NotNil(t, cmd)
	assert.Equal(t, stateProcessing, m.state)
	assert.Equal(t, statusProcessing, m.status)
	assert.NotEmpty(t, m.progressText)

	// Submitting again while in flight is a no-op.
	m, cmd = update(t, m, tuitest.KeyCtrl('r'))
	assert.Nil(t, cmd)
	assert.Equal(t, stateProcessing, m.state)

	m, _ = update(t, m, correctionDoneMsg{tok: 1, resp: sampleResponse()})

	assert.Equal(t, stateNormal, m.state)
	assert.Equal(t, statusReady, m.status)
	assert.Empty(t, m.progressText)
	assert.Equal(t, "Tôi đi học.\nĐúng rồi.", m.outputText)
	assert.Equal(t, 1, m.changesCount, "only changed paragraphs become rows")
	assert.True(t, m.copyEnabled)
	assert.Equal(t, 2, m.session.Len())
}

func TestModelCorrectionFailure(t *testing.T) {
	m := newTestModel(t)
	m.input.SetValue("Toi di hoc.")

	m, _ = update(t, m, tuitest.KeyCtrl('r'))
	m, _ = update(t, m, correctionDoneMsg{tok: 1, err: errors.New("connection refused")})

	assert.Equal(t, stateNormal, m.state)
	assert.Equal(t, statusError, m.status)
	assert.Empty(t, m.outputText)

	// The failure message names the API origin.
	texts := logTexts(m)
	require.NotEmpty(t, texts)
	assert.Contains(t, texts[len(texts)-1], "http://localhost:5000")
}

func TestModelStaleResponseIsDropped(t *testing.T) {
	m := newTestModel(t)
	m.input.SetValue("Toi di hoc.")

	// First attempt fails, user retries.
	m, _ = update(t, m, tuitest.KeyCtrl('r'))
	m, _ = update(t, m, correctionDoneMsg{tok: 1, err: errors.New("timeout")})
	m, _ = update(t, m, tuitest.KeyCtrl('r'))
	require.Equal(t, stateProcessing, m.state)

	// A late duplicate of the first attempt must not touch the UI.
	stale := sampleResponse()
	stale.FullCorrected = "STALE"
	m, _ = update(t, m, correctionDoneMsg{tok: 1, resp: stale})

	assert.Equal(t, stateProcessing, m.state)
	assert.Empty(t, m.outputText)

	// The current attempt's completion still lands.
	m, _ = update(t, m, correctionDoneMsg{tok: 2, resp: sampleResponse()})
	assert.Equal(t, stateNormal, m.state)
	assert.Equal(t, "Tôi đi học.\nĐúng rồi.", m.outputText)
}

func TestModelExplanationFollowsSelection(t *testing.T) {
	m := newTestModel(t)
	m.applyResults(&corrector.CorrectResponse{
		Success:         true,
		ModelUsed:       corrector.ModelBartPho,
		TotalParagraphs: 3,
		Results: []corrector.Result{
			{Index: 0, Original: "a", Corrected: "á", HasChanges: true, Explanation: "First fix.", Note: "tone mark"},
			{Index: 1, Original: "b", Corrected: "b", HasChanges: false},
			{Index: 2, Original: "c", Corrected: "ç", HasChanges: true},
		},
		FullCorrected: "á\nb\nç",
	})
	require.Equal(t, 2, m.changesCount)

	m.selectResult(0)
	assert.Contains(t, m.explainText, "First fix.")
	assert.Contains(t, m.explainText, "tone mark")

	// No explanation or note on the second changed row.
	m.selectResult(2)
	assert.Equal(t, noExplanationText, m.explainText)

	// Out-of-range selection leaves the pane unchanged.
	m.selectResult(99)
	assert.Equal(t, noExplanationText, m.explainText)
	m.selectResult(-1)
	assert.Equal(t, noExplanationText, m.explainText)
}

func TestModelClearAll(t *testing.T) {
	m := newTestModel(t)
	m.input.SetValue("Toi di hoc.")
	m.applyResults(sampleResponse())
	m.setStatus(statusReady, "API ready")

	m, _ = update(t, m, tuitest.KeyCtrl('x'))

	assert.Empty(t, m.input.Value())
	assert.Empty(t, m.outputText)
	assert.Zero(t, m.changesCount)
	assert.Zero(t, m.session.Len())
	assert.False(t, m.copyEnabled)
	assert.Equal(t, explanationHintText, m.explainText)

	// Connectivity status survives a clear.
	assert.Equal(t, statusReady, m.status)
	assert.Equal(t, "API ready", m.stText)
}

func TestModelUploadPrompt(t *testing.T) {
	t.Run("rejects non docx without a request", func(t *testing.T) {
		m := newTestModel(t)

		m, _ = update(t, m, tuitest.KeyCtrl('o'))
		require.Equal(t, stateUploadPrompt, m.state)

		m.uploadInput.SetValue("notes.txt")
		m, cmd := update(t, m, tuitest.KeyEnter())

		assert.Nil(t, cmd)
		assert.Equal(t, stateNormal, m.state)
		assert.Contains(t, logTexts(m), "Only .docx files are supported")
	})

	t.Run("accepts docx path", func(t *testing.T) {
		m := newTestModel(t)

		m, _ = update(t, m, tuitest.KeyCtrl('o'))
		m.uploadInput.SetValue("thesis.docx")
		m, cmd := update(t, m, tuitest.KeyEnter())

		assert.NotNil(t, cmd)
		assert.Equal(t, stateProcessing, m.state)
	})

	t.Run("escape cancels", func(t *testing.T) {
		m := newTestModel(t)

		m, _ = update(t, m, tuitest.KeyCtrl('o'))
		m, cmd := update(t, m, tea.KeyPressMsg(tea.Key{Code: tea.KeyEscape}))

		assert.Nil(t, cmd)
		assert.Equal(t, stateNormal, m.state)
	})
}

func TestModelUploadDone(t *testing.T) {
	m := newTestModel(t)
	m.state = stateProcessing

	m, _ = update(t, m, uploadDoneMsg{
		filename: "thesis.docx",
		result:   &corrector.UploadResult{Success: true, Text: "Toi di hoc.", Filename: "thesis.docx", ParagraphCount: 1},
	})

	assert.Equal(t, stateNormal, m.state)
	assert.Equal(t, "Toi di hoc.", m.input.Value())
	assert.Equal(t, statusReady, m.status)
}

func TestModelDownloadRequiresOutput(t *testing.T) {
	m := newTestModel(t)

	m, cmd := update(t, m, tuitest.KeyCtrl('s'))
	assert.Nil(t, cmd)
	assert.Equal(t, statusError, m.status)

	m.applyResults(sampleResponse())
	m, cmd = update(t, m, tuitest.KeyCtrl('s'))
	assert.NotNil(t, cmd)
	assert.Equal(t, stateProcessing, m.state)
}

func TestModelCopyRequiresResults(t *testing.T) {
	m := newTestModel(t)

	m, cmd := update(t, m, tuitest.KeyCtrl('y'))
	assert.Nil(t, cmd)
	assert.Contains(t, logTexts(m), "Nothing to copy yet")

	m.applyResults(sampleResponse())
	_, cmd = update(t, m, tuitest.KeyCtrl('y'))
	assert.NotNil(t, cmd)
}

func TestModelCycleModel(t *testing.T) {
	m := newTestModel(t)
	require.Equal(t, corrector.ModelBartPho, m.modelID)

	m, _ = update(t, m, tuitest.KeyCtrl('t'))
	assert.Equal(t, corrector.ModelQwen, m.modelID)

	m, _ = update(t, m, tuitest.KeyCtrl('t'))
	assert.Equal(t, corrector.ModelVistral, m.modelID)

	m, _ = update(t, m, tuitest.KeyCtrl('t'))
	assert.Equal(t, corrector.ModelBartPho, m.modelID)
}

func TestModelHealthStatus(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		m := newTestModel(t)

		m, _ = update(t, m, healthCheckedMsg{health: corrector.Health{
			Status:          "ok",
			AvailableModels: []string{"bartpho", "qwen"},
		}})

		assert.Equal(t, statusReady, m.status)
		assert.Contains(t, logTexts(m), "Available models: bartpho, qwen")
	})

	t.Run("unreachable", func(t *testing.T) {
		m := newTestModel(t)

		m, _ = update(t, m, healthCheckedMsg{err: errors.New("connection refused")})

		assert.Equal(t, statusError, m.status)
		texts := logTexts(m)
		require.NotEmpty(t, texts)
		assert.Contains(t, texts[len(texts)-1], "http://localhost:5000")
	})
}

func TestModelViewRenders(t *testing.T) {
	m := newTestModel(t)
	m.applyResults(sampleResponse())
	m.setStatus(statusReady, "API ready")

	header := tuitest.StripANSI(m.renderHeader())
	assert.Contains(t, header, "VietProof")
	assert.Contains(t, header, "API ready")
	assert.Contains(t, header, "BartPho")

	right := tuitest.StripANSI(m.renderRightColumn())
	assert.Contains(t, right, "Changes (1)")

	left := tuitest.StripANSI(m.renderLeftColumn())
	assert.Contains(t, left, "Tôi đi học.")
}
