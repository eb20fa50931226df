// Package tui implements the Bubble Tea TUI for vietproof: an input editor,
// the corrected output, the changes table with per-paragraph explanations,
// and an activity log, all driven by the correction API.
package tui

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/list"
	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/textinput"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog/log"

	"github.com/ndquang/vietproof/internal/core/styles"
	"github.com/ndquang/vietproof/internal/corrector"
)

// UIState represents the current state of the TUI.
type UIState int

const (
	stateNormal UIState = iota
	// stateProcessing is active while a correction, upload, or download is
	// in flight. Submitting actions are disabled; this is advisory feedback,
	// the generation token is what actually guards against stale writes.
	stateProcessing
	// stateUploadPrompt shows the document path prompt.
	stateUploadPrompt
)

// focusZone identifies which pane receives navigation keys.
type focusZone int

const (
	focusInput focusZone = iota
	focusChanges
)

// statusLevel mirrors the web UI's status dot.
type statusLevel int

const (
	statusReady statusLevel = iota
	statusProcessing
	statusError
)

// noExplanationText is shown when a selected result carries neither an
// explanation nor a note.
const noExplanationText = "No explanation available for this change."

// explanationHintText is the explanation pane's initial content.
const explanationHintText = "Select a row in the changes table to see why it was corrected."

// Options configures the TUI.
type Options struct {
	Client           *corrector.Client
	Model            string // initial model identifier
	DownloadFilename string // filename for exported documents
}

// Model is the main Bubble Tea model for the TUI.
type Model struct {
	keys   keyMap
	client *corrector.Client

	// Last correction results, kept for explanation lookup.
	session corrector.Session

	state    UIState
	focus    focusZone
	status   statusLevel
	stText   string
	modelID  string
	filename string

	input        textarea.Model
	output       viewport.Model
	outputText   string
	changes      list.Model
	changesCount int
	explanation  viewport.Model
	explainText  string
	logView      viewport.Model
	log          activityLog
	uploadInput  textinput.Model
	spinner      spinner.Model

	progressText string
	copyEnabled  bool
	quitting     bool
	width        int
	height       int
}

// New creates the TUI model.
func New(opts Options) Model {
	input := textarea.New()
	input.Placeholder = "Type or paste Vietnamese text here..."

	uploadInput := textinput.New()
	uploadInput.Placeholder = "path/to/document.docx"

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.StatusProcessingStyle

	modelID := opts.Model
	if modelID == "" {
		modelID = corrector.DefaultModel
	}

	m := Model{
		keys:        defaultKeyMap(),
		client:      opts.Client,
		modelID:     modelID,
		filename:    opts.DownloadFilename,
		input:       input,
		output:      viewport.New(),
		changes:     newChangesList(),
		explanation: viewport.New(),
		explainText: explanationHintText,
		logView:     viewport.New(),
		uploadInput: uploadInput,
		spinner:     s,
		status:      statusProcessing,
		stText:      "Connecting...",
	}

	m.log.add(logInfo, "Application ready")
	m.log.add(logInfo, "Press ctrl+r to correct the input text")

	return m
}

// Init issues the startup health check.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		checkHealthCmd(m.client),
		m.spinner.Tick,
		m.input.Focus(),
	)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)

	case healthCheckedMsg:
		return m.handleHealthChecked(msg)
	case correctionDoneMsg:
		return m.handleCorrectionDone(msg)
	case uploadDoneMsg:
		return m.handleUploadDone(msg)
	case downloadDoneMsg:
		return m.handleDownloadDone(msg)
	case clipboardPastedMsg:
		return m.handleClipboardPasted(msg)
	case clipboardCopiedMsg:
		return m.handleClipboardCopied(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	case spinner.TickMsg:
		if m.state != stateProcessing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.resizePanes()
	return m, nil
}

func (m Model) handleHealthChecked(msg healthCheckedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.setStatus(statusError, "API unreachable")
		m.addLog(logError, fmt.Sprintf("Cannot reach API at %s: %v", m.client.BaseURL(), msg.err))
		return m, nil
	}

	m.setStatus(statusReady, "API ready")
	m.addLog(logSuccess, "Connected to API at "+m.client.BaseURL())
	if len(msg.health.AvailableModels) > 0 {
		m.addLog(logInfo, "Available models: "+strings.Join(msg.health.AvailableModels, ", "))
	}
	return m, nil
}

func (m Model) handleCorrectionDone(msg correctionDoneMsg) (tea.Model, tea.Cmd) {
	if !m.session.Accept(msg.tok) {
		// A newer submission superseded this one; its completion owns the UI.
		log.Debug().Uint64("token", msg.tok).Msg("dropping stale correction response")
		return m, nil
	}

	m.state = stateNormal
	m.progressText = ""

	if msg.err != nil {
		m.setStatus(statusError, "Correction failed")
		m.addLog(logError, fmt.Sprintf("Correction failed: %v (is the API running at %s?)", msg.err, m.client.BaseURL()))
		return m, nil
	}

	m.applyResults(msg.resp)
	m.setStatus(statusReady, "Done")
	m.addLog(logSuccess, fmt.Sprintf("Corrected %d paragraphs with %s (%d changed)",
		msg.resp.TotalParagraphs, corrector.ModelDisplayName(msg.resp.ModelUsed), m.changesCount))
	return m, nil
}

// applyResults replaces the session state and rebuilds the output pane and
// changes table from a successful response.
func (m *Model) applyResults(resp *corrector.CorrectResponse) {
	m.session.Set(resp.Results)

	m.outputText = resp.FullCorrected
	m.output.SetContent(m.outputText)
	m.output.GotoTop()

	items := buildChangeItems(resp.Results)
	m.changes.SetItems(items)
	m.changesCount = len(items)
	m.copyEnabled = true
}

func (m Model) handleUploadDone(msg uploadDoneMsg) (tea.Model, tea.Cmd) {
	m.state = stateNormal
	m.progressText = ""
	m.uploadInput.SetValue("")

	if msg.err != nil {
		m.setStatus(statusError, "Upload failed")
		m.addLog(logError, fmt.Sprintf("Upload failed: %v", msg.err))
		return m, nil
	}

	m.input.SetValue(msg.result.Text)
	m.setStatus(statusReady, "Document loaded")
	m.addLog(logSuccess, fmt.Sprintf("Loaded %s (%d paragraphs)", msg.result.Filename, msg.result.ParagraphCount))
	return m, nil
}

func (m Model) handleDownloadDone(msg downloadDoneMsg) (tea.Model, tea.Cmd) {
	m.state = stateNormal
	m.progressText = ""

	if msg.err != nil {
		m.setStatus(statusError, "Export failed")
		m.addLog(logError, fmt.Sprintf("Export failed: %v", msg.err))
		return m, nil
	}

	m.setStatus(statusReady, "Document saved")
	m.addLog(logSuccess, fmt.Sprintf("Saved %s (%d bytes)", msg.filename, msg.size))
	return m, nil
}

func (m Model) handleClipboardPasted(msg clipboardPastedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.addLog(logError, fmt.Sprintf("Cannot read clipboard: %v", msg.err))
		return m, nil
	}

	m.input.SetValue(msg.text)
	m.addLog(logInfo, "Pasted text from clipboard")
	return m, nil
}

func (m Model) handleClipboardCopied(msg clipboardCopiedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.addLog(logError, fmt.Sprintf("Cannot copy to clipboard: %v", msg.err))
		return m, nil
	}

	m.addLog(logSuccess, "Copied corrected text to clipboard")
	return m, nil
}

// handleKey processes key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.quitting = true
		return m, tea.Quit
	}

	if m.state == stateUploadPrompt {
		return m.handleUploadPromptKey(msg)
	}

	// Submitting actions are disabled while a request is in flight.
	if m.state != stateProcessing {
		switch {
		case key.Matches(msg, m.keys.Process):
			return m.startCorrection()
		case key.Matches(msg, m.keys.Upload):
			m.state = stateUploadPrompt
			m.uploadInput.SetValue("")
			return m, m.uploadInput.Focus()
		case key.Matches(msg, m.keys.Download):
			return m.startDownload()
		case key.Matches(msg, m.keys.Clear):
			m.clearAll()
			return m, nil
		case key.Matches(msg, m.keys.Paste):
			return m, pasteCmd()
		}
	}

	switch {
	case key.Matches(msg, m.keys.Copy):
		if !m.copyEnabled {
			m.addLog(logError, "Nothing to copy yet")
			return m, nil
		}
		return m, copyCmd(m.outputText)
	case key.Matches(msg, m.keys.ClearLog):
		m.log.clear()
		m.refreshLog()
		return m, nil
	case key.Matches(msg, m.keys.CycleModel):
		m.cycleModel()
		return m, nil
	case key.Matches(msg, m.keys.FocusNext):
		return m.toggleFocus()
	}

	if m.focus == focusChanges {
		return m.handleChangesKey(msg)
	}

	if m.state == stateProcessing {
		// The editor stays read-only while a correction is pending so the
		// submitted text matches what the response refers to.
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleUploadPromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.state = stateNormal
		m.uploadInput.SetValue("")
		return m, nil
	case "enter":
		path := strings.TrimSpace(m.uploadInput.Value())
		if path == "" {
			m.state = stateNormal
			return m, nil
		}
		if !strings.HasSuffix(strings.ToLower(path), ".docx") {
			m.state = stateNormal
			m.uploadInput.SetValue("")
			m.addLog(logError, "Only .docx files are supported")
			return m, nil
		}

		m.state = stateProcessing
		m.setStatus(statusProcessing, "Uploading...")
		m.progressText = "Uploading " + path + "..."
		m.addLog(logInfo, "Uploading "+path)
		return m, tea.Batch(uploadCmd(m.client, path), m.spinner.Tick)
	}

	var cmd tea.Cmd
	m.uploadInput, cmd = m.uploadInput.Update(msg)
	return m, cmd
}

func (m Model) handleChangesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	prevIndex := m.changes.Index()

	var cmd tea.Cmd
	m.changes, cmd = m.changes.Update(msg)

	if m.changes.Index() != prevIndex || msg.String() == "enter" {
		if item, ok := m.changes.SelectedItem().(changeItem); ok {
			m.selectResult(item.position)
		}
	}

	return m, cmd
}

// startCorrection validates the input and submits it. Empty input never
// issues a request.
func (m Model) startCorrection() (tea.Model, tea.Cmd) {
	text := m.input.Value()
	if strings.TrimSpace(text) == "" {
		m.setStatus(statusError, "Enter some text first")
		m.addLog(logError, "Nothing to correct: the input is empty")
		return m, nil
	}

	tok := m.session.Begin()
	m.state = stateProcessing
	m.setStatus(statusProcessing, "Processing...")

	paragraphs := corrector.CountParagraphs(text)
	display := corrector.ModelDisplayName(m.modelID)
	m.progressText = fmt.Sprintf("Correcting %d paragraphs with %s...", paragraphs, display)
	m.addLog(logInfo, "Started correction with "+display)

	return m, tea.Batch(correctCmd(m.client, text, m.modelID, tok), m.spinner.Tick)
}

// startDownload validates the output and requests a DOCX export. Empty
// output never issues a request.
func (m Model) startDownload() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(m.outputText)
	if text == "" {
		m.setStatus(statusError, "Nothing to export")
		m.addLog(logError, "Nothing to export: run a correction first")
		return m, nil
	}

	m.state = stateProcessing
	m.setStatus(statusProcessing, "Exporting...")
	m.progressText = "Generating " + m.filename + "..."
	m.addLog(logInfo, "Generating "+m.filename)

	return m, tea.Batch(downloadCmd(m.client, text, m.filename), m.spinner.Tick)
}

// selectResult marks the given result as selected and renders its
// explanation. Out-of-range positions leave the UI unchanged.
func (m *Model) selectResult(position int) {
	res, ok := m.session.Result(position)
	if !ok {
		return
	}

	var parts []string
	if res.Explanation != "" {
		parts = append(parts, "EXPLANATION:\n"+res.Explanation)
	}
	if res.Note != "" {
		parts = append(parts, "CHANGE NOTE:\n"+res.Note)
	}

	if len(parts) == 0 {
		m.explainText = noExplanationText
	} else {
		m.explainText = strings.Join(parts, "\n\n")
	}
	m.explanation.SetContent(m.explainText)
	m.explanation.GotoTop()
}

// clearAll resets input, output, changes, explanation, and session state.
// The connectivity status is left untouched.
func (m *Model) clearAll() {
	m.input.SetValue("")
	m.outputText = ""
	m.output.SetContent("")
	m.changes.SetItems(nil)
	m.changesCount = 0
	m.explainText = explanationHintText
	m.explanation.SetContent(m.explainText)
	m.session.Clear()
	m.copyEnabled = false
	m.addLog(logInfo, "Cleared all content")
}

func (m *Model) cycleModel() {
	models := corrector.Models()
	next := models[0]
	for i, id := range models {
		if id == m.modelID {
			next = models[(i+1)%len(models)]
			break
		}
	}
	m.modelID = next
	m.addLog(logInfo, "Model set to "+corrector.ModelDisplayName(next))
}

func (m Model) toggleFocus() (tea.Model, tea.Cmd) {
	if m.focus == focusInput {
		m.focus = focusChanges
		m.input.Blur()
		return m, nil
	}
	m.focus = focusInput
	return m, m.input.Focus()
}

func (m *Model) setStatus(level statusLevel, text string) {
	m.status = level
	m.stText = text
}

// addLog appends an entry and scrolls the log pane to the newest line.
func (m *Model) addLog(level logLevel, text string) {
	m.log.add(level, text)
	m.refreshLog()
}

func (m *Model) refreshLog() {
	m.logView.SetContent(m.log.render())
	m.logView.GotoBottom()
}
