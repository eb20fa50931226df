package tui

import (
	"strings"
	"time"

	"github.com/ndquang/vietproof/internal/core/styles"
)

// maxLogEntries caps the activity log; older entries are dropped.
const maxLogEntries = 200

type logLevel int

const (
	logInfo logLevel = iota
	logSuccess
	logError
)

type logEntry struct {
	at    time.Time
	level logLevel
	text  string
}

// activityLog is the in-memory buffer behind the activity log pane.
type activityLog struct {
	entries []logEntry
}

func (l *activityLog) add(level logLevel, text string) {
	l.entries = append(l.entries, logEntry{at: time.Now(), level: level, text: text})
	if len(l.entries) > maxLogEntries {
		l.entries = l.entries[len(l.entries)-maxLogEntries:]
	}
}

func (l *activityLog) clear() {
	l.entries = nil
}

func (l *activityLog) len() int {
	return len(l.entries)
}

// render formats all entries, one per line, oldest first.
func (l *activityLog) render() string {
	var b strings.Builder
	for i, e := range l.entries {
		if i > 0 {
			b.WriteByte('\n')
		}

		style := styles.LogInfoStyle
		switch e.level {
		case logSuccess:
			style = styles.LogSuccessStyle
		case logError:
			style = styles.LogErrorStyle
		}

		b.WriteString(styles.LogTimeStyle.Render(e.at.Format("15:04:05")))
		b.WriteByte(' ')
		b.WriteString(style.Render(e.text))
	}
	return b.String()
}
