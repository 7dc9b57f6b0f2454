// Package message is the write-only in-game message log.
package message

import "fmt"

// MaxMessages is how many lines Log keeps.
const MaxMessages = 50

// Sink receives human-readable notifications. It is never queried by the
// code that writes to it.
type Sink interface {
	Add(format string, args ...any)
}

// Log keeps the most recent MaxMessages lines for the HUD.
type Log struct {
	lines []string
}

// Add formats and appends one line, dropping the oldest beyond the cap.
func (l *Log) Add(format string, args ...any) {
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
	if len(l.lines) > MaxMessages {
		l.lines = l.lines[len(l.lines)-MaxMessages:]
	}
}

// Lines returns the kept lines, oldest first.
func (l *Log) Lines() []string { return l.lines }

// Last returns the newest line, or "" when empty.
func (l *Log) Last() string {
	if len(l.lines) == 0 {
		return ""
	}
	return l.lines[len(l.lines)-1]
}

// Discard drops every message. AI-controlled actors write here.
var Discard Sink = discard{}

type discard struct{}

func (discard) Add(string, ...any) {}
