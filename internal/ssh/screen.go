package ssh

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	gossh "github.com/gliderlabs/ssh"
)

// ErrNoPTY is returned for sessions opened without a terminal.
var ErrNoPTY = errors.New("ssh: session has no PTY")

// DefaultTerm is used when the client's TERM is missing or not allowed.
const DefaultTerm = "xterm-256color"

// AllowedTerms lists the TERM values looked up in terminfo. Anything else
// falls back to DefaultTerm so a client cannot name arbitrary entries.
var AllowedTerms = map[string]bool{
	"xterm":                 true,
	"xterm-256color":        true,
	"screen":                true,
	"screen-256color":       true,
	"tmux":                  true,
	"tmux-256color":         true,
	"linux":                 true,
	"vt100":                 true,
	"rxvt-unicode":          true,
	"rxvt-unicode-256color": true,
}

// Term picks the terminal type from a session environment.
func Term(environ []string) string {
	for _, env := range environ {
		if term, ok := strings.CutPrefix(env, "TERM="); ok {
			if AllowedTerms[term] {
				return term
			}
			break
		}
	}
	return DefaultTerm
}

// termMu serialises os.Setenv("TERM") around terminfo lookup; sessions
// build their screens concurrently.
var termMu sync.Mutex

// sessionScreen makes Fini safe to call from both the handler and the
// session watcher.
type sessionScreen struct {
	tcell.Screen
	fini sync.Once
}

func (s *sessionScreen) Fini() { s.fini.Do(s.Screen.Fini) }

// NewScreen builds and initialises a tcell screen on top of s. The screen
// is finalised when the session's context ends, which unblocks PollEvent.
func NewScreen(s gossh.Session) (tcell.Screen, error) {
	pty, winCh, ok := s.Pty()
	if !ok {
		return nil, ErrNoPTY
	}
	tty := NewSessionTty(s, pty, winCh)

	termMu.Lock()
	_ = os.Setenv("TERM", Term(s.Environ()))
	ts, err := tcell.NewTerminfoScreenFromTty(tty)
	termMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("terminal setup: %w", err)
	}
	screen := &sessionScreen{Screen: ts}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("screen init: %w", err)
	}
	go func() {
		<-s.Context().Done()
		screen.Fini()
	}()
	return screen, nil
}
