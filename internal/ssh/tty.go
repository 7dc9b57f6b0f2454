// Package ssh adapts a gliderlabs/ssh session into a tcell screen so each
// connection can drive its own sandbox.
package ssh

import (
	"context"
	"sync"

	"github.com/gdamore/tcell/v2"
	gossh "github.com/gliderlabs/ssh"
)

// SessionTty implements tcell.Tty backed by an SSH session.
type SessionTty struct {
	session gossh.Session
	mu      sync.Mutex
	window  gossh.Window
	winCh   <-chan gossh.Window
	cb      func() // resize callback registered by tcell
	watch   sync.Once
}

// NewSessionTty wraps s as a tcell Tty. pty holds the initial window size;
// winCh delivers later resizes.
func NewSessionTty(s gossh.Session, pty gossh.Pty, winCh <-chan gossh.Window) *SessionTty {
	return &SessionTty{
		session: s,
		window:  pty.Window,
		winCh:   winCh,
	}
}

func (t *SessionTty) Read(b []byte) (int, error) { return t.session.Read(b) }

func (t *SessionTty) Write(b []byte) (int, error) { return t.session.Write(b) }

func (t *SessionTty) Close() error { return t.session.Close() }

// Start, Stop and Drain are no-ops: the channel belongs to the server
// handler and writes are not buffered.
func (t *SessionTty) Start() error { return nil }

func (t *SessionTty) Stop() error { return nil }

func (t *SessionTty) Drain() error { return nil }

// WindowSize returns the current terminal dimensions.
func (t *SessionTty) WindowSize() (tcell.WindowSize, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return tcell.WindowSize{Width: t.window.Width, Height: t.window.Height}, nil
}

// NotifyResize registers cb for window changes. The channel is drained by a
// single goroutine for the lifetime of the session, however often tcell
// re-registers.
func (t *SessionTty) NotifyResize(cb func()) {
	t.mu.Lock()
	t.cb = cb
	t.mu.Unlock()

	t.watch.Do(func() {
		go t.resizeLoop(t.session.Context())
	})
}

func (t *SessionTty) resizeLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case win, ok := <-t.winCh:
			if !ok {
				return
			}
			t.resize(win)
		}
	}
}

func (t *SessionTty) resize(win gossh.Window) {
	t.mu.Lock()
	t.window = win
	cb := t.cb
	t.mu.Unlock()
	if cb != nil {
		cb()
	}
}
