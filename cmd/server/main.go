// roguemind-server hosts one sandbox per SSH connection. Build:
//
//	go build -o roguemind-server ./cmd/server
//
// Usage:
//
//	./roguemind-server [--port 2222] [--key server_host_key] [--config .]
//
// Connect:
//
//	ssh -t -p 2222 localhost
package main

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"flag"
	"fmt"
	"os"
	"unicode"
	"unicode/utf8"

	gossh "github.com/gliderlabs/ssh"
	"github.com/rs/zerolog"
	xssh "golang.org/x/crypto/ssh"

	"roguemind/internal/config"
	"roguemind/internal/logging"
	"roguemind/internal/preset"
	"roguemind/internal/sandbox"
	"roguemind/internal/snapshot"
	internalssh "roguemind/internal/ssh"
)

func main() {
	port := flag.Int("port", 2222, "SSH server port")
	keyFile := flag.String("key", "server_host_key", "Path to the PEM-encoded host key (auto-generated if absent)")
	configDir := flag.String("config", ".", "Directory holding roguemind.yaml")
	flag.Parse()

	cfgErr := config.Load(*configDir)
	tuning := config.Current()
	log := logging.New(os.Stderr, tuning.LogLevel)
	if cfgErr != nil {
		log.Warn().Err(cfgErr).Msg("using default configuration")
	}

	presets, err := preset.Load(tuning.PresetsFile)
	if err != nil {
		log.Fatal().Err(err).Str("file", tuning.PresetsFile).Msg("load presets")
	}
	var store *snapshot.Store
	if tuning.SnapshotPath != "" {
		if store, err = snapshot.Open(tuning.SnapshotPath, log); err != nil {
			log.Fatal().Err(err).Msg("open snapshot store")
		}
		defer store.Close()
	}

	h := &host{tuning: tuning, presets: presets, store: store, log: log}
	srv := &gossh.Server{
		Addr:    fmt.Sprintf(":%d", *port),
		Handler: h.handleSession,
		// Accept PTY requests from any client.
		PtyCallback: func(_ gossh.Context, _ gossh.Pty) bool { return true },
		// Accept any authentication; add gossh.PublicKeyAuth for real auth.
		HostSigners: []gossh.Signer{loadOrCreateHostKey(*keyFile, log)},
	}

	log.Info().Int("port", *port).Msg("roguemind SSH server listening")
	if err := srv.ListenAndServe(); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

// host builds a fresh sandbox for each connection.
type host struct {
	tuning  config.Tuning
	presets *preset.Set
	store   *snapshot.Store
	log     zerolog.Logger
}

// handleSession blocks for the duration of the connection so the SSH
// session stays open.
func (h *host) handleSession(s gossh.Session) {
	name := sanitizeName(s.User())
	if name == "" {
		name = "guest"
	}
	log := h.log.With().Str("user", name).Str("remote", s.RemoteAddr().String()).Logger()

	screen, err := internalssh.NewScreen(s)
	if err != nil {
		fmt.Fprintf(s, "%v. Connect with: ssh -t -p <port> <host>\n", err)
		log.Warn().Err(err).Msg("session rejected")
		return
	}
	defer screen.Fini()

	sb, err := sandbox.New(screen, sandbox.Options{
		Tuning:  h.tuning,
		Presets: h.presets,
		Log:     log,
		Store:   h.store,
		Slot:    name,
		Seed:    fmt.Sprintf("%s:%s", h.tuning.Seed, name),
	})
	if err != nil {
		log.Error().Err(err).Msg("sandbox setup failed")
		return
	}
	log.Info().Msg("session started")
	sb.Run()
}

// sanitizeName strips control characters and caps the name at 16 bytes
// without splitting a rune. It names the player's snapshot slot.
func sanitizeName(s string) string {
	const maxBytes = 16
	out := make([]byte, 0, maxBytes)
	for _, r := range s {
		if unicode.IsControl(r) || r == utf8.RuneError {
			continue
		}
		if len(out)+utf8.RuneLen(r) > maxBytes {
			break
		}
		out = utf8.AppendRune(out, r)
	}
	return string(out)
}

// loadOrCreateHostKey loads a PEM private key from path, or generates and
// persists a new ed25519 key if the file is absent or unreadable.
func loadOrCreateHostKey(path string, log zerolog.Logger) gossh.Signer {
	if data, err := os.ReadFile(path); err == nil {
		if signer, err := xssh.ParsePrivateKey(data); err == nil {
			log.Info().Str("path", path).Msg("loaded host key")
			return signer
		}
	}

	log.Info().Str("path", path).Msg("generating new ed25519 host key")
	_, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		log.Fatal().Err(err).Msg("generate host key")
	}
	signer, err := xssh.NewSignerFromKey(key)
	if err != nil {
		log.Fatal().Err(err).Msg("create signer")
	}
	if pemBlock, err := xssh.MarshalPrivateKey(key, "roguemind server"); err == nil {
		if err := os.WriteFile(path, pem.EncodeToMemory(pemBlock), 0o600); err != nil {
			log.Warn().Err(err).Msg("host key not persisted")
		}
	}
	return signer
}
