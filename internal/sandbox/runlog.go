package sandbox

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// RunLog records statistics gathered during one session.
type RunLog struct {
	Seed         string    `json:"seed"`
	Started      time.Time `json:"started"`
	Turns        int       `json:"turns"`
	DeepestLevel int       `json:"deepestLevel"`
	Deaths       int       `json:"deaths"` // other actors that died
	CauseOfDeath string    `json:"causeOfDeath,omitempty"`
	Outcome      string    `json:"outcome"`
}

// saveRunLog appends the finished session as one JSON line to runs.jsonl.
func saveRunLog(log RunLog) error {
	dir, err := runLogDir()
	if err != nil {
		return err
	}
	return appendRunLog(filepath.Join(dir, "runs.jsonl"), log)
}

func appendRunLog(path string, log RunLog) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("run log dir: %w", err)
	}
	data, err := json.Marshal(log)
	if err != nil {
		return fmt.Errorf("encode run log: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open run log: %w", err)
	}
	defer f.Close()
	_, err = f.Write(append(data, '\n'))
	return err
}

// runLogDir follows the XDG Base Directory layout: $XDG_DATA_HOME/roguemind,
// defaulting to ~/.local/share/roguemind.
func runLogDir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "roguemind"), nil
}
