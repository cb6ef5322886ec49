package app

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/RohitValiveti/Fitness-Tracker/internal/model"
)

// The credentials file is the only state this client keeps on disk: the
// session triple, so the CLI stays logged in between invocations. Entity
// data is never persisted.

type storedCredentials struct {
	SessionToken      string    `json:"session_token"`
	UpdateToken       string    `json:"update_token"`
	SessionExpiration time.Time `json:"session_expiration"`
}

func SaveCredentials(path string, s model.Session) error {
	if err := EnsureParentDir(path); err != nil {
		return err
	}
	data, err := json.MarshalIndent(storedCredentials{
		SessionToken:      s.Token,
		UpdateToken:       s.UpdateToken,
		SessionExpiration: s.Expiration,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal credentials: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}
	return nil
}

// LoadCredentials returns the stored session, reporting found=false when no
// credentials file exists yet.
func LoadCredentials(path string) (model.Session, bool, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return model.Session{}, false, nil
	}
	if err != nil {
		return model.Session{}, false, fmt.Errorf("read credentials: %w", err)
	}
	var stored storedCredentials
	if err := json.Unmarshal(data, &stored); err != nil {
		return model.Session{}, false, fmt.Errorf("decode credentials: %w", err)
	}
	return model.Session{
		Token:       stored.SessionToken,
		UpdateToken: stored.UpdateToken,
		Expiration:  stored.SessionExpiration,
	}, true, nil
}

func DeleteCredentials(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete credentials: %w", err)
	}
	return nil
}
