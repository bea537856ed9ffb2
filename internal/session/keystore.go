package session

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// The persisted client state is a single string value under a fixed key.
const userIDKey = "userId"

// Keystore is a small durable key-value file holding the authenticated
// user id between runs.
type Keystore struct {
	path string
}

func NewKeystore(path string) *Keystore {
	return &Keystore{path: path}
}

func (k *Keystore) Save(userID string) error {
	data, err := json.Marshal(map[string]string{userIDKey: userID})
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(k.path), 0700); err != nil {
		return err
	}
	return os.WriteFile(k.path, data, 0600)
}

// Load returns the persisted user id, or "" when none exists.
func (k *Keystore) Load() (string, error) {
	data, err := os.ReadFile(k.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	var values map[string]string
	if err := json.Unmarshal(data, &values); err != nil {
		return "", err
	}
	return values[userIDKey], nil
}

func (k *Keystore) Clear() error {
	if err := os.Remove(k.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
