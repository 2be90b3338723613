package prefs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const orderFile = "phoneme_order.json"

// Dir overrides the directory the order file lives in. Empty means the user config dir.
var Dir string

type orderDoc struct {
	Symbols []string `json:"symbols"`
}

func orderPath() (string, error) {
	dir := Dir
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(base, "ipachat")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(dir, orderFile), nil
}

// SavePhonemeOrder mirrors the user's phoneme order, as symbols, to a JSON file.
func SavePhonemeOrder(symbols []string) error {
	path, err := orderPath()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(orderDoc{Symbols: symbols}, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// LoadPhonemeOrder returns nil, nil when no order has been saved.
func LoadPhonemeOrder() ([]string, error) {
	path, err := orderPath()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var doc orderDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return doc.Symbols, nil
}

// ClearPhonemeOrder removes the saved order file if present.
func ClearPhonemeOrder() error {
	path, err := orderPath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
