package main

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
	"github.com/tobygrice/aesp"
)

// loadCipher reads the raw key bytes from the path bound to --key/AESP_KEY
// and derives a Cipher from them.
func loadCipher() (*aesp.Cipher, error) {
	path := viper.GetString("key")
	if path == "" {
		return nil, fmt.Errorf("no key provided: pass --key or set AESP_KEY")
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading key file %s: %w", path, err)
	}

	key, err := aesp.NewKey(raw)
	if err != nil {
		return nil, fmt.Errorf("loading key from %s: %w", path, err)
	}

	return aesp.NewCipher(key), nil
}

// generateAndLoadCipher samples a fresh random key of keyBits size, writes
// it to the path bound to --key/AESP_KEY so a later decrypt can reuse it,
// and derives a Cipher from it.
func generateAndLoadCipher(keyBits int) (*aesp.Cipher, error) {
	path := viper.GetString("key")
	if path == "" {
		return nil, fmt.Errorf("--gen-key requires a --key path to write the new key to")
	}

	key, err := aesp.NewRandomKey(keyBits, nil)
	if err != nil {
		return nil, fmt.Errorf("generating key: %w", err)
	}

	if err := os.WriteFile(path, key.Bytes(), 0o600); err != nil {
		return nil, fmt.Errorf("writing key to %s: %w", path, err)
	}

	return aesp.NewCipher(key), nil
}
