package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"gengo-go/internal/util"
)

const (
	publicKeyEnvName  = "GENGO_PUBLIC_KEY"
	privateKeyEnvName = "GENGO_PRIVATE_KEY"
)

var ErrCredentialNotConfigured = errors.New("gengo_credential_not_configured")

type Keys struct {
	PublicKey  string
	PrivateKey string
}

type envKeys struct {
	PublicKey  string `envconfig:"PUBLIC_KEY"`
	PrivateKey string `envconfig:"PRIVATE_KEY"`
}

// LoadKeys reads the key pair from the app .env file; GENGO_PUBLIC_KEY and
// GENGO_PRIVATE_KEY in the process environment take precedence.
func LoadKeys() (Keys, error) {
	var keys Keys
	p, err := util.DefaultEnvPath()
	if err != nil {
		return Keys{}, err
	}
	values, err := godotenv.Read(p)
	switch {
	case err == nil:
		keys.PublicKey = strings.TrimSpace(values[publicKeyEnvName])
		keys.PrivateKey = strings.TrimSpace(values[privateKeyEnvName])
	case errors.Is(err, os.ErrNotExist):
	default:
		return Keys{}, fmt.Errorf("read .env: %w", err)
	}

	var env envKeys
	if err := envconfig.Process(envPrefix, &env); err != nil {
		return Keys{}, fmt.Errorf("read %s_* environment: %w", envPrefix, err)
	}
	if v := strings.TrimSpace(env.PublicKey); v != "" {
		keys.PublicKey = v
	}
	if v := strings.TrimSpace(env.PrivateKey); v != "" {
		keys.PrivateKey = v
	}

	if keys.PublicKey == "" || keys.PrivateKey == "" {
		return Keys{}, ErrCredentialNotConfigured
	}
	return keys, nil
}

// SaveKeys writes the key pair into the app .env file, keeping any other
// variables already stored there.
func SaveKeys(keys Keys) error {
	if strings.TrimSpace(keys.PublicKey) == "" || strings.TrimSpace(keys.PrivateKey) == "" {
		return fmt.Errorf("public and private keys must not be empty")
	}
	p, err := util.DefaultEnvPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	values, err := godotenv.Read(p)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("read .env: %w", err)
		}
		values = map[string]string{}
	}
	values[publicKeyEnvName] = strings.TrimSpace(keys.PublicKey)
	values[privateKeyEnvName] = strings.TrimSpace(keys.PrivateKey)
	if err := godotenv.Write(values, p); err != nil {
		return fmt.Errorf("write .env: %w", err)
	}
	// The private key is a secret.
	return os.Chmod(p, 0o600)
}
