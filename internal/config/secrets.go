package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jonathan/cv-analyzer/internal/llm"
)

// DefaultSecretsFile is picked up automatically when it exists in the working directory
const DefaultSecretsFile = "secrets.yaml"

// Secrets resolves credentials from an optional YAML secret store, then the
// process environment.
type Secrets struct {
	values map[string]string
	env    func(string) (string, bool)
}

var _ llm.CredentialSource = (*Secrets)(nil)

// NewSecrets creates a secret store over values, falling back to the environment
func NewSecrets(values map[string]string) *Secrets {
	if values == nil {
		values = map[string]string{}
	}
	return &Secrets{values: values, env: os.LookupEnv}
}

// LoadSecrets reads a flat KEY: value YAML file. An empty path yields an
// environment-only store; an explicit path that cannot be read is an error.
func LoadSecrets(path string) (*Secrets, error) {
	if path == "" {
		return NewSecrets(nil), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read secrets file %s: %w", path, err)
	}

	raw := map[string]any{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse secrets YAML: %w", err)
	}

	values := make(map[string]string, len(raw))
	for k, v := range raw {
		if v == nil {
			continue
		}
		values[k] = fmt.Sprint(v)
	}
	return NewSecrets(values), nil
}

// ResolveSecretsFile returns path, or DefaultSecretsFile when path is empty
// and that file exists.
func ResolveSecretsFile(path string) string {
	if path != "" {
		return path
	}
	if _, err := os.Stat(DefaultSecretsFile); err == nil {
		return DefaultSecretsFile
	}
	return ""
}

// Lookup implements llm.CredentialSource
func (s *Secrets) Lookup(key string) (string, bool) {
	if v, ok := s.values[key]; ok && strings.TrimSpace(v) != "" {
		return v, true
	}
	if s.env == nil {
		return "", false
	}
	v, ok := s.env(key)
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return v, true
}
