// Package config loads filewarden configuration: scope rules, the
// session operation allow-list, and audit sink settings. Loading and
// validation live here, outside the access pipeline; the core packages
// only ever see already-built rule stores.
package config

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ppiankov/filewarden/internal/pathscope"
)

// Scope is one scope rule record as written in YAML. Operation and audit
// level tokens are kept verbatim; anything outside the closed vocabulary
// is non-matching at evaluation time rather than a load error.
type Scope struct {
	Path                string   `yaml:"path"`
	Operations          []string `yaml:"operations"`
	SensitiveKeywords   []string `yaml:"sensitive_keywords"`
	RequireConfirmation bool     `yaml:"require_confirmation"`
	AuditLevel          string   `yaml:"audit_level"`
}

// Audit holds optional sink destinations for the session audit trail.
type Audit struct {
	JSONLPath  string `yaml:"jsonl_path"`
	SQLitePath string `yaml:"sqlite_path"`
}

// Config is the full filewarden configuration file.
type Config struct {
	Scopes            []Scope  `yaml:"scopes"`
	AllowedOperations []string `yaml:"allowed_operations"`
	Audit             Audit    `yaml:"audit"`
}

// Default returns the built-in configuration: documents read+write,
// financial read-only with confirmation, private fully closed, and a
// session allow-list containing only read_file.
func Default() *Config {
	return &Config{
		Scopes: []Scope{
			{
				Path:              "/home/user/documents",
				Operations:        []string{"read", "write"},
				SensitiveKeywords: []string{"password", "secret"},
				AuditLevel:        "medium",
			},
			{
				Path:                "/home/user/financial",
				Operations:          []string{"read"},
				SensitiveKeywords:   []string{"credit_card", "bank_account", "ssn"},
				RequireConfirmation: true,
				AuditLevel:          "high",
			},
			{
				Path:                "/home/user/private",
				Operations:          []string{"none"},
				RequireConfirmation: true,
				AuditLevel:          "high",
			},
		},
		AllowedOperations: []string{"read_file"},
	}
}

// DefaultPath returns ~/.filewarden/config.yaml, or empty when the home
// directory cannot be determined.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".filewarden", "config.yaml")
}

// Load reads configuration from a YAML file. An empty path falls back to
// DefaultPath. A missing file returns defaults; invalid YAML is an error.
func Load(path string) (*Config, error) {
	cfg, _, err := LoadWithHash(path)
	return cfg, err
}

// LoadWithHash loads configuration and returns a SHA-256 hash of the raw
// bytes on disk, for recording which rule set was in force. When no file
// exists, the hash is that of empty input.
func LoadWithHash(path string) (*Config, string, error) {
	if path == "" {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) || path == "" {
			h := sha256.Sum256(nil)
			return Default(), "sha256:" + hex.EncodeToString(h[:]), nil
		}
		return nil, "", fmt.Errorf("config: read %q: %w", path, err)
	}

	cfg := Default()
	cfg.Scopes = nil
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, "", fmt.Errorf("config: parse %q: %w", path, err)
	}
	if len(cfg.Scopes) == 0 {
		cfg.Scopes = Default().Scopes
	}
	if len(cfg.AllowedOperations) == 0 {
		cfg.AllowedOperations = Default().AllowedOperations
	}

	h := sha256.Sum256(data)
	return cfg, "sha256:" + hex.EncodeToString(h[:]), nil
}

// Rules converts the configured scopes into an ordered rule list for a
// pathscope store. File order is operator priority.
func (c *Config) Rules() []pathscope.ScopeRule {
	rules := make([]pathscope.ScopeRule, 0, len(c.Scopes))
	for _, s := range c.Scopes {
		ops := make([]pathscope.Operation, 0, len(s.Operations))
		for _, token := range s.Operations {
			op, _ := pathscope.ParseOperation(token)
			ops = append(ops, op)
		}
		rules = append(rules, pathscope.ScopeRule{
			ScopePath:           s.Path,
			Operations:          ops,
			SensitiveKeywords:   append([]string(nil), s.SensitiveKeywords...),
			RequireConfirmation: s.RequireConfirmation,
			AuditLevel:          pathscope.ParseAuditLevel(s.AuditLevel),
		})
	}
	return rules
}

// Store builds the permission store from the configured scopes.
func (c *Config) Store() (*pathscope.Store, error) {
	return pathscope.NewStore(c.Rules())
}
