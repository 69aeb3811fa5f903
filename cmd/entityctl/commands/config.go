package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/jholhewres/msgentity/pkg/msgentity/tld"
)

// extensionConfig is the optional startup-only file entityctl reads to widen
// the compiled-in TLD table and short-username whitelist for local testing.
// It is read once by loadExtensions, never consulted mid-call —
// the engine itself takes no runtime configuration.
type extensionConfig struct {
	ExtraTLDs          []string `yaml:"extra_tlds"`
	ExtraShortMentions []string `yaml:"extra_short_mentions"`
}

// loadEnvFiles loads .env files from the working directory. By default
// godotenv does not overwrite variables already set in the environment.
func loadEnvFiles() {
	for _, f := range []string{".env", ".env.local"} {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			slog.Warn("failed to load env file", "file", f, "err", err)
		}
	}
}

// loadExtensions reads path (if non-empty) and extends the TLD table and
// short-mention whitelist accordingly.
func loadExtensions(path string) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	var cfg extensionConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}
	for _, t := range cfg.ExtraTLDs {
		tld.AddExtraTLD(t)
	}
	for _, name := range cfg.ExtraShortMentions {
		tld.AddExtraShortMention(name)
	}
	return nil
}

// newLogger builds the process logger the way the teacher's serve command
// does: JSON for non-interactive use, text when attached to the repl.
func newLogger(text bool, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	var handler slog.Handler
	if text {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	} else {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	}
	return slog.New(handler)
}
