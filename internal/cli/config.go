package cli

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	nfberrors "github.com/matzehuels/nfbstudio/pkg/errors"
	"github.com/matzehuels/nfbstudio/pkg/export"
	"github.com/matzehuels/nfbstudio/pkg/scheme"
)

// Config is the user configuration read from config.toml:
//
//	log_level = "info"
//	paste_offset = [20.0, 20.0]
//	clipboard_dir = "/tmp/nfb-clipboard"
//
//	[export]
//	indent = "\t"
type Config struct {
	LogLevel     string       `toml:"log_level"`
	PasteOffset  []float64    `toml:"paste_offset"`
	ClipboardDir string       `toml:"clipboard_dir"`
	Export       ExportConfig `toml:"export"`
}

// ExportConfig configures experiment export.
type ExportConfig struct {
	Indent string `toml:"indent"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	off := scheme.DefaultPasteOffset
	return Config{
		PasteOffset: []float64{off.X, off.Y},
		Export:      ExportConfig{Indent: export.DefaultIndent},
	}
}

// LoadConfig reads the config file at path over the defaults. A missing
// file yields the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, nfberrors.Wrap(nfberrors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, nfberrors.New(nfberrors.ErrCodeInvalidConfig, "%s: unknown key %q", path, undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration values.
func (c Config) Validate() error {
	if len(c.PasteOffset) != 2 {
		return nfberrors.New(nfberrors.ErrCodeInvalidConfig,
			"paste_offset must have two values, got %d", len(c.PasteOffset))
	}
	return nil
}

func (c Config) pasteOffset() scheme.Point {
	if len(c.PasteOffset) != 2 {
		return scheme.DefaultPasteOffset
	}
	return scheme.Pt(c.PasteOffset[0], c.PasteOffset[1])
}
