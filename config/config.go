// Package config loads and persists user preferences for mustang tools.
//
// Preferences live in an INI file under the XDG config directory
// (mustang/mustang.config). Missing keys fall back to defaults and the merged
// result is written back, so the file always lists every setting.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/ini.v1"

	"github.com/moffa90/go-mustang/amp"
)

// RelPath is the config file location relative to the XDG config home.
const RelPath = "mustang/mustang.config"

// File is the full set of persisted preferences, one field per INI section.
type File struct {
	USB  USB  `ini:"usb"`
	Log  Log  `ini:"log"`
	Midi Midi `ini:"midi"`
}

// USB holds device session settings.
type USB struct {
	Timeout    time.Duration `ini:"timeout"`
	Attempts   int           `ini:"attempts"`
	ProductIDs []string      `ini:"product_ids" delim:","`
	Interface  int           `ini:"interface"`
}

// Log selects the log level (debug, info, warn, error) and format (text, json).
type Log struct {
	Level  string `ini:"level"`
	Format string `ini:"format"`
}

// Midi names the foot controller input port and the channel it listens on (0-15).
type Midi struct {
	Port    string `ini:"port"`
	Channel int    `ini:"channel"`
}

// Default returns the built-in preferences.
func Default() *File {
	return &File{
		USB: USB{
			Timeout:  500 * time.Millisecond,
			Attempts: 3,
		},
		Log: Log{
			Level:  "info",
			Format: "text",
		},
		Midi: Midi{
			Port:    "",
			Channel: 0,
		},
	}
}

// Path returns the config file path, creating its directory if needed.
func Path() (string, error) {
	return xdg.ConfigFile(RelPath)
}

// LoadDefault loads the config file at Path.
func LoadDefault() (*File, string, error) {
	path, err := Path()
	if err != nil {
		return nil, "", err
	}
	f, err := Load(path)
	return f, path, err
}

// Load reads preferences from path over the defaults and writes the merged
// result back. A missing file is created with the defaults. Values may
// reference environment variables as $VAR or ${VAR}.
func Load(path string) (*File, error) {
	f := Default()

	// Loose treats a missing file as empty
	cfg, err := ini.LoadSources(ini.LoadOptions{Loose: true}, path)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	cfg.NameMapper = ini.TitleUnderscore
	cfg.ValueMapper = os.ExpandEnv

	sections := []struct {
		name string
		dst  any
	}{
		{"usb", &f.USB},
		{"log", &f.Log},
		{"midi", &f.Midi},
	}
	for _, s := range sections {
		section, err := cfg.GetSection(s.name)
		if err != nil {
			continue
		}
		if err := section.MapTo(s.dst); err != nil {
			return nil, fmt.Errorf("config %s [%s]: %w", path, s.name, err)
		}
	}

	if err := f.Save(path); err != nil {
		return nil, err
	}
	return f, nil
}

// Save writes f to path.
func (f *File) Save(path string) error {
	out := ini.Empty()
	if err := ini.ReflectFromWithMapper(out, f, ini.TitleUnderscore); err != nil {
		return fmt.Errorf("config %s: %w", path, err)
	}
	if err := out.SaveTo(path); err != nil {
		return fmt.Errorf("config %s: %w", path, err)
	}
	return nil
}

// ParseProductIDs parses the configured product ID list. An empty list means
// every known model.
func (u USB) ParseProductIDs() ([]uint16, error) {
	var ids []uint16
	for _, s := range u.ProductIDs {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		v, err := strconv.ParseUint(s, 0, 16)
		if err != nil {
			return nil, fmt.Errorf("usb product id %q: %w", s, err)
		}
		ids = append(ids, uint16(v))
	}
	return ids, nil
}

// Options converts the [usb] section into session options.
func (f *File) Options() ([]amp.Option, error) {
	ids, err := f.USB.ParseProductIDs()
	if err != nil {
		return nil, err
	}
	opts := []amp.Option{
		amp.WithTimeout(f.USB.Timeout),
		amp.WithAttempts(f.USB.Attempts),
		amp.WithInterface(f.USB.Interface),
	}
	if len(ids) > 0 {
		opts = append(opts, amp.WithProductIDs(ids...))
	}
	return opts, nil
}

// NewLogger builds a slog logger writing to w in the configured format and
// level.
func (l Log) NewLogger(w io.Writer) (*slog.Logger, error) {
	level := new(slog.LevelVar)
	if l.Level != "" {
		var lv slog.Level
		if err := lv.UnmarshalText([]byte(l.Level)); err != nil {
			return nil, fmt.Errorf("log level %q: %w", l.Level, err)
		}
		level.Set(lv)
	}

	opts := &slog.HandlerOptions{Level: level}
	switch strings.ToLower(l.Format) {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("log format %q: must be text or json", l.Format)
	}
}
