package kconform

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Format identifies the encoding of a declared-configuration document.
type Format int

const (
	// FormatTOML parses the document as TOML.
	FormatTOML Format = iota
	// FormatJSON parses the document as JSON.
	FormatJSON
)

func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatJSON:
		return "json"
	default:
		return fmt.Sprintf("Format(%d)", f)
	}
}

// DocumentError reports a declared-configuration document that could not be
// parsed or validated: malformed syntax, a missing required field, or a
// state token outside the [DesiredState] vocabulary.
type DocumentError struct {
	// Path is the document file, empty for in-memory parses.
	Path string
	// Field names the offending field or element when known.
	Field string
	Err   error
}

func (e *DocumentError) Error() string {
	msg := "config document"
	if e.Path != "" {
		msg += " " + e.Path
	}
	if e.Field != "" {
		msg += ": " + e.Field
	}
	return fmt.Sprintf("%s: %v", msg, e.Err)
}

func (e *DocumentError) Unwrap() error {
	return e.Err
}

// ErrNoConfig is returned when no declared-configuration document could be
// resolved from the given files or the well-known default locations.
var ErrNoConfig = errors.New("no config document found")

// Option declares the desired state of a single kernel config option.
// Names are exact CONFIG_* identifiers: no normalization, no case folding.
type Option struct {
	Name  string       `json:"name" toml:"name"`
	State DesiredState `json:"state" toml:"state"`
}

func (o Option) String() string {
	return fmt.Sprintf("%s: %s", o.Name, o.State)
}

// Fragment is a named group of desired option states with an optional
// human-readable justification. The reason is advisory only: it is shown on
// relevant failures and never affects the outcome.
type Fragment struct {
	Name   string   `json:"name" toml:"name"`
	Reason string   `json:"reason,omitempty" toml:"reason,omitempty"`
	Kernel []Option `json:"kernel" toml:"kernel"`
}

// IsEmpty reports whether the fragment carries no data at all.
func (f Fragment) IsEmpty() bool {
	return f.Name == "" && f.Reason == "" && len(f.Kernel) == 0
}

// Config is a declared kernel-checking configuration: an optional global
// name, ungrouped top-level kernel options, and an ordered list of
// fragments. Fragment and option order is preserved through parsing and
// comparison so reports are stable.
type Config struct {
	Name     string     `json:"name,omitempty" toml:"name,omitempty"`
	Kernel   []Option   `json:"kernel,omitempty" toml:"kernel,omitempty"`
	Fragment []Fragment `json:"fragment,omitempty" toml:"fragment,omitempty"`
}

// IsEmpty reports whether the config declares nothing.
func (c *Config) IsEmpty() bool {
	return c.Name == "" && len(c.Kernel) == 0 && len(c.Fragment) == 0
}

// Append moves all fragments and top-level options of other into c,
// preserving order. The global name of c wins.
func (c *Config) Append(other *Config) {
	c.Kernel = append(c.Kernel, other.Kernel...)
	c.Fragment = append(c.Fragment, other.Fragment...)
}

// ParseConfig deserializes a declared-configuration document and validates
// it against the closed DesiredState vocabulary. Failures are reported as a
// *[DocumentError].
func ParseConfig(data []byte, format Format) (*Config, error) {
	var cfg Config

	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, &DocumentError{Err: err}
		}
	case FormatJSON:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, &DocumentError{Err: err}
		}
	default:
		return nil, &DocumentError{Err: fmt.Errorf("unknown document format %s", format)}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate enforces the required fields the decoders cannot: every fragment
// needs a name, every option needs both a name and a state.
func (c *Config) validate() error {
	if err := validateOptions("kernel", c.Kernel); err != nil {
		return err
	}

	for i, frag := range c.Fragment {
		if frag.Name == "" {
			return &DocumentError{
				Field: fmt.Sprintf("fragment[%d].name", i),
				Err:   errors.New("missing required field"),
			}
		}
		prefix := fmt.Sprintf("fragment[%d].kernel", i)
		if err := validateOptions(prefix, frag.Kernel); err != nil {
			return err
		}
	}
	return nil
}

func validateOptions(prefix string, options []Option) error {
	for i, opt := range options {
		if opt.Name == "" {
			return &DocumentError{
				Field: fmt.Sprintf("%s[%d].name", prefix, i),
				Err:   errors.New("missing required field"),
			}
		}
		if opt.State == stateInvalid {
			return &DocumentError{
				Field: fmt.Sprintf("%s[%d].state", prefix, i),
				Err:   errors.New("missing required field"),
			}
		}
	}
	return nil
}

// LoadConfig reads and parses a declared-configuration document, picking the
// format from the file extension (.toml or .json).
func LoadConfig(path string) (*Config, error) {
	var format Format
	switch ext := filepath.Ext(path); ext {
	case ".toml":
		format = FormatTOML
	case ".json":
		format = FormatJSON
	case "":
		return nil, &DocumentError{Path: path, Err: errors.New("missing file extension")}
	default:
		return nil, &DocumentError{Path: path, Err: fmt.Errorf("unknown file type %q", ext)}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &DocumentError{Path: path, Err: err}
	}

	cfg, err := ParseConfig(data, format)
	if err != nil {
		var derr *DocumentError
		if errors.As(err, &derr) {
			derr.Path = path
		}
		return nil, err
	}
	return cfg, nil
}

// Well-known locations merged into every generated config when present.
var defaultConfigPaths = []string{
	"/etc/kconform.toml",
	"/etc/kconform.json",
}

// GenerateConfig builds a single [Config] from the well-known default
// locations plus the given files, appending fragments in order. Default
// locations are skipped when absent; explicitly given files must exist.
// Returns [ErrNoConfig] when nothing usable was found.
func GenerateConfig(paths ...string) (*Config, error) {
	candidates := make([]string, 0, len(defaultConfigPaths)+len(paths))
	candidates = append(candidates, defaultConfigPaths...)

	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			return nil, &DocumentError{Path: p, Err: err}
		}
		candidates = append(candidates, p)
	}

	var combined *Config
	for _, p := range candidates {
		cfg, err := LoadConfig(p)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, err
		}
		if combined == nil {
			combined = cfg
		} else {
			combined.Append(cfg)
		}
	}

	if combined == nil {
		return nil, ErrNoConfig
	}
	return combined, nil
}
