package kconform

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// ErrKernelConfigNotFound is returned when no kernel config source could be
// located. It is distinct from a [SourceError]: callers can tell "could not
// locate" apart from "could not read".
var ErrKernelConfigNotFound = errors.New("kernel config not found")

// SourceError reports a kernel config source that was resolved but could
// not be read or decompressed.
type SourceError struct {
	Path string
	Err  error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("kernel config %s: %v", e.Path, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// KernelConfig is an immutable snapshot of an observed kernel configuration:
// a mapping from exact CONFIG_* identifiers to their tri-state-derived
// values. It is built once per run and never mutated.
type KernelConfig struct {
	options map[string]ConfigValue
}

// NewKernelConfig creates a KernelConfig from a raw option map.
// The map is copied to ensure immutability after construction.
func NewKernelConfig(options map[string]ConfigValue) *KernelConfig {
	copied := make(map[string]ConfigValue, len(options))
	for k, v := range options {
		copied[k] = v
	}
	return &KernelConfig{options: copied}
}

// Get returns the observed value for a full CONFIG_* identifier.
// Unknown options report [ConfigAbsent]: absence is data, not an error.
func (kc *KernelConfig) Get(name string) ConfigValue {
	if kc == nil || kc.options == nil {
		return ConfigAbsent
	}
	return kc.options[name]
}

// Has reports whether the option appeared in the config text in any form,
// including as an explicit "is not set" line.
func (kc *KernelConfig) Has(name string) bool {
	if kc == nil || kc.options == nil {
		return false
	}
	_, ok := kc.options[name]
	return ok
}

// Len returns the number of recorded options.
func (kc *KernelConfig) Len() int {
	if kc == nil {
		return 0
	}
	return len(kc.options)
}

// Names returns all recorded option names in lexical order.
func (kc *KernelConfig) Names() []string {
	if kc == nil {
		return nil
	}
	names := make([]string, 0, len(kc.options))
	for name := range kc.options {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseKernelConfig parses line-oriented kernel config text.
//
// Recognized shapes:
//
//	CONFIG_X=y                 built-in
//	CONFIG_X=m                 module
//	# CONFIG_X is not set      explicitly absent
//	CONFIG_X=<anything else>   present, non-tri-state
//
// Everything else (comments, blanks, unknown shapes) is skipped: the
// kernel's config format evolves and unknown lines must not abort parsing.
// Only a structurally unreadable stream is an error.
func ParseKernelConfig(r io.Reader) (*KernelConfig, error) {
	options := make(map[string]ConfigValue)
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if rest, ok := strings.CutPrefix(line, "# "); ok {
			if name, ok := strings.CutSuffix(rest, " is not set"); ok && strings.HasPrefix(name, "CONFIG_") {
				options[name] = ConfigAbsent
			}
			continue
		}
		if strings.HasPrefix(line, "#") {
			continue
		}

		if !strings.HasPrefix(line, "CONFIG_") {
			continue
		}
		name, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}

		switch value {
		case "y":
			options[name] = ConfigBuiltin
		case "m":
			options[name] = ConfigModule
		default:
			options[name] = ConfigPresent
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return NewKernelConfig(options), nil
}

// gzip magic bytes, per RFC 1952.
var gzipMagic = []byte{0x1f, 0x8b}

// LoadKernelConfig reads and parses a kernel config file. Gzip-compressed
// files (such as /proc/config.gz) are detected by their magic bytes and
// inflated transparently. Read, inflate, and parse failures are reported as
// a *[SourceError] carrying the resolved path.
func LoadKernelConfig(path string) (*KernelConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &SourceError{Path: path, Err: err}
	}

	var reader io.Reader = bytes.NewReader(data)
	if bytes.HasPrefix(data, gzipMagic) {
		gz, err := gzip.NewReader(reader)
		if err != nil {
			return nil, &SourceError{Path: path, Err: err}
		}
		defer gz.Close()
		reader = gz
	}

	kc, err := ParseKernelConfig(reader)
	if err != nil {
		return nil, &SourceError{Path: path, Err: err}
	}
	return kc, nil
}
