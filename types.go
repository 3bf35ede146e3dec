package kconform

import (
	"errors"
	"fmt"
)

// ConfigValue represents the observed state of a kernel configuration option.
//
// Kconfig never writes an explicit "no": an option that is disabled is either
// omitted from the config entirely or recorded as a "# CONFIG_X is not set"
// comment. Both normalize to [ConfigAbsent].
type ConfigValue int

const (
	// ConfigAbsent means the option is not present, or present only as a
	// "# CONFIG_X is not set" line.
	ConfigAbsent ConfigValue = iota
	// ConfigModule means the option is set to =m (loadable module).
	ConfigModule
	// ConfigBuiltin means the option is set to =y (built-in).
	ConfigBuiltin
	// ConfigPresent means the option carries a non-tri-state value
	// (string, int, or hex). It satisfies On and Enabled, never Module.
	ConfigPresent
)

// IsEnabled returns true if the option is present in any form.
func (v ConfigValue) IsEnabled() bool {
	return v != ConfigAbsent
}

// IsBuiltin returns true if the option is built-in (=y).
func (v ConfigValue) IsBuiltin() bool {
	return v == ConfigBuiltin
}

func (v ConfigValue) String() string {
	switch v {
	case ConfigAbsent:
		return "not set"
	case ConfigModule:
		return "m"
	case ConfigBuiltin:
		return "y"
	case ConfigPresent:
		return "set"
	default:
		return fmt.Sprintf("ConfigValue(%d)", v)
	}
}

// MarshalText implements [encoding.TextMarshaler] so JSON reports carry
// the human-readable value rather than an integer.
func (v ConfigValue) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// DesiredState is the vocabulary a declared document may request for an
// option. It is richer than the kernel's tri-state so users can express
// intent without caring about mechanism: Enabled accepts both =y and =m.
type DesiredState int

const (
	stateInvalid DesiredState = iota

	// StateOn requires the option to be built-in (=y).
	StateOn
	// StateOff requires the option to be absent.
	StateOff
	// StateModule requires the option to be a module (=m).
	StateModule
	// StateEnabled requires the option to be built-in or a module.
	StateEnabled
)

// desiredStateTokens is the closed set of tokens accepted in declared
// documents. Matching is case-sensitive and exact.
var desiredStateTokens = map[string]DesiredState{
	"On":      StateOn,
	"Off":     StateOff,
	"Module":  StateModule,
	"Enabled": StateEnabled,
}

func (s DesiredState) String() string {
	switch s {
	case StateOn:
		return "On"
	case StateOff:
		return "Off"
	case StateModule:
		return "Module"
	case StateEnabled:
		return "Enabled"
	default:
		return fmt.Sprintf("DesiredState(%d)", s)
	}
}

// MarshalText implements [encoding.TextMarshaler].
func (s DesiredState) MarshalText() ([]byte, error) {
	if _, ok := desiredStateTokens[s.String()]; !ok {
		return nil, fmt.Errorf("invalid kernel config state %d", s)
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler]. Both the TOML and
// JSON decoders route state fields through here, so unknown tokens fail at
// the document boundary rather than inside the comparison.
func (s *DesiredState) UnmarshalText(text []byte) error {
	state, ok := desiredStateTokens[string(text)]
	if !ok {
		return fmt.Errorf("unknown kernel config state %q (valid: On, Off, Module, Enabled)", text)
	}
	*s = state
	return nil
}

// Matches reports whether an observed kernel config value satisfies a
// desired state. It is total: every (desired, observed) pair has an answer
// and there is no error path.
//
//	desired   y      m      absent  present
//	On        true   false  false   true
//	Module    false  true   false   false
//	Off       false  false  true    false
//	Enabled   true   true   false   true
func Matches(desired DesiredState, observed ConfigValue) bool {
	switch desired {
	case StateOn:
		return observed == ConfigBuiltin || observed == ConfigPresent
	case StateModule:
		return observed == ConfigModule
	case StateOff:
		return observed == ConfigAbsent
	case StateEnabled:
		return observed != ConfigAbsent
	default:
		return false
	}
}

// ErrUnsupportedPlatform is returned by operations that require a Linux
// system, such as running-kernel config discovery.
var ErrUnsupportedPlatform = errors.New("not supported on this platform")
