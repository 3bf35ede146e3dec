package kconform

import (
	"strings"
	"testing"
)

func TestMatches_TruthTable(t *testing.T) {
	tests := []struct {
		desired  DesiredState
		observed ConfigValue
		want     bool
	}{
		{StateOn, ConfigBuiltin, true},
		{StateOn, ConfigModule, false},
		{StateOn, ConfigAbsent, false},
		{StateOn, ConfigPresent, true},

		{StateModule, ConfigBuiltin, false},
		{StateModule, ConfigModule, true},
		{StateModule, ConfigAbsent, false},
		{StateModule, ConfigPresent, false},

		{StateOff, ConfigBuiltin, false},
		{StateOff, ConfigModule, false},
		{StateOff, ConfigAbsent, true},
		{StateOff, ConfigPresent, false},

		{StateEnabled, ConfigBuiltin, true},
		{StateEnabled, ConfigModule, true},
		{StateEnabled, ConfigAbsent, false},
		{StateEnabled, ConfigPresent, true},
	}

	for _, tt := range tests {
		t.Run(tt.desired.String()+"/"+tt.observed.String(), func(t *testing.T) {
			if got := Matches(tt.desired, tt.observed); got != tt.want {
				t.Errorf("Matches(%v, %v) = %v, want %v", tt.desired, tt.observed, got, tt.want)
			}
		})
	}
}

func TestMatches_EnabledIsTheOnlyTwoTriStateMatch(t *testing.T) {
	// Enabled is the only desired state satisfied by two distinct
	// tri-state values (y and m).
	triStates := []ConfigValue{ConfigAbsent, ConfigModule, ConfigBuiltin}
	for _, desired := range []DesiredState{StateOn, StateOff, StateModule, StateEnabled} {
		count := 0
		for _, observed := range triStates {
			if Matches(desired, observed) {
				count++
			}
		}
		want := 1
		if desired == StateEnabled {
			want = 2
		}
		if count != want {
			t.Errorf("desired %v satisfied by %d tri-state values, want %d", desired, count, want)
		}
	}
}

func TestMatches_Total(t *testing.T) {
	// No combination panics, including out-of-range values.
	for d := DesiredState(-1); d < 10; d++ {
		for o := ConfigValue(-1); o < 10; o++ {
			_ = Matches(d, o)
		}
	}
}

func TestConfigValue_IsEnabled(t *testing.T) {
	tests := []struct {
		value ConfigValue
		want  bool
	}{
		{ConfigAbsent, false},
		{ConfigModule, true},
		{ConfigBuiltin, true},
		{ConfigPresent, true},
	}
	for _, tt := range tests {
		if got := tt.value.IsEnabled(); got != tt.want {
			t.Errorf("ConfigValue(%d).IsEnabled() = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestConfigValue_IsBuiltin(t *testing.T) {
	tests := []struct {
		value ConfigValue
		want  bool
	}{
		{ConfigAbsent, false},
		{ConfigModule, false},
		{ConfigBuiltin, true},
		{ConfigPresent, false},
	}
	for _, tt := range tests {
		if got := tt.value.IsBuiltin(); got != tt.want {
			t.Errorf("ConfigValue(%d).IsBuiltin() = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestConfigValue_String(t *testing.T) {
	tests := []struct {
		value ConfigValue
		want  string
	}{
		{ConfigAbsent, "not set"},
		{ConfigModule, "m"},
		{ConfigBuiltin, "y"},
		{ConfigPresent, "set"},
		{ConfigValue(99), "ConfigValue(99)"},
	}
	for _, tt := range tests {
		if got := tt.value.String(); got != tt.want {
			t.Errorf("ConfigValue(%d).String() = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestDesiredState_String(t *testing.T) {
	tests := []struct {
		state DesiredState
		want  string
	}{
		{StateOn, "On"},
		{StateOff, "Off"},
		{StateModule, "Module"},
		{StateEnabled, "Enabled"},
		{stateInvalid, "DesiredState(0)"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("DesiredState(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}

func TestDesiredState_UnmarshalText(t *testing.T) {
	tests := []struct {
		token string
		want  DesiredState
	}{
		{"On", StateOn},
		{"Off", StateOff},
		{"Module", StateModule},
		{"Enabled", StateEnabled},
	}
	for _, tt := range tests {
		var got DesiredState
		if err := got.UnmarshalText([]byte(tt.token)); err != nil {
			t.Errorf("UnmarshalText(%q) error = %v", tt.token, err)
			continue
		}
		if got != tt.want {
			t.Errorf("UnmarshalText(%q) = %v, want %v", tt.token, got, tt.want)
		}
	}
}

func TestDesiredState_UnmarshalText_Invalid(t *testing.T) {
	// Tokens are matched case-sensitively against the closed vocabulary.
	for _, token := range []string{"on", "OFF", "Maybe", "module", ""} {
		var s DesiredState
		err := s.UnmarshalText([]byte(token))
		if err == nil {
			t.Errorf("UnmarshalText(%q) expected error", token)
			continue
		}
		if !strings.Contains(err.Error(), "unknown kernel config state") {
			t.Errorf("UnmarshalText(%q) error = %q, missing context", token, err)
		}
	}
}

func TestDesiredState_MarshalText_RoundTrip(t *testing.T) {
	for _, state := range []DesiredState{StateOn, StateOff, StateModule, StateEnabled} {
		text, err := state.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v) error = %v", state, err)
		}
		var back DesiredState
		if err := back.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%q) error = %v", text, err)
		}
		if back != state {
			t.Errorf("round trip %v -> %q -> %v", state, text, back)
		}
	}
}

func TestDesiredState_MarshalText_Invalid(t *testing.T) {
	if _, err := stateInvalid.MarshalText(); err == nil {
		t.Error("MarshalText(stateInvalid) expected error")
	}
}
