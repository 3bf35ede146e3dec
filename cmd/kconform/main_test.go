package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/leodido/kconform"
)

func TestParseDocFormat(t *testing.T) {
	tests := []struct {
		input string
		want  docFormat
	}{
		{"auto", formatAuto},
		{"toml", formatTOML},
		{"json", formatJSON},
		{" TOML ", formatTOML},
		{"Json", formatJSON},
	}
	for _, tt := range tests {
		got, err := parseDocFormat(tt.input)
		if err != nil {
			t.Errorf("parseDocFormat(%q) error = %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseDocFormat(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParseDocFormat_Unknown(t *testing.T) {
	_, err := parseDocFormat("yaml")
	if err == nil {
		t.Fatal("parseDocFormat(yaml) expected error")
	}
	if !strings.Contains(err.Error(), "available: auto, toml, json") {
		t.Errorf("error %q missing available formats", err)
	}
}

func TestLoadDeclaredConfig_ForcedFormat(t *testing.T) {
	// With a forced format the file extension is irrelevant.
	path := filepath.Join(t.TempDir(), "fragments.txt")
	doc := `{"fragment": [{"name": "net", "kernel": [{"name": "CONFIG_NET", "state": "On"}]}]}`
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadDeclaredConfig([]string{path}, formatJSON)
	if err != nil {
		t.Fatalf("loadDeclaredConfig() error = %v", err)
	}
	if len(cfg.Fragment) != 1 || cfg.Fragment[0].Name != "net" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestRenderReport(t *testing.T) {
	report := kconform.Report{
		{
			Name:   "usb-serial",
			Reason: "Serial USB support",
			Options: []kconform.OptionResult{
				{Name: "CONFIG_USB_ACM", Desired: kconform.StateOn, Observed: kconform.ConfigModule, Result: kconform.Fail},
				{Name: "CONFIG_USB_SERIAL", Desired: kconform.StateModule, Observed: kconform.ConfigModule, Result: kconform.Pass},
			},
		},
	}

	out := renderReport(report)

	for _, want := range []string{
		"Config Option",
		"CONFIG_USB_ACM",
		"CONFIG_USB_SERIAL",
		"Fail",
		"Pass",
		"Serial USB support",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("renderReport() missing %q:\n%s", want, out)
		}
	}
}

func TestJSONReport(t *testing.T) {
	report := kconform.Report{
		{
			Name: "net",
			Options: []kconform.OptionResult{
				{Name: "CONFIG_NET", Desired: kconform.StateOn, Observed: kconform.ConfigBuiltin, Result: kconform.Pass},
			},
		},
	}

	data, err := json.Marshal(jsonReport(report))
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}

	out := string(data)
	for _, want := range []string{
		`"pass":true`,
		`"name":"net"`,
		`"result":"Pass"`,
		`"desired":"On"`,
		`"observed":"y"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("JSON %s missing %s", out, want)
		}
	}
}
