package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/leodido/kconform"
	"github.com/leodido/structcli"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/thediveo/enumflag/v2"
)

// Build metadata injected via ldflags (see .goreleaser.yaml).
// When built without ldflags (e.g., plain `go build`), these remain
// at their zero values and the version command omits them gracefully.
var (
	version = ""
	commit  = ""
	date    = ""
)

func main() {
	root := &cobra.Command{
		Use:   "kconform",
		Short: "Kernel config conformance checking",
		Long: `kconform verifies a kernel's build-time configuration against declared requirements.

It parses TOML or JSON fragments describing desired CONFIG_* states, reads the
kernel config of the running system or an explicit file, and reports each option
as Pass or Fail. Use it to diagnose missing kernel features, gate CI/CD images,
or validate embedded kernels before deployment.`,
		SilenceUsage: true,
	}

	root.AddCommand(checkCmd())
	root.AddCommand(showCmd())
	root.AddCommand(versionCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// docFormat selects the declared-document format on the command line.
type docFormat enumflag.Flag

const (
	formatAuto docFormat = iota
	formatTOML
	formatJSON
)

var docFormatIDs = map[docFormat][]string{
	formatAuto: {"auto"},
	formatTOML: {"toml"},
	formatJSON: {"json"},
}

func parseDocFormat(input string) (docFormat, error) {
	var format docFormat
	enumValue := enumflag.New(&format, "format", docFormatIDs, enumflag.EnumCaseInsensitive)
	if err := enumValue.Set(strings.TrimSpace(input)); err != nil {
		return formatAuto, fmt.Errorf("unknown document format: %q (available: auto, toml, json)", input)
	}
	return format, nil
}

// CheckOptions defines flags for the check subcommand.
type CheckOptions struct {
	Configs []string  `flag:"config" flagshort:"c" flagdescr:"Declared config files or fragments (TOML or JSON)" flagrequired:"true"`
	Kconfig string    `flag:"kconfig" flagshort:"k" flagdescr:"Kernel config file (default: discover the running kernel's)"`
	Format  docFormat `flag:"format" flagshort:"f" flagdescr:"Force the document format: auto, toml, json" flagcustom:"true"`
	JSON    bool      `flag:"json" flagshort:"j" flagdescr:"Output in JSON format"`
}

func (o *CheckOptions) Attach(c *cobra.Command) error {
	return structcli.Define(c, o)
}

func (o *CheckOptions) DefineFormat(name, short, descr string, structField reflect.StructField, fieldValue reflect.Value) (pflag.Value, string) {
	fieldPtr := fieldValue.Addr().Interface().(*docFormat)
	*fieldPtr = formatAuto
	return enumflag.New(fieldPtr, "format", docFormatIDs, enumflag.EnumCaseInsensitive), descr
}

func (o *CheckOptions) DecodeFormat(input any) (any, error) {
	s, ok := input.(string)
	if !ok {
		return input, nil
	}

	return parseDocFormat(s)
}

func checkCmd() *cobra.Command {
	opts := &CheckOptions{}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check declared kernel config requirements",
		Long: `Check that the kernel config satisfies all declared fragments.
Exits with code 0 if every option passes, 1 on any failure.`,
		PreRunE: func(c *cobra.Command, args []string) error {
			return structcli.Unmarshal(c, opts)
		},
		RunE: func(c *cobra.Command, args []string) error {
			if len(opts.Configs) == 0 {
				return fmt.Errorf("no config files specified")
			}

			cfg, err := loadDeclaredConfig(opts.Configs, opts.Format)
			if err != nil {
				return err
			}

			kernel, err := loadKernel(opts.Kconfig)
			if err != nil {
				return err
			}

			report := kconform.Compare(cfg, kernel)

			if opts.JSON {
				if err := printJSON(jsonReport(report)); err != nil {
					return err
				}
			} else {
				fmt.Println(renderReport(report))
			}

			if !report.Pass() {
				os.Exit(1)
			}
			return nil
		},
	}

	if err := opts.Attach(cmd); err != nil {
		panic(err)
	}
	return cmd
}

// ShowOptions defines flags for the show subcommand.
type ShowOptions struct {
	Kconfig string `flag:"kconfig" flagshort:"k" flagdescr:"Kernel config file (default: discover the running kernel's)"`
	JSON    bool   `flag:"json" flagshort:"j" flagdescr:"Output in JSON format"`
}

func (o *ShowOptions) Attach(c *cobra.Command) error {
	return structcli.Define(c, o)
}

func showCmd() *cobra.Command {
	opts := &ShowOptions{}

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Display the parsed kernel configuration",
		PreRunE: func(c *cobra.Command, args []string) error {
			return structcli.Unmarshal(c, opts)
		},
		RunE: func(c *cobra.Command, args []string) error {
			kernel, err := loadKernel(opts.Kconfig)
			if err != nil {
				return err
			}

			if opts.JSON {
				entries := make(map[string]string, kernel.Len())
				for _, name := range kernel.Names() {
					entries[name] = kernel.Get(name).String()
				}
				return printJSON(entries)
			}

			for _, name := range kernel.Names() {
				fmt.Printf("%s: %s\n", name, kernel.Get(name))
			}
			return nil
		},
	}

	if err := opts.Attach(cmd); err != nil {
		panic(err)
	}
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the tool version",
		RunE: func(c *cobra.Command, args []string) error {
			if version != "" {
				fmt.Printf("kconform %s", version)
				if commit != "" {
					fmt.Printf(" (%s)", commit)
				}
				if date != "" {
					fmt.Printf(" built %s", date)
				}
				fmt.Println()
			} else {
				fmt.Println("kconform (dev)")
			}
			return nil
		},
	}
}

// loadDeclaredConfig merges the given declared config files. With format
// auto the file extension decides; a forced format overrides it.
func loadDeclaredConfig(paths []string, format docFormat) (*kconform.Config, error) {
	if format == formatAuto {
		return kconform.GenerateConfig(paths...)
	}

	libFormat := kconform.FormatTOML
	if format == formatJSON {
		libFormat = kconform.FormatJSON
	}

	var combined *kconform.Config
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		cfg, err := kconform.ParseConfig(data, libFormat)
		if err != nil {
			return nil, err
		}
		if combined == nil {
			combined = cfg
		} else {
			combined.Append(cfg)
		}
	}

	if combined == nil {
		return nil, kconform.ErrNoConfig
	}
	return combined, nil
}

// loadKernel reads the kernel config from an explicit path, or discovers
// the running kernel's when none is given.
func loadKernel(path string) (*kconform.KernelConfig, error) {
	if path != "" {
		return kconform.LoadKernelConfig(path)
	}

	kernel, err := kconform.SystemKernelConfig()
	if err != nil {
		if errors.Is(err, kconform.ErrKernelConfigNotFound) {
			return nil, fmt.Errorf("%w (pass --kconfig to check a specific file)", err)
		}
		return nil, err
	}
	return kernel, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
