// Package kconform verifies that a kernel's build-time configuration
// matches a developer-declared set of required settings.
//
// It answers the "works on one kernel, not another" class of failures:
// software that depends on specific kernel features can declare them once
// and check any kernel — the running one or an on-disk candidate — getting
// a per-option pass/fail report with reasons.
//
// # Model
//
// Declared documents (TOML or JSON) group options into fragments, each with
// a name, an optional reason, and a list of CONFIG_* options with a desired
// state. The desired-state vocabulary is richer than the kernel's tri-state
// so intent can be expressed without caring about mechanism:
//
//   - On: must be built-in (=y)
//   - Module: must be a loadable module (=m)
//   - Off: must be absent
//   - Enabled: =y or =m, don't care which
//
// The observed side is a flat snapshot of CONFIG_* identifiers to
// [ConfigValue]. Kconfig has no explicit "no": an option that is missing
// and one recorded as "# CONFIG_X is not set" both observe as
// [ConfigAbsent].
//
// # Quick Check
//
// Check the running kernel against declared fragments:
//
//	checker, err := kconform.NewSystemChecker("fragments/usb-serial.toml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	report := checker.Run()
//	fmt.Print(report)
//	if !report.Pass() {
//	    os.Exit(1)
//	}
//
// # Pieces
//
// The layers compose for callers that need finer control:
//
//	cfg, err := kconform.LoadConfig("requirements.toml")
//	kernel, err := kconform.LoadKernelConfig("/boot/config-6.12.0")
//	report := kconform.Compare(cfg, kernel)
//
// [Compare] is pure and order-preserving: result order mirrors the declared
// order, every option is evaluated, and a missing option is a recorded
// failure, never an error.
//
// # Errors
//
// Three terminal error kinds cover the boundaries: *[DocumentError] for
// malformed or invalid declared documents, *[SourceError] for kernel config
// sources that were resolved but unreadable, and [ErrKernelConfigNotFound]
// when no source could be located at all.
package kconform
