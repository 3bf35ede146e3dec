package kconform

// CheckResult is the outcome of matching one option, fragment, or report.
type CheckResult int

const (
	// Fail is the zero value: an option is failing until proven otherwise.
	Fail CheckResult = iota
	// Pass means the observed value satisfies the desired state.
	Pass
)

func (r CheckResult) String() string {
	if r == Pass {
		return "Pass"
	}
	return "Fail"
}

// MarshalText implements [encoding.TextMarshaler].
func (r CheckResult) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// OptionResult records the verdict for a single declared option.
type OptionResult struct {
	Name     string       `json:"name"`
	Desired  DesiredState `json:"desired"`
	Observed ConfigValue  `json:"observed"`
	Result   CheckResult  `json:"result"`
}

// FragmentResult groups the verdicts of one fragment's options, in
// declaration order.
type FragmentResult struct {
	Name    string         `json:"name"`
	Reason  string         `json:"reason,omitempty"`
	Options []OptionResult `json:"options"`
}

// Result is Pass iff every option in the fragment passes.
// A fragment with no options trivially passes.
func (fr FragmentResult) Result() CheckResult {
	for _, opt := range fr.Options {
		if opt.Result != Pass {
			return Fail
		}
	}
	return Pass
}

// Report is the ordered sequence of fragment results for one comparison run.
type Report []FragmentResult

// Pass reports whether every fragment passed. Callers typically map this to
// the process exit status.
func (r Report) Pass() bool {
	for _, fr := range r {
		if fr.Result() != Pass {
			return false
		}
	}
	return true
}

// Compare reconciles a declared config against an observed kernel config.
//
// Top-level ungrouped options are reported first as a fragment carrying the
// config's global name, followed by each declared fragment in order. Every
// option is evaluated even after an earlier failure: the full report is the
// product, not the first mismatch. Output order mirrors input order exactly.
func Compare(cfg *Config, kernel *KernelConfig) Report {
	var report Report

	if len(cfg.Kernel) > 0 {
		report = append(report, compareFragment(Fragment{Name: cfg.Name, Kernel: cfg.Kernel}, kernel))
	}
	for _, frag := range cfg.Fragment {
		report = append(report, compareFragment(frag, kernel))
	}
	return report
}

func compareFragment(frag Fragment, kernel *KernelConfig) FragmentResult {
	fr := FragmentResult{
		Name:   frag.Name,
		Reason: frag.Reason,
	}
	if len(frag.Kernel) > 0 {
		fr.Options = make([]OptionResult, 0, len(frag.Kernel))
	}

	for _, opt := range frag.Kernel {
		observed := kernel.Get(opt.Name)
		result := Fail
		if Matches(opt.State, observed) {
			result = Pass
		}
		fr.Options = append(fr.Options, OptionResult{
			Name:     opt.Name,
			Desired:  opt.State,
			Observed: observed,
			Result:   result,
		})
	}
	return fr
}

// Checker ties a declared config to an observed kernel config.
type Checker struct {
	config *Config
	kernel *KernelConfig
}

// NewSystemChecker builds a Checker from declared config files and the
// running system's kernel config.
func NewSystemChecker(configs ...string) (*Checker, error) {
	cfg, err := GenerateConfig(configs...)
	if err != nil {
		return nil, err
	}
	kernel, err := SystemKernelConfig()
	if err != nil {
		return nil, err
	}
	return &Checker{config: cfg, kernel: kernel}, nil
}

// NewChecker builds a Checker from declared config files and an explicit
// kernel config path. Useful for checking kernels that are not running, not
// the default, or in non-standard locations.
func NewChecker(configs []string, kconfig string) (*Checker, error) {
	cfg, err := GenerateConfig(configs...)
	if err != nil {
		return nil, err
	}
	kernel, err := LoadKernelConfig(kconfig)
	if err != nil {
		return nil, err
	}
	return &Checker{config: cfg, kernel: kernel}, nil
}

// Run performs the comparison and returns the report.
func (c *Checker) Run() Report {
	return Compare(c.config, c.kernel)
}
