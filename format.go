package kconform

import (
	"fmt"
	"strings"
)

// String returns a human-readable summary of the report, grouped by
// fragment. Fragment reasons are shown only when the fragment fails.
func (r Report) String() string {
	var b strings.Builder

	for i, fr := range r {
		if i > 0 {
			b.WriteString("\n")
		}

		name := fr.Name
		if name == "" {
			name = "(unnamed)"
		}
		fmt.Fprintf(&b, "%s: %s\n", name, fr.Result())

		for _, opt := range fr.Options {
			fmt.Fprintf(&b, "  %s: desired %s, kernel %s: %s\n",
				opt.Name, opt.Desired, opt.Observed, opt.Result)
		}
		if fr.Result() == Fail && fr.Reason != "" {
			fmt.Fprintf(&b, "  reason: %s\n", fr.Reason)
		}
	}

	return b.String()
}

func (fr FragmentResult) String() string {
	return fmt.Sprintf("%s: %s", fr.Name, fr.Result())
}

func (or OptionResult) String() string {
	return fmt.Sprintf("%s: desired %s, kernel %s: %s", or.Name, or.Desired, or.Observed, or.Result)
}
