package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/leodido/kconform"
)

var (
	passStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	reasonStyle = lipgloss.NewStyle().Faint(true)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// renderReport draws the comparison report as a table, one row per option,
// followed by the reasons of failing fragments.
func renderReport(report kconform.Report) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			return cellStyle
		}).
		Headers("Fragment", "Config Option", "Desired State", "Kernel State", "Result")

	for _, fr := range report {
		for _, opt := range fr.Options {
			result := passStyle.Render(opt.Result.String())
			if opt.Result != kconform.Pass {
				result = failStyle.Render(opt.Result.String())
			}
			t.Row(fr.Name, opt.Name, opt.Desired.String(), opt.Observed.String(), result)
		}
	}

	var b strings.Builder
	b.WriteString(t.Render())

	for _, fr := range report {
		if fr.Result() != kconform.Pass && fr.Reason != "" {
			b.WriteString("\n")
			b.WriteString(reasonStyle.Render(fr.Name + ": " + fr.Reason))
		}
	}

	return b.String()
}

// jsonFragment is the JSON shape of one fragment's verdicts: the derived
// fragment result is materialized so consumers don't recompute it.
type jsonFragment struct {
	Name    string                  `json:"name"`
	Reason  string                  `json:"reason,omitempty"`
	Result  kconform.CheckResult    `json:"result"`
	Options []kconform.OptionResult `json:"options"`
}

type jsonVerdict struct {
	Pass      bool           `json:"pass"`
	Fragments []jsonFragment `json:"fragments"`
}

func jsonReport(report kconform.Report) jsonVerdict {
	fragments := make([]jsonFragment, 0, len(report))
	for _, fr := range report {
		fragments = append(fragments, jsonFragment{
			Name:    fr.Name,
			Reason:  fr.Reason,
			Result:  fr.Result(),
			Options: fr.Options,
		})
	}
	return jsonVerdict{Pass: report.Pass(), Fragments: fragments}
}
