package journal

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"text/template"
	"time"

	"github.com/shopspring/decimal"
)

var runOrgFuncs = template.FuncMap{
	"money": money,
	"pct":   pct,
	"rate":  f,
	"mul100": func(x float64) string {
		return decimal.NewFromFloat(x).Mul(decimal.NewFromInt(100)).StringFixed(2)
	},
	"orTime": func(t time.Time) time.Time {
		if t.IsZero() {
			return time.Now()
		}
		return t
	},
	"yesno": func(b bool) string {
		if b {
			return "yes"
		}
		return "no"
	},
}

var runOrg = template.Must(template.New("run").Funcs(runOrgFuncs).Parse(RunOrgTemplate))

// FormatRunOrg renders a run as an Org-mode block. Facts go in the
// PROPERTIES drawer so they stay searchable.
func FormatRunOrg(r RunRecord) (string, error) {
	var buf bytes.Buffer
	if err := runOrg.Execute(&buf, r); err != nil {
		return "", fmt.Errorf("render run %s: %w", r.RunID, err)
	}
	return buf.String(), nil
}

// FormatRunsOrg renders multiple runs separated by blank lines.
func FormatRunsOrg(runs []RunRecord) (string, error) {
	var b strings.Builder
	for i, r := range runs {
		if i > 0 {
			b.WriteString("\n")
		}
		s, err := FormatRunOrg(r)
		if err != nil {
			return "", err
		}
		b.WriteString(s)
	}
	return b.String(), nil
}

// WriteRunOrg writes the Org block of r to path.
func WriteRunOrg(path string, r RunRecord) error {
	s, err := FormatRunOrg(r)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(s), 0644)
}

const RunOrgTemplate = `* BACKTEST: {{if .Strategy}}{{.Strategy}}{{else}}(strategy?){{end}} {{.Pair}} {{.Periodicity}}
:PROPERTIES:
:RUN_ID:      {{.RunID}}
:STRATEGY:    {{.Strategy}}
:PAIR:        {{.Pair}}
:PERIODICITY: {{.Periodicity}}
:START_DATE:  {{.Start.Format "2006-01-02"}}
:END_DATE:    {{.End.Format "2006-01-02"}}
:SPOT:        {{rate .Spot}}
:FINAL_SPOT:  {{rate .FinalSpot}}
:CAPITAL:     {{money .Capital}}
:SEED:        {{.Seed}}
:OPTIMIZE:    {{yesno .OptimizePerPeriod}}
:PREMIUM:     {{yesno .IncludePremium}}
:CREATED:     [{{(orTime .Created).Format "2006-01-02 Mon 15:04"}}]
:END:

** Performance Summary
- Unhedged P/L:     *{{money .UnhedgedPnL}}*
- Hedged P/L:       *{{money .HedgedPnL}}*
- Total Return:     *{{pct .Metrics.TotalReturnPct}}%*
- Annualized:       *{{pct .Metrics.AnnualizedReturnPct}}%*
- Volatility:       *{{pct .Metrics.VolatilityPct}}%*
- Max Drawdown:     *{{pct .Metrics.MaxDrawdownPct}}%*

** Risk Metrics
| Metric        | Value |
|---------------+-------|
| Periods       | {{.Metrics.Periods}} |
| Sharpe        | {{pct .Metrics.Sharpe}} |
| Win Rate %    | {{mul100 .Metrics.WinRate}} |
| Profit Factor | {{if ne .Metrics.ProfitFactor 0.0}}{{pct .Metrics.ProfitFactor}}{{else}}(no losses){{end}} |
| VaR 95 %      | {{pct .Metrics.VaR95Pct}} |
| Calmar        | {{pct .Metrics.Calmar}} |

** Legs
#+begin_src json
{{printf "%s" .Legs}}
#+end_src
{{- if .LegErrors }}

** Skipped Legs
- {{.LegErrors}}
{{- end }}
{{- if .Notes }}

** Observations
{{- range .Notes }}
- {{.}}
{{- end }}
{{- end }}
`
