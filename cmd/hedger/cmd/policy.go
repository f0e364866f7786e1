package cmd

import (
	"fmt"
	"io"

	"github.com/rustyeddy/hedger/risk"
)

// printPolicy reports a policy decision and logs each violation.
func printPolicy(w io.Writer, d risk.Decision) {
	fmt.Fprintln(w)
	if d.Allowed {
		fmt.Fprintln(w, "Policy:        ok")
		return
	}
	fmt.Fprintln(w, "Policy:        violated")
	for _, v := range d.Violations {
		fmt.Fprintf(w, "  - [%s] %s\n", v.Code, v.Msg)
		log.Warn().Str("code", v.Code).Msg(v.Msg)
	}
}
