package valuation

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/yuin/goldmark"

	"github.com/incubazar/venture-calc/internal/format"
	"github.com/incubazar/venture-calc/internal/model"
)

// narrative builds the investor-facing summary as markdown.
func narrative(res Result) string {
	in := res.Inputs
	r := res.RecommendedRange
	b := res.BerkusMethod
	rev := res.RevenueMultiple

	var sb strings.Builder
	fmt.Fprintf(&sb, "For a %s %s company with %s in ARR growing %s year over year, ",
		in.FundingStage, in.Industry, format.Currency(in.ARR), format.Percentage(in.GrowthRate, 0))
	fmt.Fprintf(&sb, "the estimated valuation ranges from %s to %s, with a target valuation of %s.\n\n",
		format.Currency(r.Low), format.Currency(r.High), format.Currency(r.Mid))

	sb.WriteString("**Valuation Rationale:**\n\n")

	if res.Method == MethodBerkusOnly || in.FundingStage == model.StagePreSeed {
		focus := "team and idea validation"
		if b.Prototype >= b.FactorCap*0.8 {
			focus = "product development"
		}
		fmt.Fprintf(&sb, "**Berkus Method (%s):** As a %s company, the Berkus Method evaluates your qualitative factors. ",
			format.Currency(b.TotalValue), in.FundingStage)
		fmt.Fprintf(&sb, "Strong scores in %s support this valuation.", focus)
		if res.Method == MethodBerkusOnly {
			sb.WriteString(" Without recurring revenue a revenue multiple has nothing to anchor on, so the range is based on the Berkus Method alone.")
		}
		sb.WriteString("\n\n")
	}

	if in.ARR > 0 {
		fmt.Fprintf(&sb, "**Revenue Multiple (%s):** With %s in ARR and %s annual growth, the %sx multiple reflects ",
			format.Currency(rev.Valuation), format.Currency(in.ARR), format.Percentage(in.GrowthRate, 0), fixed(rev.Multiple, 1))
		switch {
		case rev.GrowthAdjustment > 1 && in.GrowthRate > 100:
			sb.WriteString("exceptional hyper-growth that justifies a premium valuation.")
		case rev.GrowthAdjustment > 1:
			sb.WriteString("strong growth that warrants an above-market multiple.")
		default:
			fmt.Fprintf(&sb, "growth consistent with %s industry standards.", in.Industry)
		}
		sb.WriteString("\n\n")
	}

	sb.WriteString("**Key Value Drivers:**\n\n")
	fmt.Fprintf(&sb, "- %s market positioning\n", in.Industry)
	if rev.GrowthAdjustment > 1 {
		fmt.Fprintf(&sb, "- High-growth trajectory (%s YoY)\n", format.Percentage(in.GrowthRate, 0))
	}
	if in.MRR > 0 {
		fmt.Fprintf(&sb, "- Recurring revenue model (%s ARR)\n", format.Currency(in.MRR*12))
	}
	fmt.Fprintf(&sb, "- %s stage with a clear path to the next milestone\n\n", in.FundingStage)

	fmt.Fprintf(&sb, "This valuation positions you competitively for fundraising conversations with investors in the %s sector.",
		in.Industry)
	return sb.String()
}

// RenderNarrativeHTML converts a markdown narrative to HTML.
func RenderNarrativeHTML(md string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return "", eris.Wrap(err, "valuation: render narrative")
	}
	return buf.String(), nil
}
