package export

import (
	"strconv"

	"github.com/tealeg/xlsx/v2"

	"github.com/incubazar/venture-calc/internal/workbook"
)

func writeSummary(sheet *xlsx.Sheet, res workbook.Results) {
	addRow(sheet, text("Company"), text(res.Company.CompanyName))
	addRow(sheet, text("Industry"), text(string(res.Company.Industry)))
	addRow(sheet)
	header(sheet, "Metric", "Value", "Detail", "Status")
	for _, c := range res.Dashboard.Cards {
		addRow(sheet, text(c.Title), text(c.Value), text(c.Detail), text(c.Status))
	}
}

func writeRunway(sheet *xlsx.Sheet, res workbook.Results) {
	r := res.Runway
	addRow(sheet, text("Total monthly expenses"), money(r.TotalMonthlyExpenses))
	addRow(sheet, text("Net burn rate"), money(r.NetBurnRate))
	if r.Unbounded {
		addRow(sheet, text("Runway (months)"), text("unbounded"))
	} else {
		addRow(sheet, text("Runway (months)"), number(r.RunwayMonths, "0.0"))
	}
	addRow(sheet, text("Status"), text(string(r.RunwayStatus)))
	addRow(sheet)
	header(sheet, "Month", "Cash", "Revenue", "Expenses", "Net Burn")
	for _, p := range r.ProjectionData {
		addRow(sheet,
			number(float64(p.Month), "0"),
			money(p.Cash),
			money(p.Revenue),
			money(p.Expenses),
			money(p.NetBurn),
		)
	}
}

func writeUnitEconomics(sheet *xlsx.Sheet, res workbook.Results) {
	if lc := res.LTVCAC; lc != nil {
		addRow(sheet, text("LTV"), money(lc.LTV))
		addRow(sheet, text("CAC"), money(lc.CAC))
		addRow(sheet, text("LTV:CAC"), number(lc.Ratio, ratioFormat))
		addRow(sheet, text("Rating"), text(string(lc.Rating)))
		addRow(sheet, text("Recommendation"), text(lc.Recommendation))
		if b := res.LTVCACBench; b != nil {
			addRow(sheet, text("Benchmark"), text(b.Verdict))
		}
	}
	if rr := res.Retention; rr != nil {
		addRow(sheet, text("Net revenue retention (%)"), pct(rr.NRR))
		addRow(sheet, text("Retention status"), text(string(rr.Status)))
		if b := res.RetentionBench; b != nil {
			addRow(sheet, text("Retention benchmark"), text(b.Verdict))
		}
	}
	if sm := res.Sensitivity; sm != nil {
		addRow(sheet)
		names := []string{"Churn \\ CAC"}
		for _, c := range sm.CACChanges {
			names = append(names, signed(c)+"%")
		}
		header(sheet, names...)
		for i, row := range sm.Results {
			values := []cellValue{text(signed(sm.ChurnChanges[i]) + "%")}
			for _, cell := range row {
				values = append(values, number(cell.Ratio, ratioFormat))
			}
			addRow(sheet, values...)
		}
	}
}

func writeEquity(sheet *xlsx.Sheet, res workbook.Results) {
	sr := res.EquitySplit
	header(sheet, "Founder", "Equity (%)", "Capital", "Time", "Role", "IP")
	for _, f := range sr.Founders {
		b := f.Breakdown
		addRow(sheet, text(f.Name), pct(f.EquityPercentage),
			pct(b.CapitalScore), pct(b.TimeScore), pct(b.RoleScore), pct(b.IPScore))
	}
	addRow(sheet)
	addRow(sheet, text("Recommendation"), text(sr.Recommendation))
	addRow(sheet, text("Rationale"), text(sr.Rationale))
}

func writeDilution(sheet *xlsx.Sheet, res workbook.Results) {
	d := res.Dilution
	addRow(sheet, text("Post-money valuation"), money(d.PostMoneyValuation))
	addRow(sheet, text("Investor ownership (%)"), pct(d.InvestorOwnership))
	addRow(sheet, text("Option pool (%)"), pct(d.OptionPoolImpact))
	addRow(sheet, text("New ownership (%)"), pct(d.NewOwnership))
	addRow(sheet, text("Dilution (%)"), pct(d.DilutionPercentage))
	addRow(sheet)
	header(sheet, "Holder", "Ownership (%)")
	addRow(sheet, text("Founder"), pct(d.CapTable.Founder))
	addRow(sheet, text("Other holders"), pct(d.CapTable.OtherHolders))
	addRow(sheet, text("Investor"), pct(d.CapTable.Investor))
	addRow(sheet, text("Option pool"), pct(d.CapTable.OptionPool))
	if len(d.FutureRounds) == 0 {
		return
	}
	addRow(sheet)
	header(sheet, "Round", "Raise", "Pre-money", "Round dilution (%)", "Ownership (%)", "Cumulative dilution (%)")
	for _, r := range d.FutureRounds {
		addRow(sheet, text(r.Round), money(r.AssumedRaise), money(r.AssumedValuation),
			pct(r.RoundDilution), pct(r.ProjectedOwnership), pct(r.CumulativeDilution))
	}
}

func writeValuation(sheet *xlsx.Sheet, res workbook.Results) {
	v := res.Valuation
	in := v.Inputs
	addRow(sheet, text("Industry"), text(string(in.Industry)))
	addRow(sheet, text("Stage"), text(string(in.FundingStage)))
	addRow(sheet, text("ARR"), money(in.ARR))
	addRow(sheet, text("Growth (%)"), pct(in.GrowthRate))
	addRow(sheet, text("Method"), text(string(v.Method)))
	addRow(sheet)
	header(sheet, "Range", "Value")
	addRow(sheet, text("Low"), money(v.RecommendedRange.Low))
	addRow(sheet, text("Mid"), money(v.RecommendedRange.Mid))
	addRow(sheet, text("High"), money(v.RecommendedRange.High))
	addRow(sheet)
	b := v.BerkusMethod
	header(sheet, "Berkus factor", "Value")
	addRow(sheet, text("Sound idea"), money(b.SoundIdea))
	addRow(sheet, text("Prototype"), money(b.Prototype))
	addRow(sheet, text("Quality team"), money(b.QualityTeam))
	addRow(sheet, text("Strategic relationships"), money(b.StrategicRelationships))
	addRow(sheet, text("Product rollout"), money(b.ProductRollout))
	addRow(sheet, text("Total"), money(b.TotalValue))
	addRow(sheet)
	rm := v.RevenueMultiple
	addRow(sheet, text("Revenue multiple"), number(rm.Multiple, ratioFormat))
	addRow(sheet, text("Revenue valuation"), money(rm.Valuation))
	addRow(sheet, text("Rationale"), text(rm.MultipleRationale))
}

func signed(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if v > 0 {
		return "+" + s
	}
	return s
}
