package model

import (
	"encoding/json"
	"time"
)

// CalculationKind names the calculator that produced a stored result.
type CalculationKind string

const (
	KindRunway        CalculationKind = "runway"
	KindWhatIf        CalculationKind = "whatif"
	KindEquitySplit   CalculationKind = "equity_split"
	KindDilution      CalculationKind = "dilution"
	KindValuation     CalculationKind = "valuation"
	KindUnitEconomics CalculationKind = "unit_economics"
	KindSensitivity   CalculationKind = "sensitivity"
	KindRetention     CalculationKind = "retention"
	KindWorkbook      CalculationKind = "workbook"
)

// Calculation is a saved calculator invocation: the inputs as submitted and
// the outputs as computed, both kept as raw JSON.
type Calculation struct {
	ID        string          `json:"id"`
	Kind      CalculationKind `json:"kind"`
	Label     string          `json:"label,omitempty"`
	Input     json.RawMessage `json:"input"`
	Output    json.RawMessage `json:"output"`
	CreatedAt time.Time       `json:"created_at"`
}
