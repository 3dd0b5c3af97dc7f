// Package workbook ties the individual calculators together: it holds the
// whole calculator state, runs every calculator whose inputs are present and
// summarizes the results as dashboard cards.
package workbook

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/incubazar/venture-calc/internal/equity"
	"github.com/incubazar/venture-calc/internal/model"
	"github.com/incubazar/venture-calc/internal/runway"
	"github.com/incubazar/venture-calc/internal/unitecon"
	"github.com/incubazar/venture-calc/internal/valuation"
)

// UnitEconomics groups the customer economics inputs.
type UnitEconomics struct {
	LTV       unitecon.LTVInputs        `json:"ltv" yaml:"ltv"`
	CAC       unitecon.CACInputs        `json:"cac" yaml:"cac"`
	Retention *unitecon.RetentionInputs `json:"retention,omitempty" yaml:"retention,omitempty"`
}

// Equity groups the co-founder split and dilution inputs.
type Equity struct {
	CoFounders []equity.CoFounder     `json:"co_founders,omitempty" yaml:"co_founders,omitempty"`
	Dilution   *equity.DilutionInputs `json:"dilution,omitempty" yaml:"dilution,omitempty"`
}

// State is the full set of calculator inputs. Nil sections are skipped.
type State struct {
	Company       model.CompanyBasics `json:"company" yaml:"company"`
	Runway        *runway.Inputs      `json:"runway,omitempty" yaml:"runway,omitempty"`
	UnitEconomics *UnitEconomics      `json:"unit_economics,omitempty" yaml:"unit_economics,omitempty"`
	Equity        Equity              `json:"equity" yaml:"equity"`
	Valuation     *valuation.Inputs   `json:"valuation,omitempty" yaml:"valuation,omitempty"`
}

// LoadState reads a state file. Files ending in .json are decoded as JSON and
// everything else as YAML.
func LoadState(path string) (State, error) {
	var s State
	data, err := os.ReadFile(path)
	if err != nil {
		return s, eris.Wrapf(err, "workbook: read state %s", path)
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, &s)
	} else {
		err = yaml.Unmarshal(data, &s)
	}
	if err != nil {
		return State{}, eris.Wrapf(err, "workbook: parse state %s", path)
	}
	return s, nil
}
