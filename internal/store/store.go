// Package store persists calculation history. The calculators never touch
// it; callers save inputs and outputs after computing.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"

	"github.com/incubazar/venture-calc/internal/model"
)

// ErrNotFound is returned when a calculation does not exist.
var ErrNotFound = eris.New("store: calculation not found")

// CalculationFilter specifies criteria for listing calculations.
type CalculationFilter struct {
	Kind   model.CalculationKind `json:"kind,omitempty"`
	Label  string                `json:"label,omitempty"`
	Limit  int                   `json:"limit,omitempty"`
	Offset int                   `json:"offset,omitempty"`
}

// DefaultListLimit caps ListCalculations when no limit is given.
const DefaultListLimit = 100

func (f CalculationFilter) limit() int {
	if f.Limit <= 0 {
		return DefaultListLimit
	}
	return f.Limit
}

// Store defines calculation history persistence.
type Store interface {
	// SaveCalculation inserts c, assigning ID and CreatedAt when unset.
	SaveCalculation(ctx context.Context, c *model.Calculation) error
	GetCalculation(ctx context.Context, id string) (*model.Calculation, error)
	// ListCalculations returns matches newest first.
	ListCalculations(ctx context.Context, filter CalculationFilter) ([]model.Calculation, error)
	DeleteCalculation(ctx context.Context, id string) error
	// ImportCalculations bulk-inserts previously exported records.
	ImportCalculations(ctx context.Context, calcs []model.Calculation) (int64, error)

	Migrate(ctx context.Context) error
	Close() error
}

func prepare(c *model.Calculation) error {
	if c == nil {
		return eris.New("store: nil calculation")
	}
	if c.Kind == "" {
		return eris.New("store: calculation kind is required")
	}
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	if len(c.Input) == 0 {
		c.Input = []byte("null")
	}
	if len(c.Output) == 0 {
		c.Output = []byte("null")
	}
	return nil
}
