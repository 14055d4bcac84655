package site

import (
	"time"

	"github.com/shopspring/decimal"
)

// Site is a work location carrying a flat allowance added to each pay period
// of the employees assigned to it.
type Site struct {
	ID        string
	CompanyID string
	Name      string
	Allowance decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}
