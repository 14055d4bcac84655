package holiday

import (
	"context"
	"time"
)

type HolidayRepository interface {
	Create(ctx context.Context, h Holiday) (Holiday, error)
	GetRange(ctx context.Context, from, to time.Time, companyID string) ([]Holiday, error)
	Delete(ctx context.Context, id string, companyID string) error
}
