package watch

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/darasa/core"
)

// Watch is a saved catalog search: whenever a catalog refresh brings in new
// courses matching the query (and optional category), the owner is emailed a
// digest.
type Watch struct {
	ID             string      `json:"id"`
	Email          string      `json:"email"`
	Query          string      `json:"query"`
	Category       null.String `json:"category"`
	CreatedAt      time.Time   `json:"created_at"` // UTC
	LastNotifiedAt null.Time   `json:"last_notified_at"`
}

// NewWatch contains information needed to create a new Watch.
type NewWatch struct {
	Email    string      `json:"email" validate:"required,email"`
	Query    string      `json:"query" validate:"required,notblank,max=200"`
	Category null.String `json:"category"`
}

func (nw *NewWatch) Validate(validate *validator.Validate) error {
	// validate first so whitespace-only values hit "notblank", not "required"
	if err := validate.Struct(nw); err != nil {
		return err
	}
	nw.Email = core.CleanString(nw.Email, true /* lower */)
	nw.Query = core.CleanString(nw.Query)
	if nw.Category.Valid {
		nw.Category.String = core.CleanString(nw.Category.String)
		if nw.Category.String == "" {
			nw.Category.Valid = false
		}
	}
	return nil
}

type Repository interface {
	CreateWatch(ctx context.Context, w Watch) (Watch, error)
	GetWatch(ctx context.Context, id string) (Watch, error)
	QueryAllWatches(ctx context.Context) ([]Watch, error)
	DeleteWatchesByID(ctx context.Context, ids []string) (int, error)
	// TouchWatchNotified records the time the watch last produced a digest.
	TouchWatchNotified(ctx context.Context, id string, at time.Time) error
}
