package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/darasa/core/watch"
)

type watchRepository struct {
	db *sqlx.DB
}

var _ watch.Repository = (*watchRepository)(nil) // interface compliance check

func NewWatchRepository(db *sql.DB) *watchRepository {
	return &watchRepository{db: sqlx.NewDb(db, "postgres")}
}

type watchRow struct {
	ID             string      `db:"id"`
	Email          string      `db:"email"`
	Query          string      `db:"query"`
	Category       null.String `db:"category"`
	CreatedAt      time.Time   `db:"created_at"`
	LastNotifiedAt null.Time   `db:"last_notified_at"`
}

func (repo watchRepository) unrow(row watchRow) watch.Watch {
	return watch.Watch{
		ID:             row.ID,
		Email:          row.Email,
		Query:          row.Query,
		Category:       row.Category,
		CreatedAt:      row.CreatedAt,
		LastNotifiedAt: row.LastNotifiedAt,
	}
}

// trapNoRowsErr maps psql "no rows" err to watch.ErrNotFound
func (repo watchRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return watch.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo watchRepository) CreateWatch(ctx context.Context, w watch.Watch) (watch.Watch, error) {
	w.ID = uuid.New().String()
	row := watchRow{
		ID:             w.ID,
		Email:          w.Email,
		Query:          w.Query,
		Category:       w.Category,
		CreatedAt:      w.CreatedAt.UTC(),
		LastNotifiedAt: w.LastNotifiedAt,
	}

	query := `
	INSERT INTO watch (id, email, query, category, created_at, last_notified_at)
	VALUES (:id, :email, :query, :category, :created_at, :last_notified_at)`
	if _, err := repo.db.NamedExecContext(ctx, query, row); err != nil {
		return watch.Watch{}, errors.Wrap(err, "inserting watch")
	}
	return repo.unrow(row), nil
}

func (repo watchRepository) GetWatch(ctx context.Context, id string) (watch.Watch, error) {
	var row watchRow
	if err := repo.db.GetContext(ctx, &row, "SELECT * FROM watch WHERE id = $1", id); err != nil {
		return watch.Watch{}, repo.trapNoRowsErr(err, "getting watch")
	}
	return repo.unrow(row), nil
}

func (repo watchRepository) QueryAllWatches(ctx context.Context) ([]watch.Watch, error) {
	var rows []watchRow
	if err := repo.db.SelectContext(ctx, &rows, "SELECT * FROM watch ORDER BY created_at"); err != nil {
		return nil, errors.Wrap(err, "querying watches")
	}

	watches := make([]watch.Watch, 0, len(rows))
	for _, row := range rows {
		watches = append(watches, repo.unrow(row))
	}
	return watches, nil
}

func (repo watchRepository) DeleteWatchesByID(ctx context.Context, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	query, args, err := sqlx.In("DELETE FROM watch WHERE id IN (?)", ids)
	if err != nil {
		return 0, errors.Wrap(err, "binding watch deletion")
	}
	query = repo.db.Rebind(query)

	res, err := repo.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, errors.Wrap(err, "deleting watches")
	}
	n, err := res.RowsAffected()
	return int(n), errors.Wrap(err, "counting deleted watches")
}

func (repo watchRepository) TouchWatchNotified(ctx context.Context, id string, at time.Time) error {
	res, err := repo.db.ExecContext(ctx, "UPDATE watch SET last_notified_at = $1 WHERE id = $2", at.UTC(), id)
	if err != nil {
		return errors.Wrap(err, "touching watch")
	}
	if n, err := res.RowsAffected(); err != nil {
		return errors.Wrap(err, "checking touched watch")
	} else if n == 0 {
		return watch.ErrNotFound
	}
	return nil
}
