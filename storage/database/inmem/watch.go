package inmemdb

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/darasa/core/watch"
)

type watchRepository struct {
	db *watchTable
}

var _ watch.Repository = (*watchRepository)(nil)

func NewWatchRepository(db *DB) *watchRepository {
	return &watchRepository{db: db.watch}
}

func (repo *watchRepository) CreateWatch(_ context.Context, w watch.Watch) (watch.Watch, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	w.ID = uuid.New().String()
	repo.db.seq++
	repo.db.table[w.ID] = &watchRow{w: w, seq: repo.db.seq}
	return w, nil
}

func (repo *watchRepository) GetWatch(_ context.Context, id string) (watch.Watch, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if row, ok := repo.db.table[id]; ok {
		return row.w, nil
	}
	return watch.Watch{}, watch.ErrNotFound
}

func (repo *watchRepository) QueryAllWatches(_ context.Context) ([]watch.Watch, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	rows := make([]*watchRow, 0, len(repo.db.table))
	for _, row := range repo.db.table {
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq < rows[j].seq })

	watches := make([]watch.Watch, 0, len(rows))
	for _, row := range rows {
		watches = append(watches, row.w)
	}
	return watches, nil
}

func (repo *watchRepository) DeleteWatchesByID(_ context.Context, ids []string) (int, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	var cnt int
	for _, id := range ids {
		if _, ok := repo.db.table[id]; ok {
			delete(repo.db.table, id)
			cnt++
		}
	}
	return cnt, nil
}

func (repo *watchRepository) TouchWatchNotified(_ context.Context, id string, at time.Time) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	row, ok := repo.db.table[id]
	if !ok {
		return watch.ErrNotFound
	}
	row.w.LastNotifiedAt = null.TimeFrom(at.UTC())
	return nil
}
