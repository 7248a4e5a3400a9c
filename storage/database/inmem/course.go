package inmemdb

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/course"
)

type courseRepository struct {
	db *courseTable
}

var _ course.Repository = (*courseRepository)(nil)

func NewCourseRepository(db *DB) *courseRepository {
	return &courseRepository{db: db.course}
}

// query returns all courses in insertion order. Callers hold the lock.
func (repo *courseRepository) query() []course.Course {
	rows := make([]*courseRow, 0, len(repo.db.table))
	for _, row := range repo.db.table {
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq < rows[j].seq })

	courses := make([]course.Course, 0, len(rows))
	for _, row := range rows {
		courses = append(courses, row.crs)
	}
	return courses
}

func (repo *courseRepository) CreateCourse(_ context.Context, crs course.Course) (course.Course, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	crs.ID = uuid.New().String()
	repo.db.seq++
	repo.db.table[crs.ID] = &courseRow{crs: crs, seq: repo.db.seq}
	return crs, nil
}

func (repo *courseRepository) GetCourse(_ context.Context, filter course.GetFilter) (course.Course, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if filter.ID != "" {
		if row, ok := repo.db.table[filter.ID]; ok {
			return row.crs, nil
		}
		return course.Course{}, course.ErrNotFound
	}
	if filter.UpstreamID != "" {
		for _, row := range repo.db.table {
			if row.crs.UpstreamID.Valid && row.crs.UpstreamID.String == filter.UpstreamID {
				return row.crs, nil
			}
		}
	}
	return course.Course{}, course.ErrNotFound
}

func (repo *courseRepository) QueryCourses(_ context.Context, filter *course.QueryFilter, ordering []core.DBOrdering) ([]course.Course, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	courses := repo.query()
	if filter != nil && !filter.IsEmpty() {
		matches := make([]course.Course, 0, len(courses))
		for _, crs := range courses {
			if filter.Category != "" && !strings.EqualFold(crs.Category.String, filter.Category) {
				continue
			}
			if !filter.CreatedFrom.IsZero() && crs.CreatedAt.Before(filter.CreatedFrom.UTC()) {
				continue
			}
			if !filter.CreatedTo.IsZero() && crs.CreatedAt.After(filter.CreatedTo.UTC()) {
				continue
			}
			matches = append(matches, crs)
		}
		courses = matches
	}

	applyOrdering(courses, ordering)
	return courses, nil
}

func (repo *courseRepository) QueryCategories(_ context.Context) ([]string, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	seen := make(map[string]bool)
	categories := make([]string, 0)
	for _, row := range repo.db.table {
		if cat := row.crs.Category; cat.Valid && !seen[cat.String] {
			seen[cat.String] = true
			categories = append(categories, cat.String)
		}
	}
	sort.Strings(categories)
	return categories, nil
}

func (repo *courseRepository) UpdateCourse(_ context.Context, crs course.Course) (course.Course, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	row, ok := repo.db.table[crs.ID]
	if !ok {
		return course.Course{}, course.ErrNotFound
	}
	crs.CreatedAt = row.crs.CreatedAt
	if !crs.UpstreamID.Valid {
		crs.UpstreamID = row.crs.UpstreamID
	}
	row.crs = crs
	return crs, nil
}

func (repo *courseRepository) UpdateOrCreateCourse(ctx context.Context, crs course.Course) (course.Course, bool, error) {
	if crs.UpstreamID.Valid {
		if existing, err := repo.GetCourse(ctx, course.GetFilter{UpstreamID: crs.UpstreamID.String}); err == nil {
			crs.ID = existing.ID
			updated, err := repo.UpdateCourse(ctx, crs)
			return updated, false, err
		}
	}
	created, err := repo.CreateCourse(ctx, crs)
	return created, true, err
}

func (repo *courseRepository) DeleteCoursesByID(_ context.Context, ids []string) (int, error) {
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

func applyOrdering(courses []course.Course, ordering []core.DBOrdering) {
	// only the fields the API exposes for ordering
	for i := len(ordering) - 1; i >= 0; i-- {
		ord := ordering[i]
		less := func(a, b course.Course) bool {
			switch ord.Field {
			case "title":
				return a.Title < b.Title
			case "created_at":
				return a.CreatedAt.Before(b.CreatedAt)
			}
			return false
		}
		sort.SliceStable(courses, func(a, b int) bool {
			if ord.Ascending {
				return less(courses[a], courses[b])
			}
			return less(courses[b], courses[a])
		})
	}
}
