package course

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/darasa/core"
)

type stubRepo struct {
	courses []Course
}

var _ Repository = (*stubRepo)(nil)

func (r *stubRepo) CreateCourse(_ context.Context, crs Course) (Course, error) {
	crs.ID = fmt.Sprintf("stub-%d", len(r.courses)+1)
	r.courses = append(r.courses, crs)
	return crs, nil
}

func (r *stubRepo) GetCourse(_ context.Context, filter GetFilter) (Course, error) {
	for _, c := range r.courses {
		if c.ID == filter.ID || (filter.UpstreamID != "" && c.UpstreamID.String == filter.UpstreamID) {
			return c, nil
		}
	}
	return Course{}, ErrNotFound
}

func (r *stubRepo) QueryCourses(_ context.Context, filter *QueryFilter, _ []core.DBOrdering) ([]Course, error) {
	if filter == nil || filter.Category == "" {
		return r.courses, nil
	}
	var out []Course
	for _, c := range r.courses {
		if c.Category.String == filter.Category {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *stubRepo) QueryCategories(_ context.Context) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, c := range r.courses {
		if c.Category.Valid && !seen[c.Category.String] {
			seen[c.Category.String] = true
			out = append(out, c.Category.String)
		}
	}
	return out, nil
}

func (r *stubRepo) UpdateCourse(_ context.Context, crs Course) (Course, error) {
	for i, c := range r.courses {
		if c.ID == crs.ID {
			crs.CreatedAt = c.CreatedAt
			r.courses[i] = crs
			return crs, nil
		}
	}
	return Course{}, ErrNotFound
}

func (r *stubRepo) UpdateOrCreateCourse(ctx context.Context, crs Course) (Course, bool, error) {
	if crs.UpstreamID.Valid {
		if existing, err := r.GetCourse(ctx, GetFilter{UpstreamID: crs.UpstreamID.String}); err == nil {
			crs.ID = existing.ID
			updated, err := r.UpdateCourse(ctx, crs)
			return updated, false, err
		}
	}
	created, err := r.CreateCourse(ctx, crs)
	return created, true, err
}

func (r *stubRepo) DeleteCoursesByID(_ context.Context, ids []string) (int, error) {
	var cnt int
	kept := r.courses[:0]
	for _, c := range r.courses {
		var del bool
		for _, id := range ids {
			if c.ID == id {
				del = true
				break
			}
		}
		if del {
			cnt++
		} else {
			kept = append(kept, c)
		}
	}
	r.courses = kept
	return cnt, nil
}

type stubCatalog struct {
	listing []Course
	err     error
}

func (c stubCatalog) ListCourses(context.Context) ([]Course, error) { return c.listing, c.err }

func TestService_Query_searchAfterCategoryFilter(t *testing.T) {
	repo := &stubRepo{courses: []Course{
		crs("Intro to Python", "", "Data Science"),
		crs("Python for the Web", "Django and Flask", "Web"),
		crs("Web Basics", "Learn JavaScript and HTML", "Web"),
	}}
	svc := NewService(nil, repo, stubCatalog{})
	ctx := context.Background()

	// category narrows the list before the matcher runs
	got, err := svc.Query(ctx, &QueryFilter{Search: "python", Category: "Web"}, nil)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Python for the Web", got[0].Title)

	// no search term: browse-all within the category
	got, err = svc.Query(ctx, &QueryFilter{Category: "Web"}, nil)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestService_Refresh(t *testing.T) {
	existing := crs("Intro to Python", "", "Data Science")
	existing.ID = "stub"
	existing.UpstreamID = null.StringFrom("42")
	repo := &stubRepo{courses: []Course{existing}}

	update := crs("Intro to Python v2", "", "Data Science")
	update.UpstreamID = null.StringFrom("42")
	fresh := crs("Go Basics", "", "Programming")
	fresh.UpstreamID = null.StringFrom("43")

	svc := NewService(nil, repo, stubCatalog{listing: []Course{update, fresh}})

	summary, err := svc.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Total)
	assert.Equal(t, 1, summary.Created)
	assert.Equal(t, 1, summary.Updated)
	require.Len(t, summary.New, 1)
	assert.Equal(t, "Go Basics", summary.New[0].Title)

	// the existing course was updated in place
	got, err := svc.Get(context.Background(), "stub")
	require.NoError(t, err)
	assert.Equal(t, "Intro to Python v2", got.Title)
}
