package course

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
)

var (
	// errors
	ErrNotFound = errors.New("course not found")
)

type (
	// Catalog lists the courses available on the external LMS API.
	Catalog interface {
		ListCourses(ctx context.Context) ([]Course, error)
	}

	// RefreshSummary reports the outcome of a catalog refresh.
	RefreshSummary struct {
		Total   int      `json:"total"`
		Created int      `json:"created"`
		Updated int      `json:"updated"`
		New     []Course `json:"new,omitempty"`
	}

	Service interface {
		Query(ctx context.Context, filter *QueryFilter, ordering []core.DBOrdering) ([]Course, error)
		Get(ctx context.Context, id string) (Course, error)
		Create(ctx context.Context, nc NewCourse) (Course, error)
		Update(ctx context.Context, id string, uc UpdateCourse) (Course, error)
		Delete(ctx context.Context, ids ...string) error
		Categories(ctx context.Context) ([]string, error)
		Refresh(ctx context.Context) (RefreshSummary, error)
	}

	service struct {
		db      core.DB
		repo    Repository
		catalog Catalog
		matcher Matcher
	}
)

var _ Service = (*service)(nil)

func NewService(db core.DB, repo Repository, catalog Catalog) Service {
	return &service{
		db:      db,
		repo:    repo,
		catalog: catalog,
		matcher: NewMatcher(),
	}
}

// Query fetches courses matching the filter, ranked by search relevance when a
// search term is present. Category and date bounds are applied by the
// repository; the relevance matcher then scores and filters the fetched list
// (category filtering happens upstream of the matcher).
func (svc *service) Query(ctx context.Context, filter *QueryFilter, ordering []core.DBOrdering) ([]Course, error) {
	var search string
	if filter != nil {
		filter.Clean()
		search = filter.Search
	}

	courses, err := svc.repo.QueryCourses(ctx, filter, ordering)
	if err != nil {
		return nil, errors.Wrap(err, "querying courses")
	}
	return svc.matcher.ScoreAndFilter(search, courses), nil
}

func (svc *service) Get(ctx context.Context, id string) (Course, error) {
	return svc.repo.GetCourse(ctx, GetFilter{ID: id})
}

func (svc *service) Create(ctx context.Context, nc NewCourse) (Course, error) {
	now := time.Now().UTC()
	crs := Course{
		Title:       nc.Title,
		Description: nc.Description,
		Category:    nc.Category,
		Price:       nc.Price,
		Teacher:     nc.Teacher,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return svc.repo.CreateCourse(ctx, crs)
}

func (svc *service) Update(ctx context.Context, id string, uc UpdateCourse) (Course, error) {
	crs := Course{
		ID:          id,
		Title:       uc.Title,
		Description: uc.Description,
		Category:    uc.Category,
		Price:       uc.Price,
		Teacher:     uc.Teacher,
		UpdatedAt:   time.Now().UTC(),
	}
	return svc.repo.UpdateCourse(ctx, crs)
}

func (svc *service) Delete(ctx context.Context, ids ...string) error {
	_, err := svc.repo.DeleteCoursesByID(ctx, ids)
	return err
}

func (svc *service) Categories(ctx context.Context) ([]string, error) {
	return svc.repo.QueryCategories(ctx)
}

// Refresh pulls the course listing from the external LMS API and upserts it
// into the local catalog, matching on UpstreamID. Newly seen courses are
// returned in the summary so callers can fan out watch notifications.
func (svc *service) Refresh(ctx context.Context) (RefreshSummary, error) {
	listing, err := svc.catalog.ListCourses(ctx)
	if err != nil {
		return RefreshSummary{}, errors.Wrap(err, "listing upstream courses")
	}

	summary := RefreshSummary{Total: len(listing)}
	now := time.Now().UTC()
	for _, crs := range listing {
		crs.UpdatedAt = now
		if crs.CreatedAt.IsZero() {
			crs.CreatedAt = now
		}
		saved, created, err := svc.repo.UpdateOrCreateCourse(ctx, crs)
		if err != nil {
			return summary, errors.Wrapf(err, "upserting course %q", crs.Title)
		}
		if created {
			summary.Created++
			summary.New = append(summary.New, saved)
		} else {
			summary.Updated++
		}
	}
	return summary, nil
}
