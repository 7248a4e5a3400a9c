package watch

import (
	"context"
	"fmt"
	"net/mail"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/course"
)

var (
	// errors
	ErrNotFound = errors.New("watch not found")
)

type (
	Service interface {
		Create(ctx context.Context, nw NewWatch) (Watch, error)
		QueryAll(ctx context.Context) ([]Watch, error)
		Delete(ctx context.Context, ids ...string) error
		// NotifyNew emails a digest to every watch matching any of the newly
		// added courses.
		NotifyNew(ctx context.Context, newCourses []course.Course) (int, error)
	}

	service struct {
		db      core.DB
		repo    Repository
		mailSvc core.EmailService
		matcher course.Matcher
	}
)

var _ Service = (*service)(nil)

func NewService(db core.DB, repo Repository, mailSvc core.EmailService) Service {
	return &service{
		db:      db,
		repo:    repo,
		mailSvc: mailSvc,
		matcher: course.NewMatcher(),
	}
}

func (svc *service) Create(ctx context.Context, nw NewWatch) (Watch, error) {
	w := Watch{
		Email:     nw.Email,
		Query:     nw.Query,
		Category:  nw.Category,
		CreatedAt: time.Now().UTC(),
	}
	return svc.repo.CreateWatch(ctx, w)
}

func (svc *service) QueryAll(ctx context.Context) ([]Watch, error) {
	return svc.repo.QueryAllWatches(ctx)
}

func (svc *service) Delete(ctx context.Context, ids ...string) error {
	_, err := svc.repo.DeleteWatchesByID(ctx, ids)
	return err
}

// digestData is rendered by the "newcourses" email templates.
type digestData struct {
	Query   string
	Courses []course.Course
}

func (svc *service) NotifyNew(ctx context.Context, newCourses []course.Course) (int, error) {
	if len(newCourses) == 0 {
		return 0, nil
	}

	watches, err := svc.repo.QueryAllWatches(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "querying watches")
	}

	var notified int
	now := time.Now().UTC()
	for _, w := range watches {
		matches := svc.matches(w, newCourses)
		if len(matches) == 0 {
			continue
		}

		svc.mailSvc.SendMessages(&core.EmailMessage{
			To:           []mail.Address{{Address: w.Email}},
			Subject:      fmt.Sprintf("%d new course(s) for %q", len(matches), w.Query),
			TemplateName: "newcourses",
			TemplateData: digestData{Query: w.Query, Courses: matches},
		})
		if err := svc.repo.TouchWatchNotified(ctx, w.ID, now); err != nil {
			return notified, errors.Wrap(err, "recording watch notification")
		}
		notified++
	}
	return notified, nil
}

// matches applies the watch's category filter, then its query, to the new
// courses. Category filtering happens upstream of the relevance matcher, same
// as catalog queries.
func (svc *service) matches(w Watch, newCourses []course.Course) []course.Course {
	pool := newCourses
	if w.Category.Valid {
		pool = make([]course.Course, 0, len(newCourses))
		for _, crs := range newCourses {
			if crs.Category.Valid && crs.Category.String == w.Category.String {
				pool = append(pool, crs)
			}
		}
	}

	// a watch with an empty query would match everything in its category;
	// an empty query on an empty category matches nothing at all
	if core.CleanString(w.Query) == "" && !w.Category.Valid {
		return nil
	}
	return svc.matcher.ScoreAndFilter(w.Query, pool)
}
