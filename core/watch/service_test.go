package watch

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/course"
)

type stubRepo struct {
	watches []Watch
}

var _ Repository = (*stubRepo)(nil)

func (r *stubRepo) CreateWatch(_ context.Context, w Watch) (Watch, error) {
	w.ID = fmt.Sprintf("w-%d", len(r.watches)+1)
	r.watches = append(r.watches, w)
	return w, nil
}

func (r *stubRepo) GetWatch(_ context.Context, id string) (Watch, error) {
	for _, w := range r.watches {
		if w.ID == id {
			return w, nil
		}
	}
	return Watch{}, ErrNotFound
}

func (r *stubRepo) QueryAllWatches(_ context.Context) ([]Watch, error) {
	return r.watches, nil
}

func (r *stubRepo) DeleteWatchesByID(_ context.Context, ids []string) (int, error) {
	var cnt int
	kept := r.watches[:0]
	for _, w := range r.watches {
		var del bool
		for _, id := range ids {
			if w.ID == id {
				del = true
				break
			}
		}
		if del {
			cnt++
		} else {
			kept = append(kept, w)
		}
	}
	r.watches = kept
	return cnt, nil
}

func (r *stubRepo) TouchWatchNotified(_ context.Context, id string, at time.Time) error {
	for i, w := range r.watches {
		if w.ID == id {
			r.watches[i].LastNotifiedAt = null.TimeFrom(at)
			return nil
		}
	}
	return ErrNotFound
}

type captureMailer struct {
	sent []*core.EmailMessage
}

func (m *captureMailer) SendMessages(messages ...*core.EmailMessage) {
	m.sent = append(m.sent, messages...)
}

func newCourse(title, description, category string) course.Course {
	return course.Course{
		Title:       title,
		Description: description,
		Category:    null.NewString(category, category != ""),
	}
}

func TestService_NotifyNew(t *testing.T) {
	repo := &stubRepo{}
	mailer := &captureMailer{}
	svc := NewService(nil, repo, mailer)
	ctx := context.Background()

	jsWatch, err := svc.Create(ctx, NewWatch{Email: "dev@test.cd", Query: "js"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, NewWatch{Email: "chef@test.cd", Query: "cooking"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, NewWatch{
		Email:    "data@test.cd",
		Query:    "python",
		Category: null.StringFrom("Business"), // category mismatch must exclude
	})
	require.NoError(t, err)

	notified, err := svc.NotifyNew(ctx, []course.Course{
		newCourse("Modern JavaScript", "From ES6 up", "Web"),
		newCourse("Intro to Python", "", "Data Science"),
	})
	require.NoError(t, err)

	// only the "js" watch matches: synonym expansion hits "JavaScript",
	// the python watch is filtered out by its category
	assert.Equal(t, 1, notified)
	require.Len(t, mailer.sent, 1)
	msg := mailer.sent[0]
	assert.Equal(t, "dev@test.cd", msg.To[0].Address)
	assert.Equal(t, "newcourses", msg.TemplateName)

	got, err := repo.GetWatch(ctx, jsWatch.ID)
	require.NoError(t, err)
	assert.True(t, got.LastNotifiedAt.Valid)
}

func TestService_NotifyNew_noNewCourses(t *testing.T) {
	repo := &stubRepo{}
	mailer := &captureMailer{}
	svc := NewService(nil, repo, mailer)

	_, err := svc.Create(context.Background(), NewWatch{Email: "dev@test.cd", Query: "js"})
	require.NoError(t, err)

	notified, err := svc.NotifyNew(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, notified)
	assert.Empty(t, mailer.sent)
}
