package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/course"
	"github.com/trezcool/darasa/core/watch"
)

func CreateCourse(
	t *testing.T,
	repo course.Repository,
	title, description, category string,
	teacher course.Teacher,
	createdAt ...time.Time,
) course.Course {
	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	crs := course.Course{
		Title:       title,
		Description: description,
		Category:    null.NewString(category, category != ""),
		Teacher:     teacher,
		CreatedAt:   tstamp,
		UpdatedAt:   tstamp,
	}
	crs, err := repo.CreateCourse(context.Background(), crs)
	if err != nil {
		t.Fatalf("CreateCourse() failed: %v", err)
	}
	return crs
}

func CreateWatch(
	t *testing.T,
	repo watch.Repository,
	email, query, category string,
) watch.Watch {
	w := watch.Watch{
		Email:     email,
		Query:     query,
		Category:  null.NewString(category, category != ""),
		CreatedAt: time.Now().UTC(),
	}
	w, err := repo.CreateWatch(context.Background(), w)
	if err != nil {
		t.Fatalf("CreateWatch() failed: %v", err)
	}
	return w
}

// Logger is a core.Logger that pipes everything through the test log.
type Logger struct {
	T *testing.T
}

var _ core.Logger = (*Logger)(nil)

func (l Logger) Enable(bool) {}

func (l Logger) log(msg string, args []interface{}) {
	if l.T == nil {
		return
	}
	l.T.Helper()
	l.T.Log(append([]interface{}{msg}, args...)...)
}

func (l Logger) Debug(msg string, args ...interface{}) { l.log(msg, args) }
func (l Logger) Info(msg string, args ...interface{})  { l.log(msg, args) }
func (l Logger) Warn(msg string, args ...interface{})  { l.log(msg, args) }
func (l Logger) Error(msg string, args ...interface{}) { l.log(msg, args) }
func (l Logger) Fatal(msg string, args ...interface{}) { l.log(msg, args) }
