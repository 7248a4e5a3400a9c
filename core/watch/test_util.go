package watch

import (
	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/course"
)

// NewServiceMock returns a Service backed by the given repo and mailer,
// without a live database handle.
func NewServiceMock(repo Repository, mailSvc core.EmailService) Service {
	return &service{
		repo:    repo,
		mailSvc: mailSvc,
		matcher: course.NewMatcher(),
	}
}
