package tests

import (
	"context"
	"os"
	"testing"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	echoapi "github.com/trezcool/darasa/apps/api/echo"
	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/course"
	"github.com/trezcool/darasa/core/watch"
	emailsvc "github.com/trezcool/darasa/services/email"
	inmemdb "github.com/trezcool/darasa/storage/database/inmem"
	testutil "github.com/trezcool/darasa/tests"
)

const testApiKey = "test-api-key"

var (
	db        *inmemdb.DB
	app       echoapi.Server
	crsRepo   course.Repository
	watchRepo watch.Repository
	catalog   *catalogStub
)

// catalogStub serves a canned upstream listing.
type catalogStub struct {
	courses []course.Course
	err     error
}

func (c *catalogStub) ListCourses(context.Context) ([]course.Course, error) {
	return c.courses, c.err
}

func TestMain(m *testing.M) {
	conf := &core.Config{
		TestMode:    true,
		AppName:     "Darasa",
		AdminAPIKey: testApiKey,
	}

	// set up DB & repos
	db = inmemdb.Open()
	crsRepo = inmemdb.NewCourseRepository(db)
	watchRepo = inmemdb.NewWatchRepository(db)

	// set up services
	mailSvc := emailsvc.NewConsoleServiceMock(conf)
	catalog = &catalogStub{}
	crsSvc := course.NewServiceMock(crsRepo, catalog)
	watchSvc := watch.NewServiceMock(watchRepo, mailSvc)

	validate := validator.New()
	translator := newTranslator()
	core.InitValidators(validate, translator)

	// set up server
	app = echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:           conf,
			Logger:         testutil.Logger{},
			CourseSvc:      crsSvc,
			WatchSvc:       watchSvc,
			Validate:       validate,
			Translator:     translator,
			DisableReqLogs: true,
		},
	)

	os.Exit(m.Run())
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}
