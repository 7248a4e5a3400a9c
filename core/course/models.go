package course

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/darasa/core"
)

// Teacher is the subset of the instructor's profile shown on catalog cards and
// searched by the relevance matcher. All fields are optional.
type Teacher struct {
	FirstName null.String `json:"first_name,omitempty"`
	LastName  null.String `json:"last_name,omitempty"`
	Username  null.String `json:"username,omitempty"`
}

type Course struct {
	ID          string       `json:"id"`
	UpstreamID  null.String  `json:"upstream_id,omitempty"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Category    null.String  `json:"category"`
	Price       null.Float64 `json:"price"`
	Teacher     Teacher      `json:"teacher"`
	CreatedAt   time.Time    `json:"created_at"` // UTC
	UpdatedAt   time.Time    `json:"updated_at"` // UTC
}

// NewCourse contains information needed to create a new Course.
type NewCourse struct {
	Title       string       `json:"title" validate:"required,notblank,max=200"`
	Description string       `json:"description"`
	Category    null.String  `json:"category" validate:"omitempty"`
	Price       null.Float64 `json:"price" validate:"omitempty,min=0"`
	Teacher     Teacher      `json:"teacher"`
}

func (nc *NewCourse) Validate(validate *validator.Validate) error {
	// validate first so whitespace-only values hit "notblank", not "required"
	if err := validate.Struct(nc); err != nil {
		return err
	}
	nc.Title = core.CleanString(nc.Title)
	nc.Description = core.CleanString(nc.Description)
	cleanCategory(&nc.Category)
	return nil
}

// UpdateCourse defines what information may be provided to modify an existing Course.
// Zero values leave the original field untouched.
type UpdateCourse struct {
	Title       string       `json:"title" validate:"omitempty,notblank,max=200"`
	Description string       `json:"description"`
	Category    null.String  `json:"category"`
	Price       null.Float64 `json:"price" validate:"omitempty,min=0"`
	Teacher     Teacher      `json:"teacher"`
}

func (uc *UpdateCourse) Validate(orig Course, validate *validator.Validate) error {
	if err := validate.Struct(uc); err != nil {
		return err
	}

	title := core.CleanString(uc.Title)
	if title != "" {
		uc.Title = title
	} else {
		uc.Title = orig.Title
	}

	desc := core.CleanString(uc.Description)
	if desc != "" {
		uc.Description = desc
	} else {
		uc.Description = orig.Description
	}

	cleanCategory(&uc.Category)
	if !uc.Category.Valid {
		uc.Category = orig.Category
	}
	if !uc.Price.Valid {
		uc.Price = orig.Price
	}
	if !uc.Teacher.FirstName.Valid && !uc.Teacher.LastName.Valid && !uc.Teacher.Username.Valid {
		uc.Teacher = orig.Teacher
	}
	return nil
}

func cleanCategory(cat *null.String) {
	if cat.Valid {
		cat.String = core.CleanString(cat.String)
		if cat.String == "" {
			cat.Valid = false
		}
	}
}

// QueryFilter narrows down a catalog query. Category and date bounds are applied
// by the repository; Search is applied afterwards by the relevance matcher.
type QueryFilter struct {
	Search      string    `query:"search"`
	Category    string    `query:"category"`
	CreatedFrom time.Time `query:"created_from"`
	CreatedTo   time.Time `query:"created_to"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Search == "" && qf.Category == "" && qf.CreatedFrom.IsZero() && qf.CreatedTo.IsZero()
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
	qf.Category = core.CleanString(qf.Category)
}

// GetFilter selects a single Course; exactly one field must be set.
type GetFilter struct {
	ID         string
	UpstreamID string
}

type Repository interface {
	CreateCourse(ctx context.Context, crs Course) (Course, error)
	GetCourse(ctx context.Context, filter GetFilter) (Course, error)
	// QueryCourses applies AND operation on available QueryFilter fields,
	// except QueryFilter.Search which is left to the caller.
	QueryCourses(ctx context.Context, filter *QueryFilter, ordering []core.DBOrdering) ([]Course, error)
	QueryCategories(ctx context.Context) ([]string, error)
	UpdateCourse(ctx context.Context, crs Course) (Course, error)
	UpdateOrCreateCourse(ctx context.Context, crs Course) (Course, bool, error)
	DeleteCoursesByID(ctx context.Context, ids []string) (int, error)
}
