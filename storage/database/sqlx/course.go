package sqlxrepos

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/course"
)

type courseRepository struct {
	db *sqlx.DB
}

var _ course.Repository = (*courseRepository)(nil) // interface compliance check

func NewCourseRepository(db *sql.DB) *courseRepository {
	return &courseRepository{db: sqlx.NewDb(db, "postgres")}
}

type courseRow struct {
	ID               string       `db:"id"`
	UpstreamID       null.String  `db:"upstream_id"`
	Title            string       `db:"title"`
	Description      string       `db:"description"`
	Category         null.String  `db:"category"`
	Price            null.Float64 `db:"price"`
	TeacherFirstName null.String  `db:"teacher_first_name"`
	TeacherLastName  null.String  `db:"teacher_last_name"`
	TeacherUsername  null.String  `db:"teacher_username"`
	CreatedAt        time.Time    `db:"created_at"`
	UpdatedAt        time.Time    `db:"updated_at"`
}

func (repo courseRepository) row(crs course.Course) courseRow {
	return courseRow{
		ID:               crs.ID,
		UpstreamID:       crs.UpstreamID,
		Title:            crs.Title,
		Description:      crs.Description,
		Category:         crs.Category,
		Price:            crs.Price,
		TeacherFirstName: crs.Teacher.FirstName,
		TeacherLastName:  crs.Teacher.LastName,
		TeacherUsername:  crs.Teacher.Username,
		CreatedAt:        crs.CreatedAt.UTC(),
		UpdatedAt:        crs.UpdatedAt.UTC(),
	}
}

func (repo courseRepository) unrow(row courseRow) course.Course {
	return course.Course{
		ID:          row.ID,
		UpstreamID:  row.UpstreamID,
		Title:       row.Title,
		Description: row.Description,
		Category:    row.Category,
		Price:       row.Price,
		Teacher: course.Teacher{
			FirstName: row.TeacherFirstName,
			LastName:  row.TeacherLastName,
			Username:  row.TeacherUsername,
		},
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

func (repo courseRepository) unrowSlice(rows []courseRow) []course.Course {
	courses := make([]course.Course, 0, len(rows))
	for _, row := range rows {
		courses = append(courses, repo.unrow(row))
	}
	return courses
}

// trapNoRowsErr maps psql "no rows" err to course.ErrNotFound
func (repo courseRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return course.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo courseRepository) CreateCourse(ctx context.Context, crs course.Course) (course.Course, error) {
	crs.ID = uuid.New().String()
	row := repo.row(crs)

	query := `
	INSERT INTO course (
		id, upstream_id, title, description, category, price,
		teacher_first_name, teacher_last_name, teacher_username,
		created_at, updated_at
	) VALUES (
		:id, :upstream_id, :title, :description, :category, :price,
		:teacher_first_name, :teacher_last_name, :teacher_username,
		:created_at, :updated_at
	)`
	if _, err := repo.db.NamedExecContext(ctx, query, row); err != nil {
		return course.Course{}, errors.Wrap(err, "inserting course")
	}
	return repo.unrow(row), nil
}

func (repo courseRepository) GetCourse(ctx context.Context, filter course.GetFilter) (course.Course, error) {
	query := "SELECT * FROM course WHERE id = $1"
	arg := filter.ID
	if filter.ID == "" {
		query = "SELECT * FROM course WHERE upstream_id = $1"
		arg = filter.UpstreamID
	}

	var row courseRow
	if err := repo.db.GetContext(ctx, &row, query, arg); err != nil {
		return course.Course{}, repo.trapNoRowsErr(err, "getting course")
	}
	return repo.unrow(row), nil
}

func (repo courseRepository) QueryCourses(ctx context.Context, filter *course.QueryFilter, ordering []core.DBOrdering) ([]course.Course, error) {
	var (
		where []string
		args  = make(map[string]interface{})
	)
	if filter != nil {
		if filter.Category != "" {
			where = append(where, "category ILIKE :category")
			args["category"] = filter.Category
		}
		if !filter.CreatedFrom.IsZero() {
			where = append(where, "created_at >= :created_from")
			args["created_from"] = filter.CreatedFrom.UTC()
		}
		if !filter.CreatedTo.IsZero() {
			where = append(where, "created_at <= :created_to")
			args["created_to"] = filter.CreatedTo.UTC()
		}
	}

	query := "SELECT * FROM course"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY " + orderingClause(ordering)

	query, params, err := sqlx.Named(query, args)
	if err != nil {
		return nil, errors.Wrap(err, "binding course query")
	}
	query = repo.db.Rebind(query)

	var rows []courseRow
	if err := repo.db.SelectContext(ctx, &rows, query, params...); err != nil {
		return nil, errors.Wrap(err, "querying courses")
	}
	return repo.unrowSlice(rows), nil
}

func (repo courseRepository) QueryCategories(ctx context.Context) ([]string, error) {
	query := "SELECT DISTINCT category FROM course WHERE category IS NOT NULL ORDER BY category"
	categories := make([]string, 0)
	if err := repo.db.SelectContext(ctx, &categories, query); err != nil {
		return nil, errors.Wrap(err, "querying categories")
	}
	return categories, nil
}

func (repo courseRepository) UpdateCourse(ctx context.Context, crs course.Course) (course.Course, error) {
	row := repo.row(crs)

	// created_at is immutable and upstream_id only set on first sync
	query := `
	UPDATE course SET
		title = :title,
		description = :description,
		category = :category,
		price = :price,
		teacher_first_name = :teacher_first_name,
		teacher_last_name = :teacher_last_name,
		teacher_username = :teacher_username,
		upstream_id = COALESCE(upstream_id, :upstream_id),
		updated_at = :updated_at
	WHERE id = :id`
	res, err := repo.db.NamedExecContext(ctx, query, row)
	if err != nil {
		return course.Course{}, errors.Wrap(err, "updating course")
	}
	if n, err := res.RowsAffected(); err != nil {
		return course.Course{}, errors.Wrap(err, "checking updated course")
	} else if n == 0 {
		return course.Course{}, course.ErrNotFound
	}
	return repo.GetCourse(ctx, course.GetFilter{ID: crs.ID})
}

func (repo courseRepository) UpdateOrCreateCourse(ctx context.Context, crs course.Course) (course.Course, bool, error) {
	if crs.UpstreamID.Valid {
		if existing, err := repo.GetCourse(ctx, course.GetFilter{UpstreamID: crs.UpstreamID.String}); err == nil {
			crs.ID = existing.ID
			updated, err := repo.UpdateCourse(ctx, crs)
			return updated, false, err
		} else if errors.Cause(err) != course.ErrNotFound {
			return course.Course{}, false, err
		}
	}
	created, err := repo.CreateCourse(ctx, crs)
	return created, true, err
}

func (repo courseRepository) DeleteCoursesByID(ctx context.Context, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	query, args, err := sqlx.In("DELETE FROM course WHERE id IN (?)", ids)
	if err != nil {
		return 0, errors.Wrap(err, "binding course deletion")
	}
	query = repo.db.Rebind(query)

	res, err := repo.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, errors.Wrap(err, "deleting courses")
	}
	n, err := res.RowsAffected()
	return int(n), errors.Wrap(err, "counting deleted courses")
}

// orderingClause renders a safe ORDER BY; unknown fields are skipped.
func orderingClause(ordering []core.DBOrdering) string {
	allowed := map[string]bool{"title": true, "created_at": true}

	clauses := make([]string, 0, len(ordering))
	for _, ord := range ordering {
		if allowed[ord.Field] {
			clauses = append(clauses, ord.String())
		}
	}
	if len(clauses) == 0 {
		return "created_at ASC"
	}
	return strings.Join(clauses, ", ")
}
