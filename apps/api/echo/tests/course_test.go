package tests

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/darasa/core/course"
	testutil "github.com/trezcool/darasa/tests"
)

func seedCatalog(t *testing.T) (c1, c2, c3 course.Course) {
	db.Reset()
	c1 = testutil.CreateCourse(t, crsRepo, "JavaScript Basics", "Learn the language of the web", "Programming",
		course.Teacher{FirstName: null.StringFrom("Ada"), LastName: null.StringFrom("Lovelace"), Username: null.StringFrom("alove")})
	c2 = testutil.CreateCourse(t, crsRepo, "Web Development", "HTML, CSS and JavaScript from scratch", "Programming",
		course.Teacher{FirstName: null.StringFrom("Grace"), LastName: null.StringFrom("Hopper"), Username: null.StringFrom("ghopper")})
	c3 = testutil.CreateCourse(t, crsRepo, "Python 101", "A gentle introduction", "Data Science",
		course.Teacher{FirstName: null.StringFrom("Ada"), LastName: null.StringFrom("Lovelace"), Username: null.StringFrom("alove")})
	return c1, c2, c3
}

func TestCourseAPI_query(t *testing.T) {
	c1, c2, c3 := seedCatalog(t)

	tests := []httpTest{
		{name: "all courses", path: "/v1/courses",
			wantCode: http.StatusOK, wantData: marchallList(t, c1, c2, c3)},
		{name: "search ranks title above description", path: "/v1/courses?search=js",
			wantCode: http.StatusOK, wantData: marchallList(t, c1, c2)},
		{name: "search is case-insensitive", path: "/v1/courses?search=PyThOn",
			wantCode: http.StatusOK, wantData: marchallList(t, c3)},
		{name: "search by teacher name", path: "/v1/courses?search=hopper",
			wantCode: http.StatusOK, wantData: marchallList(t, c2)},
		{name: "unmatched search", path: "/v1/courses?search=cobol",
			wantCode: http.StatusOK, wantData: []byte(`[]`)},
		{name: "category filter", path: "/v1/courses?category=Data%20Science",
			wantCode: http.StatusOK, wantData: marchallList(t, c3)},
		{name: "category filter before search", path: "/v1/courses?search=web&category=Programming",
			wantCode: http.StatusOK, wantData: marchallList(t, c2, c1)},
		{name: "ordering by title desc", path: "/v1/courses?ordering=-title",
			wantCode: http.StatusOK, wantData: marchallList(t, c2, c3, c1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodGet, tt.path)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func TestCourseAPI_retrieve(t *testing.T) {
	c1, _, _ := seedCatalog(t)

	tests := []httpTest{
		{name: "found", path: "/v1/courses/" + c1.ID,
			wantCode: http.StatusOK, wantData: marchallObj(t, c1)},
		{name: "not found", path: "/v1/courses/deadbeef",
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "not found"})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodGet, tt.path)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func TestCourseAPI_queryCategories(t *testing.T) {
	seedCatalog(t)

	tt := httpTest{path: "/v1/categories",
		wantCode: http.StatusOK, wantData: []byte(`["Data Science","Programming"]`)}
	req, rec := newRequest(http.MethodGet, tt.path)
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, tt, rec)
}

func TestCourseAPI_create(t *testing.T) {
	db.Reset()

	tests := []httpTest{
		{name: "api key required", method: http.MethodPost, path: "/v1/courses",
			body:     []byte(`{"title": "Rust in Action"}`),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, httpErr{Error: "permission denied"})},
		{name: "title required", method: http.MethodPost, path: "/v1/courses", apiKey: testApiKey,
			body:     []byte(`{}`),
			wantCode: http.StatusBadRequest, wantData: []byte(`{"title": "this field is required"}`)},
		{name: "blank title", method: http.MethodPost, path: "/v1/courses", apiKey: testApiKey,
			body:     []byte(`{"title": "   "}`),
			wantCode: http.StatusBadRequest, wantData: []byte(`{"title": "this field cannot be blank"}`)},
		{name: "negative price", method: http.MethodPost, path: "/v1/courses", apiKey: testApiKey,
			body:     []byte(`{"title": "Rust in Action", "price": -1}`),
			wantCode: http.StatusBadRequest, wantData: []byte(`{"price": "price must be 0 or greater"}`)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newStaffRequest(tt.method, tt.path, tt.apiKey, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	t.Run("created", func(t *testing.T) {
		body := []byte(`{"title": "Rust in Action", "category": "Programming", "price": 29.99}`)
		req, rec := newStaffRequest(http.MethodPost, "/v1/courses", testApiKey, body)
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusCreated, rec.Code)

		var crs course.Course
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &crs))
		assert.NotEmpty(t, crs.ID)
		assert.Equal(t, "Rust in Action", crs.Title)
		assert.Equal(t, "Programming", crs.Category.String)
		assert.Equal(t, 29.99, crs.Price.Float64)
		assert.False(t, crs.CreatedAt.IsZero())
	})
}

func TestCourseAPI_update(t *testing.T) {
	c1, _, _ := seedCatalog(t)

	t.Run("not found", func(t *testing.T) {
		tt := httpTest{wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "not found"})}
		req, rec := newStaffRequest(http.MethodPut, "/v1/courses/deadbeef", testApiKey, []byte(`{"title": "X"}`))
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})

	t.Run("partial update keeps remaining fields", func(t *testing.T) {
		req, rec := newStaffRequest(http.MethodPut, "/v1/courses/"+c1.ID, testApiKey, []byte(`{"title": "Modern JavaScript"}`))
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		var crs course.Course
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &crs))
		assert.Equal(t, c1.ID, crs.ID)
		assert.Equal(t, "Modern JavaScript", crs.Title)
		assert.Equal(t, c1.Description, crs.Description)
		assert.Equal(t, c1.Category, crs.Category)
		assert.Equal(t, c1.Teacher, crs.Teacher)
	})
}

func TestCourseAPI_destroy(t *testing.T) {
	c1, c2, c3 := seedCatalog(t)

	t.Run("api key required", func(t *testing.T) {
		req, rec := newRequest(http.MethodDelete, "/v1/courses?id="+c1.ID)
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("deleted", func(t *testing.T) {
		req, rec := newStaffRequest(http.MethodDelete, "/v1/courses?id="+c1.ID+"&id="+c2.ID, testApiKey)
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusNoContent, rec.Code)

		tt := httpTest{wantCode: http.StatusOK, wantData: marchallList(t, c3)}
		req, rec = newRequest(http.MethodGet, "/v1/courses")
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})
}

func TestCourseAPI_refresh(t *testing.T) {
	db.Reset()
	existing := testutil.CreateCourse(t, crsRepo, "Go Basics", "", "Programming", course.Teacher{})
	existing.UpstreamID = null.StringFrom("42")
	_, err := crsRepo.UpdateCourse(context.Background(), existing)
	require.NoError(t, err)

	catalog.courses = []course.Course{
		{UpstreamID: null.StringFrom("42"), Title: "Go Basics, 2nd Edition"},
		{UpstreamID: null.StringFrom("43"), Title: "Kubernetes Fundamentals"},
	}

	t.Run("api key required", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, "/v1/courses/refresh")
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("refreshed", func(t *testing.T) {
		req, rec := newStaffRequest(http.MethodPost, "/v1/courses/refresh", testApiKey)
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		var summary course.RefreshSummary
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
		assert.Equal(t, 2, summary.Total)
		assert.Equal(t, 1, summary.Created)
		assert.Equal(t, 1, summary.Updated)
		require.Len(t, summary.New, 1)
		assert.Equal(t, "Kubernetes Fundamentals", summary.New[0].Title)
	})
}
