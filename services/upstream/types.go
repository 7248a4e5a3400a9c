package upstreamsvc

import (
	"strconv"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/darasa/core/course"
)

type listResponse struct {
	Results []coursePayload `json:"results"`
	Next    string          `json:"next"`
	Count   int             `json:"count"`
}

type coursePayload struct {
	ID          int          `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Category    null.String  `json:"category"`
	Price       null.Float64 `json:"price"`
	Teacher     struct {
		FirstName null.String `json:"first_name"`
		LastName  null.String `json:"last_name"`
		Username  null.String `json:"username"`
	} `json:"teacher"`
	PublishedAt null.Time `json:"published_at"`
}

// course maps the upstream payload onto the catalog model; missing fields stay
// null and are left for Refresh to fill in.
func (p coursePayload) course() course.Course {
	var createdAt time.Time
	if p.PublishedAt.Valid {
		createdAt = p.PublishedAt.Time.UTC()
	}
	return course.Course{
		UpstreamID:  null.StringFrom(strconv.Itoa(p.ID)),
		Title:       p.Title,
		Description: p.Description,
		Category:    p.Category,
		Price:       p.Price,
		Teacher: course.Teacher{
			FirstName: p.Teacher.FirstName,
			LastName:  p.Teacher.LastName,
			Username:  p.Teacher.Username,
		},
		CreatedAt: createdAt,
	}
}
