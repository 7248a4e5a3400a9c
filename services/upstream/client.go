package upstreamsvc

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/course"
)

const maxAttempts = 5

// Client pulls the course listing off the external LMS API.
type Client struct {
	baseURL  string
	pageSize int
	logger   core.Logger
	http     *http.Client
}

var _ course.Catalog = (*Client)(nil)

func NewClient(conf *core.Config, logger core.Logger) *Client {
	return &Client{
		baseURL:  conf.Upstream.BaseURL,
		pageSize: conf.Upstream.PageSize,
		logger:   logger,
		http:     &http.Client{Timeout: conf.Upstream.Timeout},
	}
}

// ListCourses walks the paginated listing until the API stops returning a next
// page. A page that keeps failing after retries aborts the walk; pages already
// fetched are returned along with the error.
func (c *Client) ListCourses(ctx context.Context) ([]course.Course, error) {
	u, err := url.Parse(c.baseURL + "/api/courses")
	if err != nil {
		return nil, errors.Wrap(err, "parsing upstream url")
	}
	q := u.Query()
	q.Set("page_size", strconv.Itoa(c.pageSize))
	u.RawQuery = q.Encode()

	var all []course.Course
	next := u.String()
	for page := 1; next != ""; page++ {
		res, err := c.fetchPageWithRetry(ctx, next)
		if err != nil {
			return all, errors.Wrapf(err, "fetching upstream page %d", page)
		}

		c.logger.Debug(fmt.Sprintf("upstream page %d: results=%d total=%d", page, len(res.Results), res.Count))
		for _, payload := range res.Results {
			all = append(all, payload.course())
		}
		next = res.Next
	}
	return all, nil
}

func (c *Client) fetchPageWithRetry(ctx context.Context, pageURL string) (*listResponse, error) {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		res, retryAfter, err := c.fetchPage(ctx, pageURL)
		if err == nil {
			return res, nil
		}

		lastErr = err
		if retryAfter < 0 {
			return nil, err
		}

		sleep := retryAfter
		if sleep == 0 {
			sleep = backoff(attempt)
		}
		select {
		case <-time.After(sleep):
		case <-ctx.Done():
			return nil, errors.Wrap(ctx.Err(), "waiting to retry upstream page")
		}
	}
	return nil, lastErr
}

// retryAfter: <0 no retry; 0 retry with backoff; >0 retry after that long (Retry-After).
func (c *Client) fetchPage(ctx context.Context, pageURL string) (*listResponse, time.Duration, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, -1, errors.Wrap(err, "building upstream request")
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return nil, 0, errors.Wrap(err, "requesting upstream page")
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, 0, errors.Wrap(err, "reading upstream response")
	}

	if res.StatusCode != http.StatusOK {
		err := errors.Errorf("upstream listing failed: status=%d body=%s", res.StatusCode, body)
		if res.StatusCode == http.StatusTooManyRequests || res.StatusCode >= http.StatusInternalServerError {
			return nil, parseRetryAfter(res), err
		}
		return nil, -1, err
	}

	var out listResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, -1, errors.Wrap(err, "decoding upstream response")
	}
	return &out, -1, nil
}

func backoff(attempt int) time.Duration {
	sleep := 500 * time.Millisecond * time.Duration(1<<(attempt-1))
	if sleep > 15*time.Second {
		sleep = 15 * time.Second
	}
	return sleep + time.Duration(rand.Intn(300))*time.Millisecond
}

func parseRetryAfter(res *http.Response) time.Duration {
	v := res.Header.Get("Retry-After")
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(v); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}
