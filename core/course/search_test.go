package course

import (
	"reflect"
	"testing"

	"github.com/volatiletech/null/v8"
)

func crs(title, description, category string) Course {
	return Course{
		Title:       title,
		Description: description,
		Category:    null.NewString(category, category != ""),
	}
}

func titles(courses []Course) []string {
	out := make([]string, 0, len(courses))
	for _, c := range courses {
		out = append(out, c.Title)
	}
	return out
}

func TestScoreAndFilter_emptyQueryIsIdentity(t *testing.T) {
	courses := []Course{
		crs("Intro to Python", "", "Data Science"),
		crs("Web Basics", "Learn JavaScript and HTML", ""),
	}

	for _, query := range []string{"", "   ", "\t \n"} {
		got := ScoreAndFilter(query, courses)
		if !reflect.DeepEqual(got, courses) {
			t.Errorf("ScoreAndFilter(%q) = %v; want input unchanged", query, titles(got))
		}
	}
}

func TestScoreAndFilter_andSemantics(t *testing.T) {
	courses := []Course{
		crs("Intro to Python", "", "Data Science"),
		crs("Web Basics", "Learn JavaScript and HTML", ""),
	}

	// matches "python" but no variant of "web" appears anywhere
	got := ScoreAndFilter("python web", courses)
	if len(got) != 0 {
		t.Errorf("ScoreAndFilter(\"python web\") = %v; want no results", titles(got))
	}
}

func TestScoreAndFilter_synonymExpansion(t *testing.T) {
	courses := []Course{
		crs("Intro to Python", "", "Data Science"),
		crs("Web Basics", "Learn JavaScript and HTML", ""),
	}

	got := ScoreAndFilter("js", courses)
	want := []string{"Web Basics"}
	if !reflect.DeepEqual(titles(got), want) {
		t.Errorf("ScoreAndFilter(\"js\") = %v; want %v", titles(got), want)
	}
}

func TestScoreAndFilter_fieldWeightOrdering(t *testing.T) {
	courses := []Course{
		crs("Basics", "all about docker", ""), // description match only
		crs("Docker Deep Dive", "", ""),       // title match only
	}

	got := ScoreAndFilter("docker", courses)
	want := []string{"Docker Deep Dive", "Basics"}
	if !reflect.DeepEqual(titles(got), want) {
		t.Errorf("title match must outrank description match; got %v", titles(got))
	}
}

func TestScoreAndFilter_stability(t *testing.T) {
	// same score for all three; input order must be preserved
	courses := []Course{
		crs("Rust One", "", ""),
		crs("Rust Two", "", ""),
		crs("Rust Three", "", ""),
	}

	got := ScoreAndFilter("rust", courses)
	want := []string{"Rust One", "Rust Two", "Rust Three"}
	if !reflect.DeepEqual(titles(got), want) {
		t.Errorf("equal scores must keep input order; got %v", titles(got))
	}
}

func TestScoreAndFilter_idempotent(t *testing.T) {
	courses := []Course{
		crs("Intro to Python", "", "Data Science"),
		crs("Web Basics", "Learn JavaScript and HTML", ""),
	}

	first := ScoreAndFilter("js web", courses)
	second := ScoreAndFilter("js web", courses)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated calls differ: %v != %v", titles(first), titles(second))
	}
}

func TestScoreAndFilter_teacherFields(t *testing.T) {
	smith := Course{
		Title:   "Painting 101",
		Teacher: Teacher{FirstName: null.StringFrom("Jane"), LastName: null.StringFrom("Smith")},
	}
	doe := Course{
		Title:   "Sculpture 101",
		Teacher: Teacher{Username: null.StringFrom("jdoe42")},
	}
	courses := []Course{doe, smith}

	got := ScoreAndFilter("smith", courses)
	if want := []string{"Painting 101"}; !reflect.DeepEqual(titles(got), want) {
		t.Fatalf("ScoreAndFilter(\"smith\") = %v; want %v", titles(got), want)
	}

	// username is searchable too
	got = ScoreAndFilter("jdoe42", courses)
	if want := []string{"Sculpture 101"}; !reflect.DeepEqual(titles(got), want) {
		t.Fatalf("ScoreAndFilter(\"jdoe42\") = %v; want %v", titles(got), want)
	}
}

// Documented ranking scenarios pinning the default weights and synonym table.
func TestScoreAndFilter_scenarios(t *testing.T) {
	python := crs("Intro to Python", "", "Data Science")
	web := crs("Web Basics", "Learn JavaScript and HTML", "")
	courses := []Course{python, web}

	m := NewMatcher()
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{name: "js matches description via synonym", query: "js", want: []string{"Web Basics"}},
		{name: "python data matches title+category", query: "python data", want: []string{"Intro to Python"}},
		{name: "empty browses all", query: "", want: []string{"Intro to Python", "Web Basics"}},
		{name: "js web combines", query: "js web", want: []string{"Web Basics"}},
		{name: "mixed case query", query: "  PyThOn  ", want: []string{"Intro to Python"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.ScoreAndFilter(tt.query, courses)
			if !reflect.DeepEqual(titles(got), tt.want) {
				t.Errorf("ScoreAndFilter(%q) = %v; want %v", tt.query, titles(got), tt.want)
			}
		})
	}
}

func TestMatcher_score(t *testing.T) {
	m := NewMatcher()

	web := crs("Web Basics", "Learn JavaScript and HTML", "")
	python := crs("Intro to Python", "", "Data Science")

	tests := []struct {
		name   string
		query  string
		course Course
		want   int
	}{
		{name: "description only", query: "js", course: web, want: 2},
		{name: "title plus category", query: "python data", course: python, want: 18},
		{name: "title plus description", query: "js web", course: web, want: 12},
		{name: "duplicate variant counted once", query: "js js", course: web, want: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := tokenize(tt.query)
			sets := make([][]string, 0, len(tokens))
			for _, tok := range tokens {
				sets = append(sets, m.variants(tok))
			}
			if got := m.score(tt.course, sets); got != tt.want {
				t.Errorf("score(%q) = %d; want %d", tt.query, got, tt.want)
			}
		})
	}
}

func TestMatcher_customWeights(t *testing.T) {
	// inverted weights must invert the ranking
	m := NewMatcherWith(Weights{Title: 2, Category: 8, Teacher: 5, Description: 10}, nil)

	courses := []Course{
		crs("Docker Deep Dive", "", ""),
		crs("Basics", "all about docker", ""),
	}
	got := m.ScoreAndFilter("docker", courses)
	want := []string{"Basics", "Docker Deep Dive"}
	if !reflect.DeepEqual(titles(got), want) {
		t.Errorf("custom weights ignored; got %v", titles(got))
	}
}
