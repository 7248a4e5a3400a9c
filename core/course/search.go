package course

import (
	"sort"
	"strings"
)

// Weights are the per-field points a matching variant adds to a course's
// relevance score. A variant hitting several fields adds each applicable
// weight; hitting the same field several times adds it once.
type Weights struct {
	Title       int
	Category    int
	Teacher     int // first or last name
	Description int
}

// DefaultWeights are product-tuned constants; the ranking scenarios in the
// tests pin them, so change with care.
var DefaultWeights = Weights{
	Title:       10,
	Category:    8,
	Teacher:     5,
	Description: 2,
}

// DefaultSynonyms maps a short query token to its accepted expansions.
// A token always matches itself in addition to its expansions.
var DefaultSynonyms = map[string][]string{
	"js":      {"javascript"},
	"ts":      {"typescript"},
	"py":      {"python"},
	"golang":  {"go"},
	"ml":      {"machine learning"},
	"ai":      {"artificial intelligence"},
	"db":      {"database", "sql"},
	"ui":      {"user interface", "design"},
	"ux":      {"user experience", "design"},
	"css":     {"stylesheets", "styling"},
	"devops":  {"deployment", "ci/cd"},
	"algo":    {"algorithm"},
	"math":    {"mathematics"},
	"stats":   {"statistics"},
	"biz":     {"business"},
	"mkt":     {"marketing"},
}

// Matcher ranks courses against a free-text query. The zero value is not
// usable; use NewMatcher (or the package-level ScoreAndFilter) for the
// default configuration.
type Matcher struct {
	weights  Weights
	synonyms map[string][]string
}

func NewMatcher() Matcher {
	return Matcher{weights: DefaultWeights, synonyms: DefaultSynonyms}
}

func NewMatcherWith(weights Weights, synonyms map[string][]string) Matcher {
	return Matcher{weights: weights, synonyms: synonyms}
}

// ScoreAndFilter ranks courses with the default Matcher.
func ScoreAndFilter(query string, courses []Course) []Course {
	return NewMatcher().ScoreAndFilter(query, courses)
}

type scoredCourse struct {
	course Course
	score  int
}

// ScoreAndFilter returns the subset of courses matching every token of the
// query, ordered by relevance score descending; ties keep input order.
//
// An empty (or whitespace-only) query is the browse-all state: the input is
// returned as is, unscored and unfiltered. Otherwise a course is eligible
// only if, for every query token, at least one of the token's variants is a
// substring of the course's haystack (AND across tokens, OR within a token's
// variants). Eligible courses are scored per Weights over the union of all
// variants. Course data is never mutated.
func (m Matcher) ScoreAndFilter(query string, courses []Course) []Course {
	tokens := tokenize(query)
	if len(tokens) == 0 {
		return courses
	}

	variantSets := make([][]string, 0, len(tokens))
	for _, token := range tokens {
		variantSets = append(variantSets, m.variants(token))
	}

	scored := make([]scoredCourse, 0, len(courses))
	for _, crs := range courses {
		haystack := buildHaystack(crs)
		if !matchesAll(haystack, variantSets) {
			continue
		}
		scored = append(scored, scoredCourse{course: crs, score: m.score(crs, variantSets)})
	}

	sort.SliceStable(scored, func(i, j int) bool { return scored[i].score > scored[j].score })

	res := make([]Course, 0, len(scored))
	for _, sc := range scored {
		res = append(res, sc.course)
	}
	return res
}

// tokenize lowercases the query and splits it on runs of whitespace.
func tokenize(query string) []string {
	return strings.Fields(strings.ToLower(query))
}

// variants returns the token itself plus its synonym expansions.
func (m Matcher) variants(token string) []string {
	vars := []string{token}
	for _, syn := range m.synonyms[token] {
		if syn != token {
			vars = append(vars, syn)
		}
	}
	return vars
}

// buildHaystack concatenates the searchable fields of a course, lowercased.
// Missing fields degrade to empty strings.
func buildHaystack(crs Course) string {
	return strings.ToLower(strings.Join([]string{
		crs.Title,
		crs.Description,
		crs.Teacher.FirstName.String,
		crs.Teacher.LastName.String,
		crs.Teacher.Username.String,
		crs.Category.String,
	}, " "))
}

// matchesAll reports whether, for every variant set, at least one variant is
// a substring of the haystack.
func matchesAll(haystack string, variantSets [][]string) bool {
	for _, vars := range variantSets {
		var hit bool
		for _, v := range vars {
			if strings.Contains(haystack, v) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}
	return true
}

// score sums the field weights over the union of all variants of all tokens.
// Substring tests are boolean per field, not count-based.
func (m Matcher) score(crs Course, variantSets [][]string) int {
	title := strings.ToLower(crs.Title)
	category := strings.ToLower(crs.Category.String)
	firstName := strings.ToLower(crs.Teacher.FirstName.String)
	lastName := strings.ToLower(crs.Teacher.LastName.String)
	description := strings.ToLower(crs.Description)

	seen := make(map[string]bool)
	var total int
	for _, vars := range variantSets {
		for _, v := range vars {
			if seen[v] {
				continue
			}
			seen[v] = true

			if strings.Contains(title, v) {
				total += m.weights.Title
			}
			if category != "" && strings.Contains(category, v) {
				total += m.weights.Category
			}
			if (firstName != "" && strings.Contains(firstName, v)) ||
				(lastName != "" && strings.Contains(lastName, v)) {
				total += m.weights.Teacher
			}
			if description != "" && strings.Contains(description, v) {
				total += m.weights.Description
			}
		}
	}
	return total
}
