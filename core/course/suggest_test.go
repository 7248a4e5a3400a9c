package course

import "testing"

func TestSuggestCategory(t *testing.T) {
	known := []string{"Data Science", "Web Development", "Business"}

	tests := []struct {
		input string
		want  string
	}{
		{"data sience", "Data Science"},
		{"web developmet", "Web Development"},
		{"bussiness", "Business"},
		{"cooking", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := SuggestCategory(tt.input, known); got != tt.want {
			t.Errorf("SuggestCategory(%q) = %q; want %q", tt.input, got, tt.want)
		}
	}
}
