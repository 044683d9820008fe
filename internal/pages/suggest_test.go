package pages

import "testing"

func TestSuggest(t *testing.T) {
	tests := []struct {
		path string
		want []string
	}{
		{path: "/qb", want: []string{"/qa", "/"}},
		{path: "/QA", want: []string{"/qa", "/"}},
		{path: "/q", want: []string{"/", "/qa"}},
		{path: "/settings", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got := Suggest(tt.path)
			if len(got) != len(tt.want) {
				t.Fatalf("Suggest(%q) = %v, want targets %v", tt.path, got, tt.want)
			}
			for i, e := range got {
				if e.Target != tt.want[i] {
					t.Errorf("Suggest(%q)[%d] = %q, want %q", tt.path, i, e.Target, tt.want[i])
				}
			}
		})
	}
}

func TestSuggestionList_Empty(t *testing.T) {
	if got := suggestionList(nil); got != "" {
		t.Errorf("suggestionList(nil) = %q, want empty", got)
	}
}
