package shell

import "testing"

func TestIsActive(t *testing.T) {
	tests := []struct {
		current string
		target  string
		want    bool
	}{
		{"/", "/", true},
		{"/qa", "/qa", true},
		{"/qa", "/", false},
		{"/", "/qa", false},
		{"/qa/", "/qa", false},
		{"/qa/details", "/qa", false},
		{"/unknown", "/", false},
		{"", "/", false},
	}

	for _, tt := range tests {
		if got := IsActive(tt.current, tt.target); got != tt.want {
			t.Errorf("IsActive(%q, %q) = %v, want %v", tt.current, tt.target, got, tt.want)
		}
	}
}

func TestLinkState_Class(t *testing.T) {
	if got := Active.Class(); got != "nav-link nav-link--active" {
		t.Errorf("Active.Class() = %q", got)
	}
	if got := Inactive.Class(); got != "nav-link" {
		t.Errorf("Inactive.Class() = %q", got)
	}
	if Active.String() != "active" || Inactive.String() != "inactive" {
		t.Errorf("String() = %q/%q", Active, Inactive)
	}
}
