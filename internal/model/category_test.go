package model

import "testing"

func TestParseCategory(t *testing.T) {
	cases := []struct {
		in      string
		want    Category
		wantErr bool
	}{
		{"life", CategoryLife, false},
		{"WORK", CategoryWork, false},
		{" Relationships ", CategoryRelationships, false},
		{"", "", true},
		{"hobbies", "", true},
	}
	for _, tc := range cases {
		got, err := ParseCategory(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseCategory(%q) = %q, want error", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseCategory(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseCategory(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestValidRating(t *testing.T) {
	for rating := 1; rating <= 5; rating++ {
		if !ValidRating(rating) {
			t.Errorf("ValidRating(%d) = false", rating)
		}
	}
	for _, rating := range []int{0, 6, -1, 100} {
		if ValidRating(rating) {
			t.Errorf("ValidRating(%d) = true", rating)
		}
	}
}
