package segment

import "testing"

func TestDecodeRoman(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"I", 1},
		{"IV", 4},
		{"IX", 9},
		{"XII", 12},
		{"XL", 40},
		{"MCM", 1900},
		{"mcm", 1900},
		{"", 1},
		{"ABC", 1},
		{"IIX?", 1},
	}

	for _, c := range cases {
		if got := DecodeRoman(c.in); got != c.want {
			t.Errorf("DecodeRoman(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestIsRoman(t *testing.T) {
	if !isRoman("XIV") {
		t.Error("XIV should be recognized as Roman")
	}
	if isRoman("X1V") {
		t.Error("X1V should not be recognized as Roman")
	}
	if isRoman("") {
		t.Error("empty string should not be recognized as Roman")
	}
}
