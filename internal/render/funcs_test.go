package render

import "testing"

func TestIntcomma(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   any
		want string
	}{
		{0, "0"},
		{7, "7"},
		{999, "999"},
		{1000, "1,000"},
		{int64(12345), "12,345"},
		{int64(1234567), "1,234,567"},
		{-1234, "-1,234"},
		{-12, "-12"},
		{uint64(100000), "100,000"},
	}

	for _, tt := range tests {
		got, err := intcomma(tt.in)
		if err != nil {
			t.Fatalf("intcomma(%v) error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("intcomma(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIntcomma_RejectsNonInteger(t *testing.T) {
	t.Parallel()

	if _, err := intcomma("12"); err == nil {
		t.Error("expected error for string input")
	}
}

func TestPluralize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   any
		want string
	}{
		{0, "s"},
		{1, ""},
		{int64(1), ""},
		{2, "s"},
		{int64(1000), "s"},
	}

	for _, tt := range tests {
		got, err := pluralize(tt.in)
		if err != nil {
			t.Fatalf("pluralize(%v) error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("pluralize(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
