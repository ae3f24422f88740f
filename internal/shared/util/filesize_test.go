package util

import "testing"

func TestFormatFileSize(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "0B"},
		{512, "512 B"},
		{1024, "1 KB"},
		{1536, "1.5 KB"},
		{1047276, "1022.73 KB"},
		{10 << 20, "10 MB"},
		{3 << 30, "3 GB"},
	}
	for _, tc := range cases {
		if got := FormatFileSize(tc.in); got != tc.want {
			t.Errorf("FormatFileSize(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
