package logparse

import "testing"

func TestSplitLines(t *testing.T) {
	lines := SplitLines("a\nb\nc\n")
	if len(lines) != 3 {
		t.Fatalf("len(lines) = %d; want 3", len(lines))
	}
	if lines[2] != "c" {
		t.Errorf("lines[2] = %q; want %q", lines[2], "c")
	}

	lines = SplitLines("a\nb")
	if len(lines) != 2 {
		t.Errorf("len(lines) = %d; want 2", len(lines))
	}
}

func TestNormalizePreservesOrderAndCount(t *testing.T) {
	in := []string{"first\r", "sec\rond", "", "last"}
	out := Normalize(in)

	if len(out) != len(in) {
		t.Fatalf("len(out) = %d; want %d", len(out), len(in))
	}
	want := []string{"first", "second", "", "last"}
	for i := range want {
		if out[i] != want[i] {
			t.Errorf("out[%d] = %q; want %q", i, out[i], want[i])
		}
	}
}

func TestCleanNumericToken(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"140.2", "140.2"},
		{"1,234.5", "1234.5"},
		{"1.2.3", "1.23"},
		{"-5.0", "5.0"},
		{"abc", ""},
		{"12ms", "12"},
	}
	for _, c := range cases {
		if got := CleanNumericToken(c.in); got != c.want {
			t.Errorf("CleanNumericToken(%q) = %q; want %q", c.in, got, c.want)
		}
	}
}

func TestLeadingTimestamp(t *testing.T) {
	cases := []struct {
		line   string
		want   float64
		wantOK bool
	}{
		{"   140.2ms [ INFO ] Backend create started", 140.2, true},
		{"0.0ms [ INFO ] qnn-net-run begin", 0, true},
		{"[ INFO ] no timestamp here", 0, false},
		{"spill_bytes=1024", 0, false},
		{"", 0, false},
		{"ms [ INFO ] empty token", 0, false},
		{"12.5 [ INFO ] missing unit", 0, false},
	}
	for _, c := range cases {
		got, ok := LeadingTimestamp(c.line)
		if ok != c.wantOK {
			t.Errorf("LeadingTimestamp(%q) ok = %v; want %v", c.line, ok, c.wantOK)
			continue
		}
		if ok && got != c.want {
			t.Errorf("LeadingTimestamp(%q) = %v; want %v", c.line, got, c.want)
		}
	}
}

func TestLeadingTimestampNeverZeroFills(t *testing.T) {
	// An unparseable token reports absent, not zero.
	if _, ok := LeadingTimestamp("garbagems [ INFO ] Graph execute started"); ok {
		t.Error("unparseable timestamp reported as present")
	}
}
