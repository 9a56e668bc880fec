package slug

import (
	"regexp"
	"strings"
	"testing"
	"time"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*-\d+$`)

func TestMake(t *testing.T) {
	got := Make("Red Mug")
	if !strings.HasPrefix(got, "red-mug-") {
		t.Fatalf("expected red-mug-<digits>, got %q", got)
	}
	if !slugPattern.MatchString(got) {
		t.Fatalf("slug %q does not match expected shape", got)
	}
}

func TestMakeLowerCasesAndFoldsAccents(t *testing.T) {
	got := Make("  Café É Lait  ")
	if !strings.HasPrefix(got, "cafe-e-lait-") {
		t.Fatalf("expected cafe-e-lait-<digits>, got %q", got)
	}
	if got != strings.ToLower(got) {
		t.Fatalf("expected lower-case slug, got %q", got)
	}
}

func TestMakeDropsPunctuation(t *testing.T) {
	got := Make("100% Pure -- Honey!")
	if !strings.HasPrefix(got, "100-pure-honey-") {
		t.Fatalf("expected 100-pure-honey-<digits>, got %q", got)
	}
}

func TestMakeEmptyInput(t *testing.T) {
	for _, in := range []string{"", "   ", "!!!", "---"} {
		if got := Make(in); got != "" {
			t.Errorf("Make(%q) = %q, want empty token", in, got)
		}
	}
}

func TestMakeDistinctAcrossRun(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 5; i++ {
		s := Make("Red Mug")
		if s == "" {
			t.Fatal("unexpected empty slug")
		}
		seen[s] = true
		// UnixMilli only ticks once per millisecond; spread the calls out.
		time.Sleep(2 * time.Millisecond)
	}
	if len(seen) != 5 {
		t.Fatalf("expected 5 distinct slugs, got %d", len(seen))
	}
}
