package validate

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSanitizeStringStripsScriptTags(t *testing.T) {
	got := SanitizeString("<script>alert(1)</script>hello")
	if got != "hello" {
		t.Fatalf("expected script content removed, got %q", got)
	}
}

func TestSanitizeStringScriptTagCaseInsensitive(t *testing.T) {
	got := SanitizeString(`before<SCRIPT type="text/javascript">evil()</ScRiPt>after`)
	if got != "beforeafter" {
		t.Fatalf("expected surrounding text retained, got %q", got)
	}
}

func TestSanitizeStringNonGreedyScriptMatch(t *testing.T) {
	got := SanitizeString("<script>a</script>keep<script>b</script>")
	if got != "keep" {
		t.Fatalf("expected both script blocks removed independently, got %q", got)
	}
}

func TestSanitizeStringStripsControlCharacters(t *testing.T) {
	got := SanitizeString("a\x00b\x07c\x0bd\x0ce\x1ff\x7fg")
	if got != "abcdefg" {
		t.Fatalf("expected control characters stripped, got %q", got)
	}
}

func TestSanitizeStringKeepsTabAndNewlineInterior(t *testing.T) {
	// 0x09, 0x0A, and 0x0D fall outside the stripped ranges.
	got := SanitizeString("a\tb\nc")
	if got != "a\tb\nc" {
		t.Fatalf("expected tab and newline preserved, got %q", got)
	}
}

func TestSanitizeStringTrimsWhitespace(t *testing.T) {
	got := SanitizeString("   padded   ")
	if got != "padded" {
		t.Fatalf("expected trimmed string, got %q", got)
	}
}

func TestSanitizeStringTruncates(t *testing.T) {
	long := strings.Repeat("x", MaxStringLength+500)
	got := SanitizeString(long)
	if utf8.RuneCountInString(got) != MaxStringLength {
		t.Fatalf("expected truncation to %d runes, got %d", MaxStringLength, utf8.RuneCountInString(got))
	}
}

func TestSanitizeStringNonString(t *testing.T) {
	cases := []any{nil, 42, 3.14, true, []string{"a"}, map[string]any{"k": "v"}}
	for _, value := range cases {
		if got := SanitizeString(value); got != "" {
			t.Fatalf("expected empty string for %T input, got %q", value, got)
		}
	}
}
