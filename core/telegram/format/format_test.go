package format

import "testing"

func TestEscapeMarkdown(t *testing.T) {
	cases := []struct {
		in      string
		version int
		want    string
	}{
		{"my_channel *news*", MarkdownV1, `my\_channel \*news\*`},
		{"[link](x)", MarkdownV1, `\[link](x)`},
		{"v1.2 (beta)!", MarkdownV2, `v1\.2 \(beta\)\!`},
		{`a\b`, MarkdownV2, `a\\b`},
	}
	for _, tc := range cases {
		got, err := EscapeMarkdown(tc.in, tc.version)
		if err != nil {
			t.Fatalf("EscapeMarkdown(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("EscapeMarkdown(%q, %d) = %q, want %q", tc.in, tc.version, got, tc.want)
		}
	}
	if _, err := EscapeMarkdown("x", 3); err == nil {
		t.Fatal("expected error for unknown version")
	}
}

func TestPointers(t *testing.T) {
	if DerefString(nil, "-") != "-" {
		t.Fatal("nil should fall back to default")
	}
	if p := StringPtr(""); p != nil {
		t.Fatal("empty string should map to nil")
	}
	if p := StringPtr("news"); p == nil || DerefString(p, "") != "news" {
		t.Fatal("non-empty string should round trip")
	}
}
