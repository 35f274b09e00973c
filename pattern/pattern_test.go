package pattern

import "testing"

func TestCompileToRegexString(t *testing.T) {
	cases := []struct {
		pattern string
		want    string
	}{
		{"/foo*/com[A-Za-z]{ine,ination}??", `^/foo(?:.*)/com[A-Za-z](?:ine|ination)..$`},
		{"/foo/bar", `^/foo/bar$`},
		{"/a?b", `^/a.b$`},
		{"/[!0-9]", `^/[^0-9]$`},
		{"/[0-9^]", `^/[0-9\^]$`},
	}

	for _, c := range cases {
		ap, err := Compile(c.pattern)
		if err != nil {
			t.Fatalf("Compile(%q): unexpected error: %v", c.pattern, err)
		}
		if got := ap.String(); got != c.want {
			t.Errorf("Compile(%q) = %q, want %q", c.pattern, got, c.want)
		}
	}
}

func TestMatchString(t *testing.T) {
	ap, err := Compile("/foo*/com[A-Za-z]{ine,ination}??")
	if err != nil {
		t.Fatalf("Compile: unexpected error: %v", err)
	}

	cases := []struct {
		addr string
		want bool
	}{
		{"/foobar/combinationXY", true},
		{"/foo/comAineXY", true},
		{"/foo/comZinationXY", true},
		{"/foo/com1ine", false},
		{"/foo/combinationX", false},
		{"/bar/combination", false},
	}

	for _, c := range cases {
		if got := ap.MatchString(c.addr); got != c.want {
			t.Errorf("MatchString(%q) = %v, want %v", c.addr, got, c.want)
		}
	}
}

func TestCharClassNegation(t *testing.T) {
	ap, err := Compile("/[!0-9]")
	if err != nil {
		t.Fatalf("Compile: unexpected error: %v", err)
	}
	if got, want := ap.String(), `^/[^0-9]$`; got != want {
		t.Errorf("Compile(%q) = %q, want %q", "/[!0-9]", got, want)
	}

	cases := []struct {
		addr string
		want bool
	}{
		{"/a", true},
		{"/5", false},
	}
	for _, c := range cases {
		if got := ap.MatchString(c.addr); got != c.want {
			t.Errorf("MatchString(%q) = %v, want %v", c.addr, got, c.want)
		}
	}
}

func TestCaretIsOrdinaryCharClassMember(t *testing.T) {
	ap, err := Compile("/[0-9^]")
	if err != nil {
		t.Fatalf("Compile: unexpected error: %v", err)
	}

	cases := []struct {
		addr string
		want bool
	}{
		{"/5", true},
		{"/^", true},
		{"/a", false},
	}
	for _, c := range cases {
		if got := ap.MatchString(c.addr); got != c.want {
			t.Errorf("MatchString(%q) = %v, want %v", c.addr, got, c.want)
		}
	}
}

func TestCompileInvalid(t *testing.T) {
	invalid := []string{
		"",
		"no-leading-slash",
		"/unterminated[",
		"/unterminated{",
		"/empty[]",
		"/unmatched]",
		"/unmatched}",
		"/bad pattern",
	}
	for _, p := range invalid {
		if _, err := Compile(p); err == nil {
			t.Errorf("Compile(%q): expected error, got nil", p)
		}
	}
}

func TestAddressPatternSourceRoundTrip(t *testing.T) {
	ap, err := Compile("/avatar/parameters/*")
	if err != nil {
		t.Fatalf("Compile: unexpected error: %v", err)
	}
	if ap.Source() != "/avatar/parameters/*" {
		t.Errorf("Source() = %q, want original pattern", ap.Source())
	}
}
