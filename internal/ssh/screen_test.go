package ssh

import "testing"

func TestTerm(t *testing.T) {
	cases := []struct {
		name    string
		environ []string
		want    string
	}{
		{"allowed", []string{"LANG=C", "TERM=tmux"}, "tmux"},
		{"linux console", []string{"TERM=linux"}, "linux"},
		{"missing", []string{"LANG=C"}, DefaultTerm},
		{"unknown term", []string{"TERM=evil-term"}, DefaultTerm},
		{"path traversal", []string{"TERM=../../../etc/passwd"}, DefaultTerm},
		{"empty", []string{"TERM="}, DefaultTerm},
		{"first TERM wins", []string{"TERM=xterm-kitty", "TERM=vt100"}, DefaultTerm},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Term(tc.environ); got != tc.want {
				t.Errorf("Term(%q) = %q, want %q", tc.environ, got, tc.want)
			}
		})
	}
}

func TestAllowedTerms(t *testing.T) {
	for term, want := range map[string]bool{
		"xterm-256color":        true,
		"screen":                true,
		"rxvt-unicode-256color": true,
		"xterm-kitty":           false,
		"":                      false,
	} {
		if got := AllowedTerms[term]; got != want {
			t.Errorf("AllowedTerms[%q] = %v, want %v", term, got, want)
		}
	}
}
