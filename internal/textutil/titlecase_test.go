package textutil

import "testing"

func TestTitleCase(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"quick", "Quick"},
		{"QUICK brown", "Quick Brown"},
		{"QUICK brown FOX JuMps DoG", "Quick Brown Fox Jumps Dog"},
		{"the quick brown fox", "The Quick Brown Fox"},
		{"quick brown fox: a jumper", "Quick Brown Fox: A Jumper"},
		{"quick brown fox where from", "Quick Brown Fox Where From"},
		{"QUICK BROWN foX IS A dog JUMPER", "Quick Brown Fox Is a Dog Jumper"},
		{"north wind part ii: the return", "North Wind Part II: The Return"},
		{"symphony no. ix (live)", "Symphony No. IX (Live)"},
		{"learning to fly", "Learning to Fly"},
		{"born to run away", "Born To Run Away"},
		{"remix the mix", "Remix the Mix"},
		{"i'm so tired", "I'm so Tired"},
		{"  spaced   out  ", "Spaced Out"},
		{"(part iv)", "(Part IV)"},
		{"énergie noire", "Énergie Noire"},
		{"...and justice for all", "...And Justice for All"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			if got := TitleCase(tc.in); got != tc.want {
				t.Fatalf("TitleCase(%q) = %q want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestTitleCaseBlank(t *testing.T) {
	for _, in := range []string{"", "   "} {
		if got := TitleCase(in); got != in {
			t.Fatalf("expected blank input returned unchanged, got %q", got)
		}
	}
}

func TestSanitizeFileName(t *testing.T) {
	cases := map[string]string{
		"AC/DC: Live":          "AC-DC- Live",
		`What? "Now" <now>`:    "What Now now",
		"  Tabs\tand\nbreaks ": "Tabs and breaks",
		"":                     "",
	}
	for in, want := range cases {
		if got := SanitizeFileName(in); got != want {
			t.Fatalf("SanitizeFileName(%q) = %q want %q", in, got, want)
		}
	}
}
