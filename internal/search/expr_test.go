package search

import (
	"strings"
	"testing"
)

func f64(v float64) *float64 { return &v }

func TestCompile(t *testing.T) {
	tests := []struct {
		name string
		expr Expr
		want string
	}{
		{"nil expr", nil, "*"},
		{"match all", MatchAll(), "*"},
		{"empty text", Text(""), "*"},
		{"wildcard text", Text("*"), "*"},
		{"single term", Text("inception"), "inception"},
		{"multi term AND", Text("dark knight"), "dark knight"},
		{"tag single", Tag("genre", "Action"), "@genre:{Action}"},
		{"tag multi OR", Tag("genre", "Action", "Thriller"), "@genre:{Action|Thriller}"},
		{"tag escapes value", Tag("genre", "Sci-Fi"), `@genre:{Sci\-Fi}`},
		{"tag skips empty values", Tag("genre", "", "Drama"), "@genre:{Drama}"},
		{"tag all empty", Tag("genre"), "*"},
		{"range closed", NumRange("year", f64(2010), f64(2020)), "@year:[2010 2020]"},
		{"range open min", NumRange("rating", nil, f64(7.5)), "@rating:[-inf 7.5]"},
		{"range open max", NumRange("year", f64(1999), nil), "@year:[1999 +inf]"},
		{"range both open", NumRange("year", nil, nil), "*"},
		{"prefix", Prefix("title", "inc"), "@title:inc*"},
		{"prefix escaped", Prefix("title", "spider-man"), `@title:spider\-man*`},
		{"tag prefix", TagPrefix("genre", "Act"), "@genre:{Act*}"},
		{"tag prefix escaped", TagPrefix("genre", "Sci-"), `@genre:{Sci\-*}`},
		{"tag prefix empty", TagPrefix("genre", ""), "*"},
		{
			"combined filters",
			And(
				Text("space"),
				Tag("genre", "Sci-Fi"),
				NumRange("year", f64(2010), f64(2020)),
			),
			`space @genre:{Sci\-Fi} @year:[2010 2020]`,
		},
		{
			"empty children collapse",
			And(Text(""), Tag("genre"), NumRange("year", nil, nil)),
			"*",
		},
		{
			"filters without text",
			And(Text("*"), Tag("language", "English")),
			"@language:{English}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compile(tt.expr); got != tt.want {
				t.Errorf("Compile() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEscapeToken(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"spider-man", `spider\-man`},
		{"mission: impossible", `mission\:\ impossible`},
		{"[rec]", `\[rec\]`},
		{"50/50", `50\/50`},
		{"what?!", `what?\!`},
		{"", ""},
	}

	for _, tt := range tests {
		if got := EscapeToken(tt.in); got != tt.want {
			t.Errorf("EscapeToken(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// Any title containing grammar-special characters must compile into a
// query whose specials are all escaped, so the literal text still
// matches its own document.
func TestTextEscapesSpecials(t *testing.T) {
	titles := []string{
		"spider-man: no way home",
		"movie [director's cut]",
		"50/50",
		"what's up, doc?",
		"c:\\users",
	}

	for _, title := range titles {
		t.Run(title, func(t *testing.T) {
			q := Compile(Text(title))
			if q == "" || q == Wildcard {
				t.Fatalf("Compile(Text(%q)) collapsed to %q", title, q)
			}
			for i := 0; i < len(q); i++ {
				if strings.ContainsRune(`-:[]{}/`, rune(q[i])) {
					if i == 0 || q[i-1] != '\\' {
						t.Errorf("unescaped special %q at %d in %q", q[i], i, q)
					}
				}
			}
		})
	}
}
