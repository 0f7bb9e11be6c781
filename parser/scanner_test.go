package parser

import (
	"reflect"
	"testing"
	"tree_script/diag"
	"tree_script/token"
)

// Scans the whole source, collecting tokens up to and excluding EOF and
// any structured errors the scanner reported along the way.
func scanAll(t *testing.T, source string) ([]token.Token, []*diag.Error) {
	t.Helper()

	s := MakeScanner(source)
	toks := make([]token.Token, 0)
	errs := make([]*diag.Error, 0)

	for {
		tok := s.NextToken()
		if tok.Kind == token.END_OF_FILE {
			return toks, errs
		}
		if tok.Kind == token.INVALID {
			errs = append(errs, s.TakeError())
			continue
		}
		toks = append(toks, tok)
	}
}

func wantKinds(t *testing.T, source string, want []token.TokenKind) []token.Token {
	t.Helper()

	toks, errs := scanAll(t, source)
	if len(errs) != 0 {
		t.Fatalf("unexpected scan errors for %q: %v", source, errs)
	}

	got := make([]token.TokenKind, 0, len(toks))
	for _, tok := range toks {
		got = append(got, tok.Kind)
	}

	if !reflect.DeepEqual(got, want) {
		t.Fatalf("source %q:\nwant kinds %v\ngot kinds  %v", source, want, got)
	}
	return toks
}

func TestScanPunctuationAndOperators(t *testing.T) {
	wantKinds(t, "( ) { } , . ; - + * /", []token.TokenKind{
		token.LEFT_PAREN, token.RIGHT_PAREN, token.LEFT_BRACE,
		token.RIGHT_BRACE, token.COMMA, token.DOT, token.SEMICOLON,
		token.MINUS, token.PLUS, token.STAR, token.SLASH,
	})
}

func TestScanMaximalMunch(t *testing.T) {
	// Two-character operators win over their one-character prefixes.
	wantKinds(t, "! != = == < <= > >= ==!", []token.TokenKind{
		token.BANG, token.BANG_EQUAL, token.EQUAL, token.EQUAL_EQUAL,
		token.LESS, token.LESS_EQUAL, token.GREATER, token.GREATER_EQUAL,
		token.EQUAL_EQUAL, token.BANG,
	})
}

func TestScanKeywordsAndIdentifiers(t *testing.T) {
	toks := wantKinds(t,
		"let fn class self super if else while for and or print return "+
			"break continue null true false letx _id x1",
		[]token.TokenKind{
			token.LET, token.FN, token.CLASS, token.SELF, token.SUPER,
			token.IF, token.ELSE, token.WHILE, token.FOR, token.AND,
			token.OR, token.PRINT, token.RETURN, token.BREAK,
			token.CONTINUE, token.NULL, token.TRUE, token.FALSE,
			token.IDENTIFIER, token.IDENTIFIER, token.IDENTIFIER,
		})

	if toks[18].Lexeme != "letx" {
		t.Errorf("want identifier lexeme 'letx', got %q", toks[18].Lexeme)
	}
}

func TestScanNumberLiterals(t *testing.T) {
	cases := []struct {
		source string
		want   float64
	}{
		{"0", 0},
		{"3", 3},
		{"31.4", 31.4},
		{"0.25", 0.25},
	}

	for _, c := range cases {
		toks := wantKinds(t, c.source, []token.TokenKind{token.NUMBER})
		if got := toks[0].Literal.(float64); got != c.want {
			t.Errorf("source %q: want literal %v, got %v", c.source, c.want, got)
		}
	}

	// '4.' is a number followed by a dot, the dot never joins the lexeme.
	wantKinds(t, "4.foo", []token.TokenKind{
		token.NUMBER, token.DOT, token.IDENTIFIER,
	})
}

func TestScanStringLiteral(t *testing.T) {
	toks := wantKinds(t, `"hello there"`, []token.TokenKind{token.STRING})

	if got := toks[0].Literal.(string); got != "hello there" {
		t.Errorf("want literal 'hello there', got %q", got)
	}
}

func TestScanCommentsAndLines(t *testing.T) {
	source := "one // a comment\n// whole line\ntwo\nthree"
	toks, errs := scanAll(t, source)
	if len(errs) != 0 {
		t.Fatalf("unexpected scan errors: %v", errs)
	}

	want := []int{1, 3, 4}
	if len(toks) != len(want) {
		t.Fatalf("want %v tokens, got %v", len(want), len(toks))
	}
	for n, line := range want {
		if toks[n].Line != line {
			t.Errorf("token %v: want line %v, got %v", n, line, toks[n].Line)
		}
	}
}

func TestScanUnterminatedString(t *testing.T) {
	_, errs := scanAll(t, "\n\"never closed")

	if len(errs) != 1 {
		t.Fatalf("want 1 error, got %v", len(errs))
	}
	if errs[0].Kind != diag.LexError {
		t.Errorf("want LexError, got %v", errs[0].Kind)
	}
	if errs[0].Line != 2 {
		t.Errorf("want line 2, got %v", errs[0].Line)
	}
}

func TestScanUnknownCharacter(t *testing.T) {
	toks, errs := scanAll(t, "a @ b # c")

	// Scanning continues past bad characters, reporting each once.
	if len(errs) != 2 {
		t.Fatalf("want 2 errors, got %v", len(errs))
	}
	for _, err := range errs {
		if err.Kind != diag.LexError {
			t.Errorf("want LexError, got %v", err.Kind)
		}
	}
	if len(toks) != 3 {
		t.Errorf("want 3 good tokens, got %v", len(toks))
	}
}
