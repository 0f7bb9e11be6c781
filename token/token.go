package token

type TokenKind uint8

const (
	// Single character tokens.
	LEFT_PAREN TokenKind = iota
	RIGHT_PAREN
	LEFT_BRACE
	RIGHT_BRACE
	COMMA
	DOT
	SEMICOLON
	MINUS
	PLUS
	STAR
	SLASH

	// One or two character tokens.
	BANG
	BANG_EQUAL
	EQUAL
	EQUAL_EQUAL
	LESS
	LESS_EQUAL
	GREATER
	GREATER_EQUAL

	// Literals.
	IDENTIFIER
	STRING
	NUMBER

	// Keywords.
	AND
	BREAK
	CLASS
	CONTINUE
	ELSE
	FALSE
	FN
	FOR
	IF
	LET
	NULL
	OR
	PRINT
	RETURN
	SELF
	SUPER
	TRUE
	WHILE

	// Produced by the scanner on a malformed lexeme.
	INVALID
	END_OF_FILE
)

// A token is immutable once produced by the scanner.
// Literal holds the decoded payload for NUMBER(float64) and STRING(string)
// tokens, and is nil for everything else.
type Token struct {
	Kind    TokenKind
	Lexeme  string
	Literal any
	Line    int
}
