package token

// Kind identifies a token in the Toy vocabulary.
// The numeric value of a Kind is its stable id (see ID).
type Kind int

// Token holds the kind, the matched text and where it started.
// For example: Token{Kind: INT_LIT, Literal: "5", Line: 1, Column: 9}
type Token struct {
	Kind    Kind
	Literal string
	Line    int
	Column  int
}

// Kind constants - the vocabulary of the language, in id order.
// The ordering is part of the contract: ids never change once assigned.
const (
	// Rejected input. Not part of the vocabulary.
	ILLEGAL Kind = -1

	// Special
	EOF Kind = iota - 1 // End of input, tells the consumer we're done

	// Keywords
	BOOL
	BREAK
	CLASS
	DOUBLE
	ELSE
	EXTENDS
	FOR
	IF
	IMPLEMENTS
	INT
	INTERFACE
	NEWARRAY
	PRINTLN
	READLN
	RETURN
	STRING
	VOID
	WHILE

	// Operators & punctuation
	PLUS
	MINUS
	ASTERISK
	SLASH
	LT
	LT_EQ
	GT
	GT_EQ
	EQ
	NOT_EQ
	AND
	OR
	BANG
	ASSIGN
	SEMICOLON
	COMMA
	PERIOD
	LPAREN
	RPAREN
	LBRACKET
	RBRACKET
	LBRACE
	RBRACE

	// Literals
	BOOL_LIT
	INT_LIT
	DOUBLE_LIT
	STRING_LIT

	// Identifiers
	IDENT

	numKinds int = iota - 1
)

type entry struct {
	name    string
	text    string
	pattern bool
}

// catalogue is indexed by Kind. Fixed kinds carry their exact text,
// literal categories carry the regular expression describing their shape.
var catalogue = [numKinds]entry{
	EOF: {"EOF", "$", false},

	BOOL:       {"BOOL", "bool", false},
	BREAK:      {"BREAK", "break", false},
	CLASS:      {"CLASS", "class", false},
	DOUBLE:     {"DOUBLE", "double", false},
	ELSE:       {"ELSE", "else", false},
	EXTENDS:    {"EXTENDS", "extends", false},
	FOR:        {"FOR", "for", false},
	IF:         {"IF", "if", false},
	IMPLEMENTS: {"IMPLEMENTS", "implements", false},
	INT:        {"INT", "int", false},
	INTERFACE:  {"INTERFACE", "interface", false},
	NEWARRAY:   {"NEWARRAY", "newarray", false},
	PRINTLN:    {"PRINTLN", "println", false},
	READLN:     {"READLN", "readln", false},
	RETURN:     {"RETURN", "return", false},
	STRING:     {"STRING", "string", false},
	VOID:       {"VOID", "void", false},
	WHILE:      {"WHILE", "while", false},

	PLUS:      {"PLUS", "+", false},
	MINUS:     {"MINUS", "-", false},
	ASTERISK:  {"ASTERISK", "*", false},
	SLASH:     {"SLASH", "/", false},
	LT:        {"LT", "<", false},
	LT_EQ:     {"LT_EQ", "<=", false},
	GT:        {"GT", ">", false},
	GT_EQ:     {"GT_EQ", ">=", false},
	EQ:        {"EQ", "==", false},
	NOT_EQ:    {"NOT_EQ", "!=", false},
	AND:       {"AND", "&&", false},
	OR:        {"OR", "||", false},
	BANG:      {"BANG", "!", false},
	ASSIGN:    {"ASSIGN", "=", false},
	SEMICOLON: {"SEMICOLON", ";", false},
	COMMA:     {"COMMA", ",", false},
	PERIOD:    {"PERIOD", ".", false},
	LPAREN:    {"LPAREN", "(", false},
	RPAREN:    {"RPAREN", ")", false},
	LBRACKET:  {"LBRACKET", "[", false},
	RBRACKET:  {"RBRACKET", "]", false},
	LBRACE:    {"LBRACE", "{", false},
	RBRACE:    {"RBRACE", "}", false},

	BOOL_LIT:   {"BOOL_LIT", `(true|false)`, true},
	INT_LIT:    {"INT_LIT", `[+-]?(([0-9]+)|(0(x|X)[a-fA-F0-9]+))`, true},
	DOUBLE_LIT: {"DOUBLE_LIT", `[0-9]+\.[0-9]*((e|E)[+-]?[0-9]+)?`, true},
	STRING_LIT: {"STRING_LIT", `".*"`, true},

	IDENT: {"IDENT", `([a-zA-Z][a-zA-Z0-9_]*)`, true},
}

// Valid reports whether k belongs to the vocabulary.
func (k Kind) Valid() bool {
	return 0 <= k && int(k) < numKinds
}

// ID returns the stable integer id of k.
func (k Kind) ID() int {
	return int(k)
}

func (k Kind) String() string {
	if k == ILLEGAL {
		return "ILLEGAL"
	}
	if !k.Valid() {
		return "Kind(?)"
	}
	return catalogue[k].name
}

// Text returns the canonical text of a fixed kind, or the pattern
// describing a literal category.
func (k Kind) Text() string {
	if !k.Valid() {
		return ""
	}
	return catalogue[k].text
}

// IsPattern reports whether k is matched by shape rather than exact text.
func (k Kind) IsPattern() bool {
	return k.Valid() && catalogue[k].pattern
}

// IsKeyword reports whether k is one of the reserved words.
func (k Kind) IsKeyword() bool {
	return BOOL <= k && k <= WHILE
}

var (
	keywords  = []Kind{BOOL, BREAK, CLASS, DOUBLE, ELSE, EXTENDS, FOR, IF, IMPLEMENTS, INT, INTERFACE, NEWARRAY, PRINTLN, READLN, RETURN, STRING, VOID, WHILE}
	operators = []Kind{PLUS, MINUS, ASTERISK, SLASH, LT, LT_EQ, GT, GT_EQ, EQ, NOT_EQ, AND, OR, BANG, ASSIGN, SEMICOLON, COMMA, PERIOD, LPAREN, RPAREN, LBRACKET, RBRACKET, LBRACE, RBRACE}
)

// fixed maps the text of every non-pattern kind (EOF excluded) to its kind.
var fixed = func() map[string]Kind {
	m := make(map[string]Kind, len(keywords)+len(operators))
	for _, k := range keywords {
		m[k.Text()] = k
	}
	for _, k := range operators {
		m[k.Text()] = k
	}
	return m
}()

// Keywords returns the reserved words in id order.
// The returned slice is a copy; callers may modify it.
func Keywords() []Kind {
	return append([]Kind(nil), keywords...)
}

// Operators returns the operator and punctuation kinds in id order.
func Operators() []Kind {
	return append([]Kind(nil), operators...)
}

// Kinds returns the whole vocabulary in id order.
func Kinds() []Kind {
	out := make([]Kind, numKinds)
	for i := range out {
		out[i] = Kind(i)
	}
	return out
}

// LookupFixed finds the keyword, operator or punctuation kind spelled
// exactly as text.
func LookupFixed(text string) (Kind, bool) {
	k, ok := fixed[text]
	return k, ok
}

// LookupIdent classifies a word of identifier shape.
// Keywords map to their kind, "true" and "false" to BOOL_LIT,
// everything else to IDENT.
func LookupIdent(ident string) Kind {
	if k, ok := fixed[ident]; ok && k.IsKeyword() {
		return k
	}
	if BOOL_LIT.Matches(ident) {
		return BOOL_LIT
	}
	return IDENT
}
