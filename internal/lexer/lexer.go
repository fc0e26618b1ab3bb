package lexer

import (
	"unicode"

	"vex/internal/report"
	"vex/internal/token"
)

// Lexer scans one source file into a flat slice of Tokens and doubles as the
// Tokenizer that owns that file's buffer: it is the sole place that knows how
// to recover a Token's spelling or line/column, exactly the split spec.md §3
// describes between the scanner and the checker.
type Lexer struct {
	path      string
	src       []byte
	lineStart []int // byte offset of the first character of each line

	pos        int
	lastTokPos int // byte offset of the start of the most recently lexed token
}

// NewLexer creates a lexer over the given source buffer.
func NewLexer(path string, src []byte) *Lexer {
	l := &Lexer{path: path, src: src, lineStart: []int{0}}
	for i, c := range src {
		if c == '\n' {
			l.lineStart = append(l.lineStart, i+1)
		}
	}
	return l
}

func (l *Lexer) FilePath() string { return l.path }

func (l *Lexer) ExtractToken(tok token.Token) string {
	start := int(tok.Position)
	end := start + int(tok.Length)
	if start < 0 || end > len(l.src) {
		return ""
	}
	return string(l.src[start:end])
}

func (l *Lexer) PositionInfo(tok token.Token) token.Position {
	offset := int(tok.Position)
	// binary search would be cleaner, but files are small and this runs
	// only when rendering a diagnostic.
	line := 0
	for i, start := range l.lineStart {
		if start > offset {
			break
		}
		line = i
	}
	return token.Position{Line: line + 1, Col: offset - l.lineStart[line] + 1}
}

// -----------------------------------------------------------------------------

var keywordPatterns = map[string]token.Kind{
	"func":     token.Func,
	"struct":   token.Struct,
	"template": token.Template,
	"create":   token.Create,
	"include":  token.Include,
	"enum":     token.Enum,
	"let":      token.Let,
	"if":       token.If,
	"elif":     token.Elif,
	"else":     token.Else,
	"for":      token.For,
	"while":    token.While,
	"switch":   token.Switch,
	"case":     token.Case,
	"default":  token.Default,
	"break":    token.Break,
	"continue": token.Continue,
	"return":   token.Return,
	"true":     token.True,
	"false":    token.False,
	"nullptr":  token.NullPtrLit,
	"ref":      token.Reference,
	"ptr":      token.Pointer,
	"bool":     token.Bool,
	"char":     token.Char,
	"i8":       token.I8,
	"u8":       token.U8,
	"i16":      token.I16,
	"u16":      token.U16,
	"i32":      token.I32,
	"u32":      token.U32,
	"i64":      token.I64,
	"u64":      token.U64,
	"f32":      token.F32,
	"f64":      token.F64,
	"void":     token.Void,
	"nullptr_t": token.NullPtr,
}

// The symbol tables are checked longest-match-first by lexSymbol below:
// twoCharSymbols before oneCharSymbols. threeCharSymbols is empty and is not
// consulted.
var threeCharSymbols = map[string]token.Kind{}

var twoCharSymbols = map[string]token.Kind{
	"==": token.Equal,
	"!=": token.NotEqual,
	"<=": token.LessEq,
	">=": token.GreaterEq,
	"&&": token.LogicalAnd,
	"||": token.LogicalOr,
	"+=": token.PlusEq,
	"-=": token.MinusEq,
	"*=": token.StarEq,
	"/=": token.DivideEq,
	"%=": token.ModEq,
	"++": token.Increment,
	"--": token.Decrement,
	"->": token.Arrow,
	"<<": token.LeftShift,
	">>": token.RightShift,
}

var oneCharSymbols = map[byte]token.Kind{
	'+': token.Plus,
	'-': token.Minus,
	'*': token.Star,
	'/': token.Divide,
	'%': token.Mod,
	'=': token.Assign,
	'<': token.Less,
	'>': token.Greater,
	'!': token.Not,
	'&': token.Amp,
	'|': token.Pipe,
	'^': token.Caret,
	'~': token.Compl,
	'.': token.Dot,
	',': token.Comma,
	':': token.Colon,
	';': token.Semicolon,
	'(': token.LParen,
	')': token.RParen,
	'{': token.LBrace,
	'}': token.RBrace,
	'[': token.LBracket,
	']': token.RBracket,
}

// Tokens scans the entire buffer and returns the resulting token list,
// terminated by a single EOF token.  Lexical errors panic with a
// report.LocalCompileError, to be recovered by the caller's deferred
// report.CatchErrors.
func (l *Lexer) Tokens(fileIndex uint32) []token.Token {
	var toks []token.Token
	for {
		tok := l.next(fileIndex)
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks
		}
	}
}

func (l *Lexer) next(fileIndex uint32) token.Token {
	l.skipWhitespaceAndComments()

	if l.pos >= len(l.src) {
		return l.make(fileIndex, token.EOF, l.pos)
	}

	l.lastTokPos = l.pos
	c := l.src[l.pos]

	switch {
	case c == '"':
		return l.lexString(fileIndex)
	case c == '\'':
		return l.lexChar(fileIndex)
	case isDigit(c):
		return l.lexNumber(fileIndex)
	case isIdentStart(c):
		return l.lexIdentOrKeyword(fileIndex)
	default:
		return l.lexSymbol(fileIndex)
	}
}

func (l *Lexer) skipWhitespaceAndComments() {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			l.pos++
		case c == '/' && l.pos+1 < len(l.src) && l.src[l.pos+1] == '/':
			for l.pos < len(l.src) && l.src[l.pos] != '\n' {
				l.pos++
			}
		default:
			return
		}
	}
}

func (l *Lexer) make(fileIndex uint32, kind token.Kind, start int) token.Token {
	return token.Token{
		FileIndex: fileIndex,
		Position:  uint32(start),
		Length:    uint16(l.pos - start),
		Kind:      kind,
	}
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

func isIdentStart(c byte) bool {
	return c == '_' || unicode.IsLetter(rune(c))
}

func isIdentCont(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

func (l *Lexer) lexIdentOrKeyword(fileIndex uint32) token.Token {
	start := l.pos
	for l.pos < len(l.src) && isIdentCont(l.src[l.pos]) {
		l.pos++
	}

	text := string(l.src[start:l.pos])
	if kind, ok := keywordPatterns[text]; ok {
		return l.make(fileIndex, kind, start)
	}
	return l.make(fileIndex, token.Identifier, start)
}

func (l *Lexer) lexNumber(fileIndex uint32) token.Token {
	start := l.pos
	for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
		l.pos++
	}
	// A `.` is never consumed here: in `1.5` it becomes a Dot token and `5` a
	// separate DecimalNumber (spec.md §4.H's DOT-on-numeric rule).
	return l.make(fileIndex, token.DecimalNumber, start)
}

func (l *Lexer) lexString(fileIndex uint32) token.Token {
	start := l.pos
	l.pos++ // opening quote
	for l.pos < len(l.src) && l.src[l.pos] != '"' {
		if l.src[l.pos] == '\\' {
			l.pos++
		}
		l.pos++
	}
	if l.pos >= len(l.src) {
		panic(report.Raise(l.spanFrom(start), "unterminated string literal"))
	}
	l.pos++ // closing quote
	return l.make(fileIndex, token.StringLiteral, start)
}

func (l *Lexer) lexChar(fileIndex uint32) token.Token {
	start := l.pos
	l.pos++ // opening quote
	if l.pos < len(l.src) && l.src[l.pos] == '\\' {
		l.pos++
	}
	if l.pos < len(l.src) {
		l.pos++
	}
	if l.pos >= len(l.src) || l.src[l.pos] != '\'' {
		panic(report.Raise(l.spanFrom(start), "unterminated character literal"))
	}
	l.pos++ // closing quote
	return l.make(fileIndex, token.CharLiteral, start)
}

func (l *Lexer) lexSymbol(fileIndex uint32) token.Token {
	start := l.pos
	if l.pos+1 < len(l.src) {
		two := string(l.src[l.pos : l.pos+2])
		if kind, ok := twoCharSymbols[two]; ok {
			l.pos += 2
			return l.make(fileIndex, kind, start)
		}
	}

	if kind, ok := oneCharSymbols[l.src[l.pos]]; ok {
		l.pos++
		return l.make(fileIndex, kind, start)
	}

	l.pos++
	panic(report.Raise(l.spanFrom(start), "unrecognized character %q", string(rune(l.src[start]))))
}

func (l *Lexer) spanFrom(start int) *report.TextPosition {
	p := l.PositionInfo(token.Token{Position: uint32(start)})
	return &report.TextPosition{StartLine: p.Line - 1, StartCol: p.Col - 1, EndLine: p.Line - 1, EndCol: p.Col}
}
