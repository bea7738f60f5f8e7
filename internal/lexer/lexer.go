package lexer

import "unicode"

// Lexer represents the lexer state
type Lexer struct {
	input    []rune
	pos      int  // index of the current rune
	ch       rune // current rune (0 = EOF)
	line     int  // current line number (1-based)
	column   int  // current column number (1-based)
	filename string
}

// New creates a new lexer for the given input
func New(input string) *Lexer {
	l := &Lexer{
		input:  []rune(input),
		pos:    -1, // start before first rune
		ch:     0,
		line:   1,
		column: 0, // will be 1 after first read()
	}
	l.read() // move to first character
	return l
}

// SetFilename attributes all subsequently emitted spans to the provided name.
func (l *Lexer) SetFilename(name string) {
	l.filename = name
}

// read advances the lexer to the next character.
// Line/column always reflect the position of the character at pos.
func (l *Lexer) read() {
	l.pos++
	prevPos := l.pos - 1
	inputLen := len(l.input)

	if l.pos >= inputLen {
		// We've moved past the last rune; normalize position to virtual EOF
		if prevPos >= 0 && prevPos < inputLen {
			if l.input[prevPos] == '\n' {
				l.line++
				l.column = 1
			} else {
				l.column++
			}
		} else if prevPos < 0 {
			// Empty input: column should point to the first position
			l.column = 1
		}
		l.ch = 0 // EOF
		return
	}

	l.ch = l.input[l.pos]

	// If the previous character was a newline, we're now on a new line
	if prevPos >= 0 && prevPos < inputLen && l.input[prevPos] == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
}

// peek returns the next character without advancing
func (l *Lexer) peek() rune {
	if l.pos+1 >= len(l.input) {
		return 0
	}
	return l.input[l.pos+1]
}

// currentSpanStart returns the current position for span tracking
func (l *Lexer) currentSpanStart() (line, column, pos int) {
	return l.line, l.column, l.pos
}

// makeToken creates a token with span information
func (l *Lexer) makeToken(tokType TokenType, startLine, startColumn, startPos, endPos int, literal string) Token {
	return Token{
		Type:    tokType,
		Literal: literal,
		Span: Span{
			Filename: l.filename,
			Line:     startLine,
			Column:   startColumn,
			Start:    startPos,
			End:      endPos,
		},
	}
}

// skipWhitespace skips space, tab, newline, and carriage return characters
func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.read()
	}
}

// readIdentifier reads an identifier or keyword
func (l *Lexer) readIdentifier() string {
	start := l.pos
	for isLetter(l.ch) {
		l.read()
	}
	return string(l.input[start:l.pos])
}

// readNumber reads a maximal run of decimal digits. The literal text is
// retained; the parser converts it.
func (l *Lexer) readNumber() string {
	start := l.pos
	for isDigit(l.ch) {
		l.read()
	}
	return string(l.input[start:l.pos])
}

// readString reads a string literal delimited by double quotes. The contents
// are taken verbatim until the closing quote; an unterminated string simply
// stops at end-of-input without a diagnostic at this layer.
func (l *Lexer) readString() string {
	l.read() // skip opening quote
	start := l.pos
	for l.ch != '"' && l.ch != 0 {
		l.read()
	}
	value := string(l.input[start:l.pos])
	if l.ch == '"' {
		l.read() // consume closing quote
	}
	return value
}

// twoCharToken emits a two-character operator token starting at the current rune.
func (l *Lexer) twoCharToken(tokType TokenType, startLine, startColumn, startPos int) Token {
	first := l.ch
	l.read()
	literal := string(first) + string(l.ch)
	l.read()
	return l.makeToken(tokType, startLine, startColumn, startPos, l.pos, literal)
}

// oneCharToken emits a single-character token for the current rune.
func (l *Lexer) oneCharToken(tokType TokenType, startLine, startColumn, startPos int) Token {
	literal := string(l.ch)
	l.read()
	return l.makeToken(tokType, startLine, startColumn, startPos, l.pos, literal)
}

// NextToken returns the next token from the input. Once the input is
// exhausted it returns an EOF token on every call.
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()

	startLine, startColumn, startPos := l.currentSpanStart()

	switch l.ch {
	case 0:
		if startColumn == 0 {
			startColumn = 1
		}
		return l.makeToken(EOF, startLine, startColumn, startPos, startPos, "")

	case '=':
		if l.peek() == '=' {
			return l.twoCharToken(EQ, startLine, startColumn, startPos)
		}
		return l.oneCharToken(ASSIGN, startLine, startColumn, startPos)

	case '!':
		if l.peek() == '=' {
			return l.twoCharToken(NOT_EQ, startLine, startColumn, startPos)
		}
		return l.oneCharToken(BANG, startLine, startColumn, startPos)

	case '+':
		return l.oneCharToken(PLUS, startLine, startColumn, startPos)

	case '-':
		return l.oneCharToken(MINUS, startLine, startColumn, startPos)

	case '*':
		return l.oneCharToken(ASTERISK, startLine, startColumn, startPos)

	case '/':
		return l.oneCharToken(SLASH, startLine, startColumn, startPos)

	case '<':
		return l.oneCharToken(LT, startLine, startColumn, startPos)

	case '>':
		return l.oneCharToken(GT, startLine, startColumn, startPos)

	case ',':
		return l.oneCharToken(COMMA, startLine, startColumn, startPos)

	case ';':
		return l.oneCharToken(SEMICOLON, startLine, startColumn, startPos)

	case ':':
		return l.oneCharToken(COLON, startLine, startColumn, startPos)

	case '(':
		return l.oneCharToken(LPAREN, startLine, startColumn, startPos)

	case ')':
		return l.oneCharToken(RPAREN, startLine, startColumn, startPos)

	case '{':
		return l.oneCharToken(LBRACE, startLine, startColumn, startPos)

	case '}':
		return l.oneCharToken(RBRACE, startLine, startColumn, startPos)

	case '[':
		return l.oneCharToken(LBRACKET, startLine, startColumn, startPos)

	case ']':
		return l.oneCharToken(RBRACKET, startLine, startColumn, startPos)

	case '"':
		value := l.readString()
		return l.makeToken(STRING, startLine, startColumn, startPos, l.pos, value)

	default:
		if isLetter(l.ch) {
			literal := l.readIdentifier()
			return l.makeToken(LookupIdent(literal), startLine, startColumn, startPos, l.pos, literal)
		}
		if isDigit(l.ch) {
			literal := l.readNumber()
			return l.makeToken(INT, startLine, startColumn, startPos, l.pos, literal)
		}
		return l.oneCharToken(ILLEGAL, startLine, startColumn, startPos)
	}
}

func isLetter(ch rune) bool {
	return unicode.IsLetter(ch) || ch == '_'
}

func isDigit(ch rune) bool {
	// Numeric literals are restricted to ASCII digits.
	return ch >= '0' && ch <= '9'
}
