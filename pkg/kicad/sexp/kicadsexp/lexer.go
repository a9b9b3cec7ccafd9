package kicadsexp

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"unicode"
)

// TokenType classifies a lexical token
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenLeftParen
	TokenRightParen
	TokenSymbol
	TokenString
)

func (t TokenType) String() string {
	switch t {
	case TokenEOF:
		return "EOF"
	case TokenLeftParen:
		return "'('"
	case TokenRightParen:
		return "')'"
	case TokenSymbol:
		return "symbol"
	case TokenString:
		return "string"
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// Token is one lexical token and the line it started on
type Token struct {
	Type  TokenType
	Value string
	Line  int
}

// Lexer tokenizes S-expressions from a stream
type Lexer struct {
	reader *bufio.Reader
	peeked *rune
	line   int
}

// NewLexer returns a lexer reading from r
func NewLexer(r io.Reader) *Lexer {
	return &Lexer{
		reader: bufio.NewReader(r),
		line:   1,
	}
}

// NextToken returns the next token, or a TokenEOF token at end of input
func (l *Lexer) NextToken() (Token, error) {
	for {
		ch, err := l.peek()
		if errors.Is(err, io.EOF) {
			return Token{Type: TokenEOF, Line: l.line}, nil
		}
		if err != nil {
			return Token{}, err
		}

		if unicode.IsSpace(ch) {
			l.read()
			continue
		}

		// '#' comments run to end of line
		if ch == '#' {
			for {
				c, err := l.read()
				if err != nil || c == '\n' {
					break
				}
			}
			continue
		}

		line := l.line
		switch ch {
		case '(':
			l.read()
			return Token{Type: TokenLeftParen, Value: "(", Line: line}, nil
		case ')':
			l.read()
			return Token{Type: TokenRightParen, Value: ")", Line: line}, nil
		case '"':
			return l.readString(line)
		default:
			return l.readSymbol(line)
		}
	}
}

func (l *Lexer) peek() (rune, error) {
	if l.peeked != nil {
		return *l.peeked, nil
	}

	ch, _, err := l.reader.ReadRune()
	if err != nil {
		return 0, err
	}
	l.peeked = &ch
	return ch, nil
}

func (l *Lexer) read() (rune, error) {
	var ch rune
	if l.peeked != nil {
		ch = *l.peeked
		l.peeked = nil
	} else {
		var err error
		ch, _, err = l.reader.ReadRune()
		if err != nil {
			return 0, err
		}
	}
	if ch == '\n' {
		l.line++
	}
	return ch, nil
}

// readString consumes a quoted string. Both backslash escapes and doubled
// quotes are accepted.
func (l *Lexer) readString(line int) (Token, error) {
	l.read()

	var result []rune
	for {
		ch, err := l.read()
		if errors.Is(err, io.EOF) {
			return Token{}, fmt.Errorf("line %d: unterminated string", line)
		}
		if err != nil {
			return Token{}, err
		}

		if ch == '"' {
			if next, err := l.peek(); err == nil && next == '"' {
				l.read()
				result = append(result, '"')
				continue
			}
			break
		}

		if ch == '\\' {
			next, err := l.read()
			if err != nil {
				return Token{}, fmt.Errorf("line %d: unexpected EOF after backslash", line)
			}
			switch next {
			case 'n':
				result = append(result, '\n')
			case 't':
				result = append(result, '\t')
			case 'r':
				result = append(result, '\r')
			default:
				result = append(result, next)
			}
			continue
		}

		result = append(result, ch)
	}

	return Token{Type: TokenString, Value: string(result), Line: line}, nil
}

// readSymbol consumes an unquoted atom up to the next delimiter
func (l *Lexer) readSymbol(line int) (Token, error) {
	var result []rune
	for {
		ch, err := l.peek()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Token{}, err
		}
		if unicode.IsSpace(ch) || ch == '(' || ch == ')' || ch == '"' {
			break
		}
		l.read()
		result = append(result, ch)
	}

	if len(result) == 0 {
		return Token{}, fmt.Errorf("line %d: empty symbol", line)
	}
	return Token{Type: TokenSymbol, Value: string(result), Line: line}, nil
}
