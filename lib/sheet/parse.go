package sheet

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// ParseDeclarations parses a declaration list such as
// "color: red; padding: 4px 8px" into a style object. Property names keep
// their CSS spelling and values are kept as written.
func ParseDeclarations(text string) (Style, error) {
	input := parse.NewInputString(text)
	p := css.NewParser(input, true)

	var style Style
	for {
		gt, _, data := p.Next()
		switch gt {
		case css.ErrorGrammar:
			if err := p.Err(); err != nil && !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("sheet: parse declarations: %w", err)
			}
			return style, nil
		case css.DeclarationGrammar, css.CustomPropertyGrammar:
			value := tokensText(p.Values())
			if value == "" {
				continue
			}
			style = append(style, Decl{Property: string(data), Value: value})
		}
	}
}

// MustParseDeclarations is ParseDeclarations for literals. Panics on error.
func MustParseDeclarations(text string) Style {
	s, err := ParseDeclarations(text)
	if err != nil {
		panic(err)
	}
	return s
}

func tokensText(tokens []css.Token) string {
	var b strings.Builder
	for _, t := range tokens {
		if t.TokenType == css.WhitespaceToken {
			b.WriteByte(' ')
			continue
		}
		b.Write(t.Data)
	}
	return strings.TrimSpace(b.String())
}
