package parser

import (
	"errors"
	"strings"
)

var (
	errUnbalancedBrackets = errors.New("unbalanced brackets")
	errUnterminatedQuote  = errors.New("unterminated quote")
)

// splitColumns splits a row on commas that sit outside both [...] and
// double quotes. Surrounding quotes are dropped and "" inside a quoted
// section becomes a literal quote.
func splitColumns(line string) ([]string, error) {
	fields := make([]string, 0, len(columns))
	var cur strings.Builder
	depth := 0
	inQuote := false

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '"':
			if inQuote && i+1 < len(line) && line[i+1] == '"' {
				cur.WriteByte('"')
				i++
				continue
			}
			inQuote = !inQuote
		case inQuote:
			cur.WriteByte(c)
		case c == '[':
			depth++
			cur.WriteByte(c)
		case c == ']':
			depth--
			if depth < 0 {
				return nil, errUnbalancedBrackets
			}
			cur.WriteByte(c)
		case c == ',' && depth == 0:
			fields = append(fields, strings.TrimSpace(cur.String()))
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	if inQuote {
		return nil, errUnterminatedQuote
	}
	if depth != 0 {
		return nil, errUnbalancedBrackets
	}
	return append(fields, strings.TrimSpace(cur.String())), nil
}
