// SPDX-License-Identifier: MPL-2.0

package runconfig

import (
	"fmt"
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// dquoteSpecial lists the characters that keep a meaning inside double quotes.
const dquoteSpecial = "\"`$\\"

// Quote wraps arg in double quotes, escaping the characters that would
// otherwise be interpreted inside them. A backslash is escaped only where it
// would combine with the following character.
func Quote(arg string) string {
	var b strings.Builder
	b.Grow(len(arg) + 2)
	b.WriteByte('"')
	for i := 0; i < len(arg); i++ {
		c := arg[i]
		switch {
		case c == '\\':
			if i == len(arg)-1 || strings.IndexByte(dquoteSpecial, arg[i+1]) >= 0 {
				b.WriteByte('\\')
			}
		case strings.IndexByte(dquoteSpecial, c) >= 0:
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	b.WriteByte('"')
	return b.String()
}

// AppendQuoted appends arg, always quoted, to an argument string.
// All tokens already present in current are preserved verbatim.
func AppendQuoted(current, arg string) string {
	if current == "" {
		return Quote(arg)
	}
	return current + " " + Quote(arg)
}

// Fields splits an argument string into tokens using POSIX shell quoting
// rules. Nothing is expanded: parameter references, command substitutions
// and glob patterns reach the program exactly as written.
func Fields(args string) ([]string, error) {
	if strings.TrimSpace(args) == "" {
		return nil, nil
	}
	var fields []string
	err := syntax.NewParser().Words(strings.NewReader(args), func(w *syntax.Word) bool {
		var b strings.Builder
		for _, part := range w.Parts {
			writePart(&b, args, part)
		}
		fields = append(fields, b.String())
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("failed to split program arguments %q: %w", args, err)
	}
	return fields, nil
}

func writePart(b *strings.Builder, src string, part syntax.WordPart) {
	switch p := part.(type) {
	case *syntax.Lit:
		b.WriteString(unescape(p.Value, ""))
	case *syntax.SglQuoted:
		b.WriteString(p.Value)
	case *syntax.DblQuoted:
		for _, inner := range p.Parts {
			if lit, ok := inner.(*syntax.Lit); ok {
				b.WriteString(unescape(lit.Value, dquoteSpecial))
				continue
			}
			b.WriteString(source(src, inner))
		}
	default:
		b.WriteString(source(src, part))
	}
}

// unescape drops backslashes that quote the next character. With an empty
// set every character is quoted; otherwise only those in set are.
func unescape(s, set string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			next := s[i+1]
			if next == '\n' {
				i++
				continue
			}
			if set == "" || strings.IndexByte(set, next) >= 0 {
				b.WriteByte(next)
				i++
				continue
			}
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// source returns the text of node as written in src.
func source(src string, node syntax.Node) string {
	start, end := int(node.Pos().Offset()), int(node.End().Offset())
	if start < 0 || end > len(src) || start > end {
		return ""
	}
	return src[start:end]
}
