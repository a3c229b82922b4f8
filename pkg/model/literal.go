package model

import (
	"strings"

	"github.com/goliatone/go-popogen/pkg/schema"
)

// renderDefault renders a property default as source literal text. String
// properties get the value wrapped in single quotes without escaping; every
// other type emits the bare literal.
func renderDefault(schemaType string, value *schema.Node) string {
	if schemaType == "string" {
		return "'" + bareText(value) + "'"
	}
	return bareText(value)
}

// bareText renders a value the way string formatting would: top level strings
// unquoted, everything else as a literal.
func bareText(value *schema.Node) string {
	if value != nil && value.Kind == schema.KindString {
		return value.Text
	}
	var b strings.Builder
	writeLiteral(&b, value)
	return b.String()
}

func writeLiteral(b *strings.Builder, value *schema.Node) {
	if value == nil {
		b.WriteString("None")
		return
	}
	switch value.Kind {
	case schema.KindNull:
		b.WriteString("None")
	case schema.KindBool:
		if value.Bool {
			b.WriteString("True")
		} else {
			b.WriteString("False")
		}
	case schema.KindNumber:
		b.WriteString(value.Text)
	case schema.KindString:
		writeQuoted(b, value.Text)
	case schema.KindArray:
		b.WriteByte('[')
		for i, item := range value.Items {
			if i > 0 {
				b.WriteString(", ")
			}
			writeLiteral(b, item)
		}
		b.WriteByte(']')
	case schema.KindObject:
		b.WriteByte('{')
		for i, member := range value.Members {
			if i > 0 {
				b.WriteString(", ")
			}
			writeQuoted(b, member.Key)
			b.WriteString(": ")
			writeLiteral(b, member.Value)
		}
		b.WriteByte('}')
	}
}

var quoteEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\n", `\n`, "\r", `\r`, "\t", `\t`)

func writeQuoted(b *strings.Builder, text string) {
	b.WriteByte('\'')
	b.WriteString(quoteEscaper.Replace(text))
	b.WriteByte('\'')
}
