package mi

import (
	"sort"
	"strconv"
	"strings"
)

// Format renders a Record back into its wire line representation. It is the
// inverse of Parse for records in the generator image: string values, tuple
// keys drawn from the identifier class, and no NUL bytes. Used by round-trip
// tests, not by the communication core (which writes commands, not records).
func Format(r Record) string {
	var b strings.Builder
	switch r.Kind {
	case KindResult:
		if r.Token != nil {
			b.WriteString(strconv.FormatUint(uint64(*r.Token), 10))
		}
		b.WriteByte('^')
		b.WriteString(r.ResultClass.String())
		writeResultsSuffix(&b, r.Results)
	case KindAsync:
		if r.Token != nil {
			b.WriteString(strconv.FormatUint(uint64(*r.Token), 10))
		}
		switch r.AsyncKind {
		case AsyncExec:
			b.WriteByte('*')
		case AsyncNotify:
			b.WriteByte('=')
		case AsyncStatus:
			b.WriteByte('+')
		}
		b.WriteString(string(r.AsyncClass))
		writeResultsSuffix(&b, r.Results)
	case KindStream:
		switch r.Channel {
		case ChannelConsole:
			b.WriteByte('~')
		case ChannelTarget:
			b.WriteByte('@')
		case ChannelLog:
			b.WriteByte('&')
		}
		b.WriteByte('"')
		b.WriteString(escape(r.Content))
		b.WriteByte('"')
	case KindNone:
		return "(gdb)"
	}
	return b.String()
}

func writeResultsSuffix(b *strings.Builder, t Tuple) {
	if len(t) == 0 {
		return
	}
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteByte(',')
		b.WriteString(k)
		b.WriteByte('=')
		formatValue(b, t[k])
	}
}

func formatValue(b *strings.Builder, v Value) {
	switch v.Kind() {
	case KindString:
		s, _ := v.AsString()
		b.WriteByte('"')
		b.WriteString(escape(s))
		b.WriteByte('"')
	case KindList:
		items, _ := v.AsList()
		b.WriteByte('[')
		for i, item := range items {
			if i > 0 {
				b.WriteByte(',')
			}
			formatValue(b, item)
		}
		b.WriteByte(']')
	case KindTuple:
		tup, _ := v.AsTuple()
		b.WriteByte('{')
		keys := make([]string, 0, len(tup))
		for k := range tup {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for i, k := range keys {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(k)
			b.WriteByte('=')
			formatValue(b, tup[k])
		}
		b.WriteByte('}')
	}
}

// escape is the inverse of unescape: it re-introduces backslash escapes for
// the characters Format needs to quote.
func escape(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
