// Package printer renders Value trees back to text in the three modes
// R7RS distinguishes: `display` (human-readable, unquoted strings/chars),
// `write` (machine-readable, re-readable), and the REPL's own echo mode
// (write, plus suppressing the unspecified-value result).
package printer

import (
	"fmt"
	"strconv"
	"strings"

	"cozenage/internal/value"
)

// Mode selects how strings, characters, and the unspecified value are
// rendered.
type Mode uint8

const (
	ModeDisplay Mode = iota
	ModeWrite
	ModeRepl
)

// Print renders v as text in the given mode.
func Print(v value.Value, mode Mode) string {
	var sb strings.Builder
	print1(&sb, v, mode)
	return sb.String()
}

// Display is Print(v, ModeDisplay).
func Display(v value.Value) string { return Print(v, ModeDisplay) }

// Write is Print(v, ModeWrite).
func Write(v value.Value) string { return Print(v, ModeWrite) }

func print1(sb *strings.Builder, v value.Value, mode Mode) {
	switch t := v.(type) {
	case value.NilValue:
		sb.WriteString("()")
	case value.EOFValue:
		sb.WriteString("#[eof]")
	case value.UnspecifiedValue:
		if mode != ModeRepl {
			sb.WriteString("#[unspecified]")
		}
	case value.UndefinedValue:
		sb.WriteString("#[undefined]")
	case value.Boolean:
		if t {
			sb.WriteString("#t")
		} else {
			sb.WriteString("#f")
		}
	case value.Character:
		printChar(sb, rune(t), mode)
	case value.Integer:
		sb.WriteString(strconv.FormatInt(int64(t), 10))
	case *value.BigInt:
		sb.WriteString(t.V.String())
	case value.Rational:
		fmt.Fprintf(sb, "%d/%d", t.Num, t.Den)
	case value.Real:
		sb.WriteString(formatReal(float64(t)))
	case *value.Complex:
		printComplex(sb, t, mode)
	case *value.String:
		printString(sb, t, mode)
	case *value.Symbol:
		sb.WriteString(t.Name)
	case *value.Pair:
		printPair(sb, t, mode)
	case *value.Vector:
		sb.WriteString("#(")
		for i, item := range t.Items {
			if i > 0 {
				sb.WriteByte(' ')
			}
			print1(sb, item, mode)
		}
		sb.WriteByte(')')
	case *value.Bytevector:
		fmt.Fprintf(sb, "#%s(", t.Kind.String())
		for i, e := range t.Elements {
			if i > 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(sb, "%d", e)
		}
		sb.WriteByte(')')
	case *value.Procedure:
		if t.Name != "" {
			fmt.Fprintf(sb, "#[procedure %s]", t.Name)
		} else {
			sb.WriteString("#[procedure]")
		}
	case *value.Port:
		sb.WriteString("#[port]")
	case *value.Promise:
		sb.WriteString("#[promise]")
	case *value.Stream:
		sb.WriteString("#[stream]")
	case *value.ErrorV:
		fmt.Fprintf(sb, "#[error %s: %s]", t.Category, t.Message)
	case *value.MultipleValues:
		for i, item := range t.Items {
			if i > 0 {
				sb.WriteByte(' ')
			}
			print1(sb, item, mode)
		}
	default:
		fmt.Fprintf(sb, "#[unknown %v]", v)
	}
}

// formatReal always shows at least one fractional digit (3 -> "3.0",
// distinguishing inexact reals from exact integers at a glance) and
// uses R7RS's special tokens for the non-finite values.
func formatReal(f float64) string {
	switch {
	case f != f:
		return "+nan.0"
	case f > 0 && f*2 == f:
		return "+inf.0"
	case f < 0 && f*2 == f:
		return "-inf.0"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

func printComplex(sb *strings.Builder, c *value.Complex, mode Mode) {
	reZero := isNumericZero(c.Re)
	if !reZero {
		print1(sb, c.Re, mode)
	}
	imStr := Print(c.Im, mode)
	if !strings.HasPrefix(imStr, "-") && !strings.HasPrefix(imStr, "+") {
		sb.WriteByte('+')
	}
	sb.WriteString(imStr)
	sb.WriteByte('i')
}

func isNumericZero(v value.Value) bool {
	switch t := v.(type) {
	case value.Integer:
		return t == 0
	case value.Real:
		return t == 0
	case *value.BigInt:
		return t.V.Sign() == 0
	case value.Rational:
		return t.Num == 0
	default:
		return false
	}
}

func printChar(sb *strings.Builder, r rune, mode Mode) {
	if mode == ModeDisplay {
		sb.WriteRune(r)
		return
	}
	sb.WriteString("#\\")
	switch r {
	case ' ':
		sb.WriteString("space")
	case '\n':
		sb.WriteString("newline")
	case '\t':
		sb.WriteString("tab")
	case '\r':
		sb.WriteString("return")
	case 0:
		sb.WriteString("null")
	case 0x7f:
		sb.WriteString("delete")
	case 0x1b:
		sb.WriteString("escape")
	case 0x07:
		sb.WriteString("alarm")
	case 0x08:
		sb.WriteString("backspace")
	default:
		if r < 0x20 {
			fmt.Fprintf(sb, "x%x", r)
		} else {
			sb.WriteRune(r)
		}
	}
}

func printString(sb *strings.Builder, s *value.String, mode Mode) {
	if mode == ModeDisplay {
		sb.Write(s.Bytes())
		return
	}
	sb.WriteByte('"')
	for _, r := range s.Go() {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		case '\r':
			sb.WriteString(`\r`)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
}

// printPair handles the quote-family abbreviations (the reader's
// desugared `(quote x)` prints back as `'x`) and proper/improper list
// and dotted-pair notation.
func printPair(sb *strings.Builder, p *value.Pair, mode Mode) {
	if sym, ok := p.Car.(*value.Symbol); ok {
		if abbr, ok := quoteAbbrev(sym.Name); ok {
			if rest, ok := p.Cdr.(*value.Pair); ok {
				if _, isNil := rest.Cdr.(value.NilValue); isNil {
					sb.WriteString(abbr)
					print1(sb, rest.Car, mode)
					return
				}
			}
		}
	}
	sb.WriteByte('(')
	print1(sb, p.Car, mode)
	cur := p.Cdr
	for {
		switch t := cur.(type) {
		case value.NilValue:
			sb.WriteByte(')')
			return
		case *value.Pair:
			sb.WriteByte(' ')
			print1(sb, t.Car, mode)
			cur = t.Cdr
		default:
			sb.WriteString(" . ")
			print1(sb, cur, mode)
			sb.WriteByte(')')
			return
		}
	}
}

func quoteAbbrev(name string) (string, bool) {
	switch name {
	case "quote":
		return "'", true
	case "quasiquote":
		return "`", true
	case "unquote":
		return ",", true
	case "unquote-splicing":
		return ",@", true
	default:
		return "", false
	}
}
