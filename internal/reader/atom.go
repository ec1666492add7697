package reader

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"cozenage/internal/numeric"
	"cozenage/internal/value"
)

var (
	posInf = math.Inf(1)
	negInf = math.Inf(-1)
	nan    = math.NaN()
)

func parseBigInt(s string, radix int) (*big.Int, bool) {
	n := new(big.Int)
	_, ok := n.SetString(s, radix)
	return n, ok
}

// parseAtom classifies a bare atom token in the order booleans, numbers,
// then symbols (character and string literals are already distinguished
// by the lexer and never reach here).
func parseAtom(text string, line int) value.Value {
	switch text {
	case "#t", "#true":
		return value.True
	case "#f", "#false":
		return value.False
	}
	if n, ok := parseNumber(text); ok {
		return n
	}
	return value.Intern(text)
}

// parseChar converts a `#\...` character literal's payload (the text
// after the backslash) into a Character value.
func parseChar(text string, line int) (value.Value, error) {
	if text == "" {
		return nil, newReadError("empty character literal", line)
	}
	if len(text) == 1 {
		return value.Character(rune(text[0])), nil
	}
	runes := []rune(text)
	if len(runes) == 1 {
		return value.Character(runes[0]), nil
	}
	lower := strings.ToLower(text)
	switch lower {
	case "space":
		return value.Character(' '), nil
	case "newline", "linefeed", "nl":
		return value.Character('\n'), nil
	case "tab":
		return value.Character('\t'), nil
	case "return":
		return value.Character('\r'), nil
	case "null", "nul":
		return value.Character(0), nil
	case "altmode", "escape", "esc":
		return value.Character(0x1b), nil
	case "backspace":
		return value.Character(0x08), nil
	case "delete", "rubout", "del":
		return value.Character(0x7f), nil
	case "alarm":
		return value.Character(0x07), nil
	}
	if (lower[0] == 'x' || lower[0] == 'u') && len(lower) > 1 {
		if n, err := strconv.ParseInt(lower[1:], 16, 32); err == nil {
			return value.Character(rune(n)), nil
		}
	}
	return nil, newReadError("unrecognized character literal: #\\"+text, line)
}

// parseNumber attempts to read text as an R7RS numeric literal: optional
// radix/exactness prefixes, then integer, rational (num/den), real
// (decimal or exponential), or complex (rect form a+bi / a-bi) syntax.
// ok is false if text isn't a valid number (so the caller falls back to
// treating it as a symbol).
func parseNumber(text string) (value.Value, bool) {
	radix := 10
	exactness := byte(0) // 0 = unspecified, 'e' = exact, 'i' = inexact
	s := text
	for len(s) >= 2 && s[0] == '#' {
		switch s[1] {
		case 'x', 'X':
			radix = 16
		case 'o', 'O':
			radix = 8
		case 'b', 'B':
			radix = 2
		case 'd', 'D':
			radix = 10
		case 'e', 'E':
			exactness = 'e'
		case 'i', 'I':
			exactness = 'i'
		default:
			return nil, false
		}
		s = s[2:]
	}
	if s == "" {
		return nil, false
	}

	if re, im, ok := splitComplex(s); ok {
		if im == "+" || im == "-" {
			im += "1"
		}
		rv, rok := parseReal(re, radix)
		iv, iok := parseReal(im, radix)
		if !rok || !iok {
			return nil, false
		}
		return applyExactness(&value.Complex{Re: rv, Im: iv}, exactness), true
	}

	v, ok := parseReal(s, radix)
	if !ok {
		return nil, false
	}
	return applyExactness(v, exactness), true
}

func applyExactness(v value.Value, exactness byte) value.Value {
	switch exactness {
	case 'e':
		return numeric.ToExact(v)
	case 'i':
		return numeric.ToInexact(v)
	default:
		return v
	}
}

// splitComplex recognizes "<real><sign><ureal>i" rectangular complex
// syntax, returning the real and imaginary part substrings.
func splitComplex(s string) (re, im string, ok bool) {
	if !strings.HasSuffix(s, "i") && !strings.HasSuffix(s, "I") {
		return "", "", false
	}
	body := s[:len(s)-1]
	if body == "" {
		return "", "", false
	}
	// Pure imaginary: +i, -i, +3i, -3i with no real part.
	for i := len(body) - 1; i > 0; i-- {
		c := body[i]
		if (c == '+' || c == '-') && body[i-1] != 'e' && body[i-1] != 'E' {
			return body[:i], body[i:], true
		}
	}
	if body[0] == '+' || body[0] == '-' {
		return "0", body, true
	}
	return "", "", false
}

// parseReal parses a single real-number literal: integer, rational
// "num/den", or decimal/exponential float, in the given radix (radix
// only applies cleanly to integers and rationals; decimal floats are
// always base 10 per R7RS).
func parseReal(s string, radix int) (value.Value, bool) {
	if s == "" {
		return nil, false
	}
	if s == "+inf.0" {
		return value.Real(posInf), true
	}
	if s == "-inf.0" {
		return value.Real(negInf), true
	}
	if s == "+nan.0" || s == "-nan.0" {
		return value.Real(nan), true
	}
	if i := strings.IndexByte(s, '/'); i > 0 {
		numStr, denStr := s[:i], s[i+1:]
		n, err1 := strconv.ParseInt(numStr, radix, 64)
		d, err2 := strconv.ParseInt(denStr, radix, 64)
		if err1 != nil || err2 != nil || d == 0 {
			return nil, false
		}
		return numeric.NewRational(n, d), true
	}
	if radix == 10 && looksLikeFloat(s) {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, false
		}
		return value.Real(f), true
	}
	if n, err := strconv.ParseInt(s, radix, 64); err == nil {
		return value.Integer(n), true
	}
	if bi, ok := parseBigInt(s, radix); ok {
		return value.NewBigInt(bi), true
	}
	return nil, false
}

func looksLikeFloat(s string) bool {
	return strings.ContainsAny(s, ".eE") && !strings.HasPrefix(s, "0x") && isPlausibleNumberPrefix(s)
}

func isPlausibleNumberPrefix(s string) bool {
	if s == "" {
		return false
	}
	i := 0
	if s[0] == '+' || s[0] == '-' {
		i++
	}
	return i < len(s) && (s[i] >= '0' && s[i] <= '9' || s[i] == '.')
}
