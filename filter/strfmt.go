package filter

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// The placeholder syntax understood by formatString:
//
//	{}  {0}  {name}  {:spec}  {0:spec}  {name:spec}  {{  }}
//
// where spec is [[fill]align][sign][#][0][width][,][.precision][type].
// Argument ids are either all automatic or all explicit.

var (
	errUnmatchedBrace = errors.New("unmatched '}' in format string")
	errUnclosedField  = errors.New("missing '}' in format string")
	errMixedIndexing  = errors.New("cannot mix automatic and manual argument indexing")
	errInvalidSpec    = errors.New("invalid format specifier")
)

// formatArgs are the converted arguments of one format call. Each value is
// an int64, float64 or string.
type formatArgs struct {
	named      map[string]any
	positional []any
}

func (a formatArgs) lookup(id string) (any, error) {
	if n, err := strconv.Atoi(id); err == nil {
		if n < 0 || n >= len(a.positional) {
			return nil, fmt.Errorf("argument index %d out of range", n)
		}

		return a.positional[n], nil
	}

	if v, ok := a.named[id]; ok {
		return v, nil
	}

	return nil, fmt.Errorf("argument %q not found", id)
}

func formatString(pattern string, args formatArgs) (string, error) {
	var (
		sb     strings.Builder
		next   int
		manual bool
	)

	for i := 0; i < len(pattern); {
		c := pattern[i]

		switch {
		case c == '}':
			if i+1 < len(pattern) && pattern[i+1] == '}' {
				sb.WriteByte('}')
				i += 2

				continue
			}

			return "", errUnmatchedBrace

		case c != '{':
			sb.WriteByte(c)
			i++

			continue

		case i+1 < len(pattern) && pattern[i+1] == '{':
			sb.WriteByte('{')
			i += 2

			continue
		}

		end := strings.IndexByte(pattern[i+1:], '}')
		if end < 0 {
			return "", errUnclosedField
		}

		field := pattern[i+1 : i+1+end]
		i += end + 2

		id, spec, _ := strings.Cut(field, ":")

		if id == "" {
			if manual {
				return "", errMixedIndexing
			}

			id = strconv.Itoa(next)
			next++
		} else if _, err := strconv.Atoi(id); err == nil {
			if next > 0 {
				return "", errMixedIndexing
			}

			manual = true
		}

		arg, err := args.lookup(id)
		if err != nil {
			return "", err
		}

		fs, err := parseSpec(spec)
		if err != nil {
			return "", err
		}

		s, err := fs.render(arg)
		if err != nil {
			return "", err
		}

		sb.WriteString(s)
	}

	return sb.String(), nil
}

type formatSpec struct {
	fill      rune
	align     byte
	sign      byte
	verb      byte
	width     int
	precision int
	alt       bool
	zero      bool
	group     bool
}

func isAlign(r rune) bool { return r == '<' || r == '>' || r == '^' }

func parseSpec(spec string) (formatSpec, error) {
	fs := formatSpec{fill: ' ', precision: -1}

	// fill and align
	if r, n := utf8.DecodeRuneInString(spec); n > 0 {
		if r2, _ := utf8.DecodeRuneInString(spec[n:]); isAlign(r2) && len(spec) > n {
			fs.fill, fs.align = r, byte(r2)
			spec = spec[n+1:]
		} else if isAlign(r) {
			fs.align = byte(r)
			spec = spec[1:]
		}
	}

	if spec != "" && strings.IndexByte("+- ", spec[0]) >= 0 {
		fs.sign = spec[0]
		spec = spec[1:]
	}

	if spec != "" && spec[0] == '#' {
		fs.alt = true
		spec = spec[1:]
	}

	if spec != "" && spec[0] == '0' {
		fs.zero = true
		spec = spec[1:]
	}

	fs.width, spec = leadingInt(spec)

	if spec != "" && spec[0] == ',' {
		fs.group = true
		spec = spec[1:]
	}

	if spec != "" && spec[0] == '.' {
		var digits string

		fs.precision, digits = leadingInt(spec[1:])
		if len(digits) == len(spec)-1 {
			return fs, fmt.Errorf("%w: missing precision", errInvalidSpec)
		}

		spec = digits
	}

	switch len(spec) {
	case 0:
	case 1:
		fs.verb = spec[0]
	default:
		return fs, fmt.Errorf("%w: %q", errInvalidSpec, spec)
	}

	return fs, nil
}

// leadingInt parses the decimal digits at the start of s.
func leadingInt(s string) (int, string) {
	n, i := 0, 0
	for ; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		n = n*10 + int(s[i]-'0')
	}

	return n, s[i:]
}

func (fs formatSpec) render(arg any) (string, error) {
	switch v := arg.(type) {
	case int64:
		return fs.renderInt(v)
	case float64:
		return fs.renderFloat(v)
	default:
		return fs.renderString(fmt.Sprint(v))
	}
}

// renderString ignores sign and zero flags.
func (fs formatSpec) renderString(s string) (string, error) {
	if fs.verb != 0 && fs.verb != 's' {
		return "", fmt.Errorf("%w: '%c' for string argument", errInvalidSpec, fs.verb)
	}

	if fs.precision >= 0 && utf8.RuneCountInString(s) > fs.precision {
		s = string([]rune(s)[:fs.precision])
	}

	return fs.pad("", s, '<'), nil
}

func (fs formatSpec) renderInt(n int64) (string, error) {
	var digits, prefix string

	mag := uint64(n)
	if n < 0 {
		mag = -mag
	}

	switch fs.verb {
	case 0, 'd', 's':
		digits = strconv.FormatUint(mag, 10)
		if fs.group {
			digits = group(digits)
		}
	case 'x':
		digits, prefix = strconv.FormatUint(mag, 16), "0x"
	case 'X':
		digits, prefix = strings.ToUpper(strconv.FormatUint(mag, 16)), "0X"
	case 'o':
		digits, prefix = strconv.FormatUint(mag, 8), "0o"
	case 'b':
		digits, prefix = strconv.FormatUint(mag, 2), "0b"
	case 'B':
		digits, prefix = strconv.FormatUint(mag, 2), "0B"
	case 'c':
		return fs.pad("", string(rune(n)), '<'), nil
	case 'e', 'E', 'f', 'F', 'g', 'G', '%':
		return fs.renderFloat(float64(n))
	default:
		return "", fmt.Errorf("%w: '%c' for integer argument", errInvalidSpec, fs.verb)
	}

	if !fs.alt {
		prefix = ""
	}

	return fs.pad(fs.signOf(n < 0)+prefix, digits, '>'), nil
}

func (fs formatSpec) renderFloat(f float64) (string, error) {
	neg := math.Signbit(f) && !math.IsNaN(f)
	mag := math.Abs(f)
	verb := fs.verb

	var digits string

	switch {
	case math.IsNaN(f):
		digits = "nan"
	case math.IsInf(f, 0):
		digits = "inf"
	default:
		switch verb {
		case 0, 's':
			if fs.precision >= 0 {
				digits = strconv.FormatFloat(mag, 'g', max(fs.precision, 1), 64)
			} else {
				digits = strconv.FormatFloat(mag, 'g', -1, 64)
			}
		case 'd':
			digits = strconv.FormatFloat(math.Trunc(mag), 'f', 0, 64)
		case 'e', 'E', 'f', 'F', 'g', 'G':
			digits = strconv.FormatFloat(mag, lower(verb), fs.precisionOr(6), 64)
		case '%':
			digits = strconv.FormatFloat(mag*100, 'f', fs.precisionOr(6), 64) + "%"
		default:
			return "", fmt.Errorf("%w: '%c' for floating-point argument", errInvalidSpec, verb)
		}

		if fs.group && (verb == 'f' || verb == 'F' || verb == 'd') {
			intPart, frac, _ := strings.Cut(digits, ".")
			digits = group(intPart)

			if frac != "" {
				digits += "." + frac
			}
		}
	}

	if verb == 'E' || verb == 'F' || verb == 'G' {
		digits = strings.ToUpper(digits)
	}

	return fs.pad(fs.signOf(neg), digits, '>'), nil
}

func (fs formatSpec) precisionOr(def int) int {
	if fs.precision >= 0 {
		return fs.precision
	}

	return def
}

func lower(b byte) byte { return b | 0x20 }

func (fs formatSpec) signOf(neg bool) string {
	switch {
	case neg:
		return "-"
	case fs.sign == '+':
		return "+"
	case fs.sign == ' ':
		return " "
	default:
		return ""
	}
}

// pad applies width, fill and alignment. A zero flag without an explicit
// alignment pads with zeros between the sign and the digits.
func (fs formatSpec) pad(sign, body string, defaultAlign byte) string {
	n := fs.width - utf8.RuneCountInString(sign) - utf8.RuneCountInString(body)
	if n <= 0 {
		return sign + body
	}

	if fs.zero && fs.align == 0 && defaultAlign == '>' {
		return sign + strings.Repeat("0", n) + body
	}

	fill := string(fs.fill)

	align := fs.align
	if align == 0 {
		align = defaultAlign
	}

	switch align {
	case '<':
		return sign + body + strings.Repeat(fill, n)
	case '^':
		return strings.Repeat(fill, n/2) + sign + body + strings.Repeat(fill, n-n/2)
	default:
		return strings.Repeat(fill, n) + sign + body
	}
}

// group inserts a comma between each group of three digits.
func group(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	var sb strings.Builder

	head := len(digits) % 3
	if head > 0 {
		sb.WriteString(digits[:head])
	}

	for i := head; i < len(digits); i += 3 {
		if sb.Len() > 0 {
			sb.WriteByte(',')
		}

		sb.WriteString(digits[i : i+3])
	}

	return sb.String()
}
