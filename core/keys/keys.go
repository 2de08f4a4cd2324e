package keys

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Whitespace selects how internal whitespace is treated after trimming.
type Whitespace int

const (
	// WhitespaceCollapse replaces every whitespace run with a single space.
	WhitespaceCollapse Whitespace = iota
	// WhitespaceStrip removes every whitespace character.
	WhitespaceStrip
)

// String returns the configuration name of the mode.
func (w Whitespace) String() string {
	if w == WhitespaceStrip {
		return "strip"
	}
	return "collapse"
}

// ParseWhitespace maps a configuration value to a Whitespace mode.
func ParseWhitespace(s string) (Whitespace, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "collapse":
		return WhitespaceCollapse, nil
	case "strip":
		return WhitespaceStrip, nil
	default:
		return WhitespaceCollapse, fmt.Errorf("unknown whitespace policy %q", s)
	}
}

// Policy controls how a raw value is turned into an identity key.
type Policy struct {
	// Whitespace selects collapse or strip handling of internal whitespace.
	Whitespace Whitespace
	// FoldCase folds letter case so that "a1" and "A1" compare equal.
	FoldCase bool
}

var (
	// Consolidation is the policy used for intra-consolidation identity.
	Consolidation = Policy{Whitespace: WhitespaceCollapse}
	// Join is the policy used for cross-file join keys.
	Join = Policy{Whitespace: WhitespaceStrip}
)

// ISOLayout is the layout used to render time values as keys.
const ISOLayout = "2006-01-02T15:04:05.000Z"

// Normalize converts v into its canonical key. It never fails; values that carry
// no identity yield "".
func (p Policy) Normalize(v any) string {
	var s string
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		s = p.text(val)
	case []byte:
		s = p.text(string(val))
	case time.Time:
		if val.IsZero() {
			return ""
		}
		return val.UTC().Format(ISOLayout)
	case *time.Time:
		if val == nil {
			return ""
		}
		return p.Normalize(*val)
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return Number(val)
	case float32:
		return Number(float64(val))
	case int:
		return strconv.FormatInt(int64(val), 10)
	case int64:
		return strconv.FormatInt(val, 10)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case uint:
		return strconv.FormatUint(uint64(val), 10)
	case uint64:
		return strconv.FormatUint(val, 10)
	case uint32:
		return strconv.FormatUint(uint64(val), 10)
	case fmt.Stringer:
		s = p.text(val.String())
	default:
		s = p.text(fmt.Sprint(val))
	}
	if p.FoldCase {
		s = cases.Fold().String(s)
	}
	return s
}

func (p Policy) text(s string) string {
	if p.Whitespace == WhitespaceStrip {
		return StripSpaces(s)
	}
	return CollapseSpaces(s)
}

// Number renders f as a plain decimal string ("12", "12.5", "0.001").
func Number(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return decimal.NewFromFloat(f).String()
}

// CollapseSpaces trims s and replaces each internal whitespace run with one space.
func CollapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// StripSpaces removes every whitespace character from s.
func StripSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// FoldHeader lower-cases s, trims it and removes its diacritics, so that
// "Fécha " and "fecha" compare equal.
func FoldHeader(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(strings.TrimSpace(folded))
}
