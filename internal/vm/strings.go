package vm

import (
	"strings"
	"unicode"
)

// StringPredicates are the argument-less boolean string methods.
var StringPredicates = map[string]func(string) bool{
	"isalnum":      IsAlnum,
	"isalpha":      IsAlpha,
	"isdecimal":    IsDecimal,
	"isdigit":      IsDigit,
	"isidentifier": IsIdentifier,
	"islower":      IsLower,
	"isnumeric":    IsNumeric,
	"isprintable":  IsPrintable,
	"isspace":      IsSpace,
	"istitle":      IsTitle,
	"isupper":      IsUpper,
}

func allRunes(s string, pred func(rune) bool) bool {
	if s == "" {
		return false
	}

	for _, r := range s {
		if !pred(r) {
			return false
		}
	}

	return true
}

// IsAlnum reports whether s is non-empty and every rune is a letter or number.
func IsAlnum(s string) bool {
	return allRunes(s, func(r rune) bool { return unicode.IsLetter(r) || unicode.IsNumber(r) })
}

// IsAlpha reports whether s is non-empty and every rune is a letter.
func IsAlpha(s string) bool { return allRunes(s, unicode.IsLetter) }

// IsDecimal accepts only decimal digits (category Nd).
func IsDecimal(s string) bool {
	return allRunes(s, func(r rune) bool { return unicode.Is(unicode.Nd, r) })
}

// IsDigit reports whether s is non-empty and every rune is a digit.
func IsDigit(s string) bool { return allRunes(s, unicode.IsDigit) }

// IsNumeric also accepts fractions and other numeric runes such as '½'.
func IsNumeric(s string) bool { return allRunes(s, unicode.IsNumber) }

// IsSpace reports whether s is non-empty and made of whitespace only.
func IsSpace(s string) bool { return allRunes(s, unicode.IsSpace) }

// IsPrintable is true for the empty string.
func IsPrintable(s string) bool {
	for _, r := range s {
		if !unicode.IsPrint(r) {
			return false
		}
	}

	return true
}

// IsIdentifier reports whether s is a letter or underscore followed by letters,
// digits or underscores.
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		switch {
		case r == '_' || unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}

	return true
}

func isCasedUpper(r rune) bool { return unicode.IsUpper(r) || unicode.IsTitle(r) }

// IsLower requires at least one cased rune and no upper-case ones.
func IsLower(s string) bool {
	cased := false

	for _, r := range s {
		if isCasedUpper(r) {
			return false
		}

		if unicode.IsLower(r) {
			cased = true
		}
	}

	return cased
}

// IsUpper requires at least one cased rune and no lower-case ones.
func IsUpper(s string) bool {
	cased := false

	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}

		if isCasedUpper(r) {
			cased = true
		}
	}

	return cased
}

// IsTitle: upper-case runes only follow uncased runes, lower-case runes only
// follow cased ones, and at least one rune is cased.
func IsTitle(s string) bool {
	cased, prevCased := false, false

	for _, r := range s {
		switch {
		case isCasedUpper(r):
			if prevCased {
				return false
			}

			prevCased, cased = true, true
		case unicode.IsLower(r):
			if !prevCased {
				return false
			}

			prevCased, cased = true, true
		default:
			prevCased = false
		}
	}

	return cased
}

func callStringMethod(recv string, name string, args []Value) (Value, error) {
	if pred, ok := StringPredicates[name]; ok {
		if len(args) != 0 {
			return nil, NewException(TypeError, "str.%s() takes no arguments (%d given)", name, len(args))
		}

		return pred(recv), nil
	}

	switch name {
	case "upper", "lower":
		if len(args) != 0 {
			return nil, NewException(TypeError, "str.%s() takes no arguments (%d given)", name, len(args))
		}

		if name == "upper" {
			return strings.ToUpper(recv), nil
		}

		return strings.ToLower(recv), nil
	case "startswith", "endswith":
		if len(args) != 1 {
			return nil, NewException(TypeError, "str.%s() takes exactly one argument (%d given)", name, len(args))
		}

		affix, ok := args[0].(string)
		if !ok {
			return nil, NewException(TypeError, "str.%s() argument must be str, not %s", name, TypeName(args[0]))
		}

		if name == "startswith" {
			return strings.HasPrefix(recv, affix), nil
		}

		return strings.HasSuffix(recv, affix), nil
	}

	return nil, NewException(AttributeError, "'str' object has no attribute '%s'", name)
}
