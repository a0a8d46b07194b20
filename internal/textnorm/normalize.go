// Package textnorm canonicalizes Persian/Arabic script text before pattern matching.
package textnorm

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

var (
	arabicLetters = runes.Map(func(r rune) rune {
		switch r {
		case 'ي':
			return 'ی'
		case 'ك':
			return 'ک'
		case 'ة', 'ۀ':
			return 'ه'
		case 'ؤ':
			return 'و'
		case 'إ', 'أ':
			return 'ا'
		}
		return r
	})

	persianDigits = runes.Map(func(r rune) rune {
		if r >= '۰' && r <= '۹' {
			return '0' + (r - '۰')
		}
		return r
	})

	arabicDigits = runes.Map(func(r rune) rune {
		if r >= '٠' && r <= '٩' {
			return '0' + (r - '٠')
		}
		return r
	})

	zeroWidthNonJoiner = runes.Map(func(r rune) rune {
		if r == '\u200c' {
			return ' '
		}
		return r
	})
)

// Normalize unescapes HTML entities, folds Arabic letter and digit variants to
// their Persian/ASCII forms, turns ZWNJ into a space and collapses whitespace.
// The pass repeats until the text is stable, so Normalize is idempotent.
// Every pass that changes the text either shortens it or folds the last
// mappable runes, so the loop terminates.
func Normalize(s string) string {
	for {
		next := pass(s)
		if next == s {
			return s
		}
		s = next
	}
}

// NormalizeLocation is Normalize that also blanks straight quotes and guillemets.
func NormalizeLocation(s string) string {
	s = Normalize(s)
	s = quoteReplacer.Replace(s)
	return CollapseSpaces(s)
}

// CollapseSpaces folds whitespace runs into single spaces and trims the ends.
func CollapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

var quoteReplacer = strings.NewReplacer(`"`, " ", "«", " ", "»", " ")

func pass(s string) string {
	if s == "" {
		return ""
	}
	s = html.UnescapeString(s)

	chain := transform.Chain(arabicLetters, persianDigits, arabicDigits, zeroWidthNonJoiner)
	mapped, _, err := transform.String(chain, s)
	if err != nil {
		// rune mappers never fail on valid input; keep the unescaped text otherwise
		mapped = s
	}
	return CollapseSpaces(mapped)
}
