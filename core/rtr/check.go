package rtr

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/rohanthewiz/rxroute/consts"
	"github.com/rohanthewiz/serr"
)

var paramName = regexp.MustCompile(`^\w+$`)

// CheckPattern reports pattern syntax that the combined matcher cannot
// handle reliably. Compile and the matchers never call it; it is meant for
// route tables authored by hand.
//
// Rejected:
//   - unbalanced or nested braces (so no {n} quantifiers inside constraints)
//   - parentheses or pipes anywhere, escaped or not
//   - placeholders without a word-character name
//   - duplicate placeholder names
//   - constraints that are not valid regular expressions
func CheckPattern(pattern string) error {
	seen := make(map[string]struct{})
	open := -1 // index of the brace opening the current placeholder

	for i := 0; i < len(pattern); i++ {
		switch pattern[i] {
		case consts.RuneOpenBrace:
			if open >= 0 {
				return patternErr(pattern, i, "nested brace inside placeholder")
			}
			open = i

		case consts.RuneCloseBrace:
			if open < 0 {
				return patternErr(pattern, i, "closing brace without placeholder")
			}

			body := pattern[open+1 : i]
			name, _, _ := strings.Cut(body, string(consts.RuneColon))
			if !paramName.MatchString(name) {
				return patternErr(pattern, open, "placeholder name must be word characters")
			}
			if _, dup := seen[name]; dup {
				return patternErr(pattern, open, "duplicate placeholder "+name)
			}
			seen[name] = struct{}{}
			open = -1

		case consts.RuneOpenParen, consts.RuneCloseParen:
			return patternErr(pattern, i, "parenthesis would shift capture numbering")

		case consts.RunePipe:
			return patternErr(pattern, i, "alternation would shift route numbering")
		}
	}

	if open >= 0 {
		return patternErr(pattern, open, "unterminated placeholder")
	}

	if _, _, err := compileRegexp(pattern); err != nil {
		return err
	}
	return nil
}

func patternErr(pattern string, pos int, msg string) error {
	return serr.New(msg, "pattern", pattern, "position", strconv.Itoa(pos))
}
