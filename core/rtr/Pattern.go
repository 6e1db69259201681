package rtr

import (
	"regexp"
	"strings"

	"github.com/rohanthewiz/rxroute/consts"
	"github.com/rohanthewiz/serr"
)

// ParsedPattern is the regular expression form of one route pattern.
type ParsedPattern struct {
	// Source is the fully anchored regular expression.
	Source string
	// Params holds the placeholder names in left-to-right order.
	// It is nil, not empty, when the pattern has no placeholders.
	Params []string
}

// paramToken finds placeholders once braces have been turned into parentheses,
// e.g. "(uid" or "(page:".
var paramToken = regexp.MustCompile(`\(\w+:?`)

var braceReplacer = strings.NewReplacer(
	string(consts.RuneOpenBrace), string(consts.RuneOpenParen),
	string(consts.RuneCloseBrace), string(consts.RuneCloseParen),
)

// Compile translates a route pattern into a regular expression.
//
//	/home/{uid}          -> ^\/home\/(\w+)\/?$
//	/home/{uid}/{page}   -> ^\/home\/(\w+)\/(\w+)\/?$
//	/home/{uid:\d+}      -> ^\/home\/(\d+)\/?$
//	/home/profile        -> ^\/home\/profile\/?$
//
// Constraint text is substituted verbatim, so it must not contain unescaped
// parentheses or alternation (see CheckPattern).
func Compile(pattern string) ParsedPattern {
	var params []string

	// /home/(uid)/(page:\d+)
	pattern = braceReplacer.Replace(pattern)

	// [ "(uid", "(page:" ]
	tokens := paramToken.FindAllString(pattern, -1)
	if tokens != nil {
		params = make([]string, 0, len(tokens))

		for _, token := range tokens {
			// "()" when there is no constraint, "(\d+)" otherwise
			pattern = strings.Replace(pattern, token, string(consts.RuneOpenParen), 1)
			pattern = strings.Replace(pattern, consts.ReEmptyGroup, "("+consts.ReDefaultCapture+")", 1)

			name := strings.Replace(token, string(consts.RuneColon), "", 1)
			params = append(params, name[1:])
		}
	}

	pattern = trimChar(pattern, consts.RuneFwdSlash)
	pattern = consts.RePrefix +
		strings.ReplaceAll(pattern, string(consts.RuneFwdSlash), consts.ReEscapedSlash) +
		consts.ReSuffix

	return ParsedPattern{
		Source: pattern,
		Params: params,
	}
}

// compileRegexp compiles a route pattern all the way to a regexp.
func compileRegexp(pattern string) (ParsedPattern, *regexp.Regexp, error) {
	parsed := Compile(pattern)

	re, err := regexp.Compile(parsed.Source)
	if err != nil {
		return parsed, nil, serr.Wrap(err, "pattern", pattern, "source", parsed.Source)
	}
	return parsed, re, nil
}

// trimChar removes exactly one leading and one trailing occurrence of char.
func trimChar(str string, char byte) string {
	if len(str) > 0 && str[0] == char {
		str = str[1:]
	}
	if len(str) > 0 && str[len(str)-1] == char {
		str = str[:len(str)-1]
	}
	return str
}
