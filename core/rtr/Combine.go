package rtr

import (
	"regexp"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/rohanthewiz/rxroute/consts"
	"github.com/rohanthewiz/serr"
)

// noSubPattern is the sub-pattern position reported when no capture group
// took part in a match, i.e. a route without placeholders matched.
const noSubPattern = -1

// CombinedIndex is the single alternation built from an ordered route list.
//
// Params[i] and Offsets[i] always describe route i. The index is immutable once
// built and may be shared between goroutines.
type CombinedIndex struct {
	// Source is the combined pattern: (?:route0)|(?:route1)|...
	Source string
	// Params holds each route's placeholder names, nil for routes without any.
	Params [][]string
	// Offsets holds the capture index of each route's first group.
	// A route without groups shares its offset with the following route.
	Offsets []int
	// Digest identifies the pattern list the index was built from.
	Digest uint64

	re       *regexp.Regexp
	ends     []int            // capture index just past each route's last group
	routeRes []*regexp.Regexp // per-route expressions, used when nothing was captured
	patterns []string         // raw patterns, in route order
}

// Combine builds the combined index for routes, preserving their order.
func Combine[T any](routes []Route[T]) (*CombinedIndex, error) {
	patterns := make([]string, len(routes))
	for i, route := range routes {
		patterns[i] = route.Pattern
	}
	return CombinePatterns(patterns)
}

// CombinePatterns builds the combined index for an ordered list of raw patterns.
// Calling it twice with the same list yields an identical Source.
func CombinePatterns(patterns []string) (*CombinedIndex, error) {
	idx := &CombinedIndex{
		Params:   make([][]string, len(patterns)),
		Offsets:  make([]int, len(patterns)),
		Digest:   Digest(patterns),
		ends:     make([]int, len(patterns)),
		routeRes: make([]*regexp.Regexp, len(patterns)),
		patterns: append([]string(nil), patterns...),
	}

	sb := strings.Builder{}
	group := 1 // group 0 is the whole match

	for i, pattern := range patterns {
		parsed, re, err := compileRegexp(pattern)
		if err != nil {
			return nil, serr.Wrap(err, "route", pattern)
		}

		if i > 0 {
			sb.WriteString(consts.ReAlternation)
		}
		sb.WriteString(consts.ReNonCapturingOpen)
		sb.WriteString(parsed.Source)
		sb.WriteByte(consts.RuneCloseParen)

		idx.Params[i] = parsed.Params
		idx.Offsets[i] = group
		group += re.NumSubexp()
		idx.ends[i] = group
		idx.routeRes[i] = re
	}

	idx.Source = sb.String()

	re, err := regexp.Compile(idx.Source)
	if err != nil {
		return nil, serr.Wrap(err, "combined", idx.Source)
	}
	idx.re = re

	return idx, nil
}

// SamePatterns reports whether the index was built from exactly patterns.
func (idx *CombinedIndex) SamePatterns(patterns []string) bool {
	if len(idx.patterns) != len(patterns) {
		return false
	}
	for i, pattern := range patterns {
		if idx.patterns[i] != pattern {
			return false
		}
	}
	return true
}

// Len returns the number of routes in the index.
func (idx *CombinedIndex) Len() int {
	return len(idx.Params)
}

// Resolve matches path against the combined pattern and returns the ordinal of
// the matched route with its parameters. The ordinal is found through the
// capture offset table recorded while combining.
func (idx *CombinedIndex) Resolve(path string) (route int, params Params, ok bool) {
	matches, pos, ok := idx.exec(path)
	if !ok {
		return 0, nil, false
	}

	if pos == noSubPattern {
		route, ok = idx.routeIndexByPath(path)
		return route, nil, ok
	}

	// First route whose groups extend past pos
	route = sort.Search(len(idx.ends), func(i int) bool { return idx.ends[i] > pos })
	if route == len(idx.ends) {
		return 0, nil, false
	}

	return route, collectParams(path, matches, idx.Params[route], idx.Offsets[route]), true
}

// ResolveScan is Resolve with the ordinal recovered by re-scanning the
// combined source: count capturing parentheses up to the first defined
// capture, then count the alternations before that point.
//
// Patterns whose constraints contain parentheses, pipes or character classes
// holding either corrupt the count. Resolve has no such restriction on the
// ordinal.
func (idx *CombinedIndex) ResolveScan(path string) (route int, params Params, ok bool) {
	matches, pos, ok := idx.exec(path)
	if !ok {
		return 0, nil, false
	}

	if pos == noSubPattern {
		route, ok = idx.routeIndexByPath(path)
		return route, nil, ok
	}

	route = routeIndexBySubPattern(idx.Source, pos)
	if route >= len(idx.Params) {
		return 0, nil, false
	}

	return route, collectParams(path, matches, idx.Params[route], pos), true
}

// exec runs the combined pattern once. matches holds submatch index pairs.
func (idx *CombinedIndex) exec(path string) (matches []int, pos int, ok bool) {
	if idx == nil || len(idx.Params) == 0 || idx.re == nil {
		return nil, noSubPattern, false
	}

	matches = idx.re.FindStringSubmatchIndex(path)
	if matches == nil {
		return nil, noSubPattern, false
	}

	return matches, subPatternPosition(matches), true
}

// routeIndexByPath finds the route for a match that captured nothing.
// The first route without placeholders whose own expression matches is the
// one the alternation picked: an earlier route with placeholders would have
// captured something. Comparing trimmed text is not enough, since "/a.c"
// matches "/abc" ahead of a later "/abc".
func (idx *CombinedIndex) routeIndexByPath(path string) (int, bool) {
	for i, re := range idx.routeRes {
		if idx.Params[i] == nil && re.MatchString(path) {
			return i, true
		}
	}
	return 0, false
}

// subPatternPosition returns the leftmost capture group that took part in the
// match, or noSubPattern.
func subPatternPosition(matches []int) int {
	for i := 1; i < len(matches)/2; i++ {
		if matches[2*i] >= 0 {
			return i
		}
	}
	return noSubPattern
}

// routeIndexBySubPattern maps a capture group number back to a route ordinal
// by walking the combined source.
func routeIndexBySubPattern(source string, subPattern int) int {
	found := 0
	prefix := ""

	for i := 0; i < len(source)-1; i++ {
		if source[i] == consts.RuneOpenParen && source[i+1] != consts.RuneQuestion {
			found++
		}

		if found == subPattern {
			prefix = source[:i]
			break
		}
	}

	return strings.Count(prefix, consts.ReAlternation)
}

// collectParams pairs names with the captures starting at group first.
func collectParams(path string, matches []int, names []string, first int) Params {
	if names == nil {
		return nil
	}

	params := make(Params, 0, len(names))
	for k, name := range names {
		params = append(params, Parameter{Key: name, Value: captured(path, matches, first+k)})
	}
	return params
}

// captured returns the text of group, or "" if the group did not participate.
func captured(path string, matches []int, group int) string {
	if 2*group+1 >= len(matches) || matches[2*group] < 0 {
		return ""
	}
	return path[matches[2*group]:matches[2*group+1]]
}

// Digest hashes an ordered pattern list.
func Digest(patterns []string) uint64 {
	d := xxhash.New()
	for _, pattern := range patterns {
		_, _ = d.WriteString(pattern)
		_, _ = d.Write([]byte{0})
	}
	return d.Sum64()
}
