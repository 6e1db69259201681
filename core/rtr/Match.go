package rtr

// Route is a pattern with the handler returned when it matches.
// The handler is never inspected.
type Route[T any] struct {
	Pattern string
	Handler T
}

// MatchResult is the outcome of a successful match.
// A nil *MatchResult means no route matched.
type MatchResult[T any] struct {
	Handler T
	// Params is nil when the matched route has no placeholders.
	Params Params
}

// Match combines routes into one expression, runs it once against path and
// maps the match back to its route by scanning the combined source.
// It returns nil when no route matches, including for an empty route list.
// An error is returned only when a constraint is not a valid regular expression.
func Match[T any](routes []Route[T], path string) (*MatchResult[T], error) {
	if len(routes) == 0 {
		return nil, nil
	}

	idx, err := Combine(routes)
	if err != nil {
		return nil, err
	}

	route, params, ok := idx.ResolveScan(path)
	return resolved(routes, route, params, ok), nil
}

// MatchInOrder tries each route's own expression in order and stops at the
// first match. It needs no reverse mapping, so it also serves as the reference
// for Match.
func MatchInOrder[T any](routes []Route[T], path string) (*MatchResult[T], error) {
	for _, route := range routes {
		parsed, re, err := compileRegexp(route.Pattern)
		if err != nil {
			return nil, err
		}

		matches := re.FindStringSubmatchIndex(path)
		if matches == nil {
			continue // no match
		}

		var params Params
		if parsed.Params != nil {
			params = make(Params, 0, len(parsed.Params))

			for x := 1; x < len(matches)/2 && x <= len(parsed.Params); x++ {
				if matches[2*x] >= 0 {
					params = append(params, Parameter{
						Key:   parsed.Params[x-1],
						Value: path[matches[2*x]:matches[2*x+1]],
					})
				}
			}
		}

		return &MatchResult[T]{
			Handler: route.Handler,
			Params:  params,
		}, nil
	}

	return nil, nil
}

// resolved turns a resolved ordinal into a result for routes.
func resolved[T any](routes []Route[T], route int, params Params, ok bool) *MatchResult[T] {
	if !ok || route < 0 || route >= len(routes) {
		return nil
	}

	return &MatchResult[T]{
		Handler: routes[route].Handler,
		Params:  params,
	}
}
