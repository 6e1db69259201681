package rtr

// RouteList describes a registered route for debugging and inspection.
//
// Fields:
//
//	Pattern:    the pattern as registered (e.g. "/users/{id:\d+}")
//	Source:     the regular expression it compiles to
//	Params:     placeholder names, nil when there are none
//	HandlerRef: string form of the handler
type RouteList struct {
	Pattern    string
	Source     string
	Params     []string
	HandlerRef string
}
