package rtr

// Parameter represents a value captured by a placeholder in a route pattern.
//
// Example:
//
//	Route:  /user/{id}/posts/{postId:\d+}
//	Path:   /user/ada/posts/456
//	Result: Params{{Key: "id", Value: "ada"}, {Key: "postId", Value: "456"}}
type Parameter struct {
	Key   string
	Value string
}

// Params is the ordered list of parameters of a matched route.
// Order follows the left-to-right appearance of the placeholders in the pattern.
// A nil Params means the matched route has no placeholders at all.
type Params []Parameter

// Get returns the value of the named parameter and whether it was present.
func (p Params) Get(key string) (string, bool) {
	for _, param := range p {
		if param.Key == key {
			return param.Value, true
		}
	}
	return "", false
}

// Map copies the parameters into a map. A nil Params yields a nil map.
func (p Params) Map() map[string]string {
	if p == nil {
		return nil
	}

	m := make(map[string]string, len(p))
	for _, param := range p {
		m[param.Key] = param.Value
	}
	return m
}
