package rtr_test

import (
	"testing"

	"github.com/rohanthewiz/assert"
	"github.com/rohanthewiz/rxroute/core/rtr"
	"github.com/rohanthewiz/rxroute/core/rtr/testdata"
)

type matcher struct {
	name  string
	match func(t *testing.T, routes []rtr.Route[string], path string) *rtr.MatchResult[string]
}

// matchers runs every strategy through the same cases. They must always agree.
var matchers = []matcher{
	{"scan", func(t *testing.T, routes []rtr.Route[string], path string) *rtr.MatchResult[string] {
		res, err := rtr.Match(routes, path)
		assert.Nil(t, err)
		return res
	}},
	{"sequential", func(t *testing.T, routes []rtr.Route[string], path string) *rtr.MatchResult[string] {
		res, err := rtr.MatchInOrder(routes, path)
		assert.Nil(t, err)
		return res
	}},
	{"offsets", func(t *testing.T, routes []rtr.Route[string], path string) *rtr.MatchResult[string] {
		if len(routes) == 0 {
			return nil
		}
		idx, err := rtr.Combine(routes)
		assert.Nil(t, err)

		route, params, ok := idx.Resolve(path)
		if !ok {
			return nil
		}
		return &rtr.MatchResult[string]{Handler: routes[route].Handler, Params: params}
	}},
}

func expectMatch(t *testing.T, routes []rtr.Route[string], path string, handler string, params rtr.Params) {
	t.Helper()

	for _, m := range matchers {
		res := m.match(t, routes, path)
		if res == nil {
			t.Fatalf("%s: %q did not match, expected %q", m.name, path, handler)
		}
		assert.Equal(t, res.Handler, handler)
		assert.DeepEqual(t, res.Params, params)
	}
}

func expectNoMatch(t *testing.T, routes []rtr.Route[string], path string) {
	t.Helper()

	for _, m := range matchers {
		if res := m.match(t, routes, path); res != nil {
			t.Fatalf("%s: %q matched %q, expected no match", m.name, path, res.Handler)
		}
	}
}

func TestMatchSample(t *testing.T) {
	routes := sampleRoutes()

	expectMatch(t, routes, "/", "Front page", nil)
	expectMatch(t, routes, "/user/123", "User", rtr.Params{{Key: "uid", Value: "123"}})
	expectMatch(t, routes, "/posts/10", "Post", rtr.Params{{Key: "id", Value: "10"}})
	expectNoMatch(t, routes, "/posts/10/comments")
}

func TestMatchStatic(t *testing.T) {
	routes := []rtr.Route[string]{
		{Pattern: "/hello", Handler: "Hello"},
		{Pattern: "/world", Handler: "World"},
	}

	expectMatch(t, routes, "/hello", "Hello", nil)
	expectMatch(t, routes, "/world", "World", nil)

	notFound := []string{
		"",
		"?",
		"/404",
		"/hell",
		"/hall",
		"/helloo",
		"/hello/world",
	}

	for _, path := range notFound {
		expectNoMatch(t, routes, path)
	}
}

func TestMatchTrailingSeparator(t *testing.T) {
	routes := []rtr.Route[string]{
		{Pattern: "/about", Handler: "About"},
	}

	expectMatch(t, routes, "/about", "About", nil)
	expectMatch(t, routes, "/about/", "About", nil)
	expectNoMatch(t, routes, "/about/team")
	expectNoMatch(t, routes, "about")
}

func TestMatchConstraint(t *testing.T) {
	routes := []rtr.Route[string]{
		{Pattern: `/home/{uid:\d+}`, Handler: "Home"},
	}

	expectMatch(t, routes, "/home/42", "Home", rtr.Params{{Key: "uid", Value: "42"}})
	expectNoMatch(t, routes, "/home/abc")
}

func TestMatchTwoParameters(t *testing.T) {
	routes := []rtr.Route[string]{
		{Pattern: "/home", Handler: "Home"},
		{Pattern: "/home/{uid}/{page}", Handler: "Page"},
	}

	expectMatch(t, routes, "/home/5/profile", "Page", rtr.Params{
		{Key: "uid", Value: "5"},
		{Key: "page", Value: "profile"},
	})
}

func TestMatchDefaultPlaceholderIsWordCharacters(t *testing.T) {
	routes := []rtr.Route[string]{
		{Pattern: "/blog/{post}", Handler: "Blog post"},
		{Pattern: "/blog/{post}/comments/{id}", Handler: "Comment"},
	}

	expectMatch(t, routes, "/blog/hello_world", "Blog post", rtr.Params{{Key: "post", Value: "hello_world"}})
	expectMatch(t, routes, "/blog/hello_world/comments/123", "Comment", rtr.Params{
		{Key: "post", Value: "hello_world"},
		{Key: "id", Value: "123"},
	})
	expectNoMatch(t, routes, "/blog/hello-world")
}

func TestMatchCustomConstraintWidensCapture(t *testing.T) {
	routes := []rtr.Route[string]{
		{Pattern: "/blog/{post:[a-z-]+}", Handler: "Blog post"},
	}

	expectMatch(t, routes, "/blog/hello-world", "Blog post", rtr.Params{{Key: "post", Value: "hello-world"}})
}

func TestMatchRegistrationOrderWins(t *testing.T) {
	paramFirst := []rtr.Route[string]{
		{Pattern: "/users/{id}", Handler: "User"},
		{Pattern: "/users/me", Handler: "Me"},
	}
	expectMatch(t, paramFirst, "/users/me", "User", rtr.Params{{Key: "id", Value: "me"}})

	literalFirst := []rtr.Route[string]{
		{Pattern: "/users/me", Handler: "Me"},
		{Pattern: "/users/{id}", Handler: "User"},
	}
	expectMatch(t, literalFirst, "/users/me", "Me", nil)
	expectMatch(t, literalFirst, "/users/42", "User", rtr.Params{{Key: "id", Value: "42"}})
}

func TestMatchDuplicateRoutesFirstRegisteredWins(t *testing.T) {
	routes := []rtr.Route[string]{
		{Pattern: "/about", Handler: "First"},
		{Pattern: "about/", Handler: "Second"},
		{Pattern: "/team/{name}", Handler: "Team one"},
		{Pattern: "/team/{name}/", Handler: "Team two"},
	}

	expectMatch(t, routes, "/about", "First", nil)
	expectMatch(t, routes, "/about/", "First", nil)
	expectMatch(t, routes, "/team/ops", "Team one", rtr.Params{{Key: "name", Value: "ops"}})
}

// Literal routes containing regexp metacharacters match more than their text.
// The matched route must still be the one the sequential matcher picks.
func TestMatchLiteralWithMetacharacter(t *testing.T) {
	routes := []rtr.Route[string]{
		{Pattern: "/v{major}", Handler: "Version"},
		{Pattern: "/v1.0/status", Handler: "Status"},
	}

	expectMatch(t, routes, "/v1.0/status", "Status", nil)
	expectMatch(t, routes, "/v1x0/status", "Status", nil)
	expectMatch(t, routes, "/v2", "Version", rtr.Params{{Key: "major", Value: "2"}})
}

// An earlier literal route matched through a metacharacter wins over a later
// route whose text equals the path.
func TestMatchMetacharacterLiteralBeforeExactLiteral(t *testing.T) {
	routes := []rtr.Route[string]{
		{Pattern: "/a.c", Handler: "Dot"},
		{Pattern: "/abc", Handler: "Abc"},
	}

	expectMatch(t, routes, "/abc", "Dot", nil)
	expectMatch(t, routes, "/abc/", "Dot", nil)
	expectMatch(t, routes, "/a.c", "Dot", nil)

	r := rtr.NewRegexRouter[string]()
	assert.Nil(t, r.SetRoutes(routes...))
	assert.Equal(t, r.Match("/abc").Handler, "Dot")
	assert.Equal(t, r.MatchScan("/abc").Handler, "Dot")
}

func TestMatchEmptyRouteList(t *testing.T) {
	expectNoMatch(t, nil, "/")
	expectNoMatch(t, nil, "")
	expectNoMatch(t, []rtr.Route[string]{}, "/anything")
}

func TestMatchIdempotent(t *testing.T) {
	routes := sampleRoutes()

	first, err := rtr.Match(routes, "/user/123")
	assert.Nil(t, err)
	second, err := rtr.Match(routes, "/user/123")
	assert.Nil(t, err)

	assert.Equal(t, first.Handler, second.Handler)
	assert.DeepEqual(t, first.Params, second.Params)
}

func TestMatchInvalidConstraint(t *testing.T) {
	routes := []rtr.Route[string]{
		{Pattern: `/bad/{id:\d+[}`, Handler: "Bad"},
	}

	_, err := rtr.Match(routes, "/bad/1")
	assert.True(t, err != nil)

	_, err = rtr.MatchInOrder(routes, "/bad/1")
	assert.True(t, err != nil)
}

func TestMatchStrategiesAgreeOnGitHubRoutes(t *testing.T) {
	var routes []rtr.Route[string]
	for _, route := range testdata.Routes("testdata/github.txt") {
		routes = append(routes, rtr.Route[string]{Pattern: route.Pattern, Handler: route.Pattern})
	}
	assert.True(t, len(routes) > 50)

	paths := []string{
		"/",
		"/user",
		"/users",
		"/users/ada",
		"/users/ada/repos",
		"/users/ada/events/orgs/golang",
		"/user/starred/golang/go",
		"/repos/golang/go",
		"/repos/golang/go/issues/42",
		"/repos/golang/go/issues/x",
		"/repos/golang/go/issues/42/comments",
		"/repos/golang/go/pulls/7/merge",
		"/repos/a-b/c",
		"/gists/12",
		"/gists/abc",
		"/gists/abc/star",
		"/search/code",
		"/rate_limit/",
		"/nope/x",
	}

	for _, path := range paths {
		reference, err := rtr.MatchInOrder(routes, path)
		assert.Nil(t, err)

		for _, m := range matchers {
			res := m.match(t, routes, path)
			if reference == nil {
				assert.True(t, res == nil)
				continue
			}
			if res == nil {
				t.Fatalf("%s: %q did not match, expected %q", m.name, path, reference.Handler)
			}
			assert.Equal(t, res.Handler, reference.Handler)
			assert.DeepEqual(t, res.Params, reference.Params)
		}
	}

	res, err := rtr.Match(routes, "/repos/golang/go/issues/42")
	assert.Nil(t, err)
	assert.Equal(t, res.Handler, `/repos/{owner}/{repo}/issues/{number:\d+}`)
	assert.DeepEqual(t, res.Params.Map(), map[string]string{"owner": "golang", "repo": "go", "number": "42"})
}

func TestParamsAccessors(t *testing.T) {
	params := rtr.Params{{Key: "uid", Value: "5"}, {Key: "page", Value: "profile"}}

	value, ok := params.Get("page")
	assert.True(t, ok)
	assert.Equal(t, value, "profile")

	_, ok = params.Get("missing")
	assert.False(t, ok)

	var none rtr.Params
	assert.True(t, none.Map() == nil)
}
