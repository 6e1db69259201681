package rtr

import (
	"fmt"
	"sync"

	"go.uber.org/atomic"
	"go.uber.org/zap"
)

// RegexRouter matches paths against an ordered list of route patterns.
// Registration order is the tie-break: the first matching route wins.
//
// The combined index is built lazily on the first match after a registration
// and cached until the route list changes. A RegexRouter is safe for concurrent use.
type RegexRouter[T any] struct {
	mu       sync.RWMutex
	routes   []Route[T]
	version  atomic.Uint64
	cache    indexCache[T]
	strategy Strategy
	logger   *zap.Logger
}

// Option configures a RegexRouter.
type Option func(*routerOptions)

type routerOptions struct {
	strategy Strategy
	logger   *zap.Logger
}

// WithStrategy selects the strategy used by Match. The default is StrategyOffsets.
func WithStrategy(s Strategy) Option {
	return func(o *routerOptions) {
		o.strategy = s
	}
}

// WithLogger sets the logger for index rebuilds. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(o *routerOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// NewRegexRouter creates an empty router.
func NewRegexRouter[T any](opts ...Option) *RegexRouter[T] {
	o := routerOptions{
		strategy: StrategyOffsets,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	return &RegexRouter[T]{
		strategy: o.strategy,
		logger:   o.logger,
	}
}

// SetRoutes replaces the route list. Every pattern is compiled first; on error
// the current list is left untouched.
func (router *RegexRouter[T]) SetRoutes(routes ...Route[T]) error {
	for _, route := range routes {
		if _, _, err := compileRegexp(route.Pattern); err != nil {
			return err
		}
	}

	list := make([]Route[T], len(routes))
	copy(list, routes)

	router.mu.Lock()
	router.routes = list
	router.version.Inc()
	router.mu.Unlock()
	return nil
}

// Add appends a route after the already registered ones.
func (router *RegexRouter[T]) Add(pattern string, handler T) error {
	if _, _, err := compileRegexp(pattern); err != nil {
		return err
	}

	router.mu.Lock()
	router.routes = append(router.routes, Route[T]{Pattern: pattern, Handler: handler})
	router.version.Inc()
	router.mu.Unlock()
	return nil
}

// MustAdd is like Add but panics when the pattern does not compile.
func (router *RegexRouter[T]) MustAdd(pattern string, handler T) {
	if err := router.Add(pattern, handler); err != nil {
		panic(fmt.Sprintf("invalid route pattern %q: %v", pattern, err))
	}
}

// Len returns the number of registered routes.
func (router *RegexRouter[T]) Len() int {
	router.mu.RLock()
	defer router.mu.RUnlock()
	return len(router.routes)
}

// Match finds the first route matching path using the configured strategy.
// It returns nil when nothing matches.
func (router *RegexRouter[T]) Match(path string) *MatchResult[T] {
	switch router.strategy {
	case StrategyScan:
		return router.MatchScan(path)
	case StrategySequential:
		return router.MatchInOrder(path)
	default:
		entry := router.index()
		if entry == nil {
			return nil
		}
		route, params, ok := entry.index.Resolve(path)
		return resolved(entry.routes, route, params, ok)
	}
}

// MatchScan matches path with the combined pattern and recovers the route by
// scanning the combined source text.
func (router *RegexRouter[T]) MatchScan(path string) *MatchResult[T] {
	entry := router.index()
	if entry == nil {
		return nil
	}
	route, params, ok := entry.index.ResolveScan(path)
	return resolved(entry.routes, route, params, ok)
}

// MatchInOrder tries each route on its own, in registration order.
func (router *RegexRouter[T]) MatchInOrder(path string) *MatchResult[T] {
	router.mu.RLock()
	routes := router.routes
	router.mu.RUnlock()

	res, err := MatchInOrder(routes, path)
	if err != nil {
		// patterns are compiled on registration, so this is not expected
		router.log().Error("sequential match failed", zap.String("path", path), zap.Error(err))
		return nil
	}
	return res
}

// Index returns the combined index for the current route list, or nil if no
// routes are registered.
func (router *RegexRouter[T]) Index() *CombinedIndex {
	entry := router.index()
	if entry == nil {
		return nil
	}
	return entry.index
}

// ListRoutes describes the registered routes in order.
func (router *RegexRouter[T]) ListRoutes() (routes []RouteList) {
	router.mu.RLock()
	defer router.mu.RUnlock()

	for _, route := range router.routes {
		parsed := Compile(route.Pattern)
		routes = append(routes, RouteList{
			Pattern:    route.Pattern,
			Source:     parsed.Source,
			Params:     parsed.Params,
			HandlerRef: fmt.Sprintf("%v", route.Handler),
		})
	}
	return
}

// log returns the router's logger; a zero RegexRouter logs nothing.
func (router *RegexRouter[T]) log() *zap.Logger {
	if router.logger == nil {
		return zap.NewNop()
	}
	return router.logger
}

// index returns the cached index entry, rebuilding it if the routes changed.
func (router *RegexRouter[T]) index() *indexEntry[T] {
	if entry, ok := router.cache.get(router.version.Load()); ok {
		return entry
	}

	router.mu.RLock()
	version := router.version.Load()
	routes := router.routes
	router.mu.RUnlock()

	if len(routes) == 0 {
		return nil
	}

	patterns := make([]string, len(routes))
	for i, route := range routes {
		patterns[i] = route.Pattern
	}

	entry := &indexEntry[T]{version: version, routes: routes}

	if idx, ok := router.cache.reuse(patterns); ok {
		entry.index = idx
		router.log().Debug("route index reused",
			zap.Uint64("version", version), zap.Uint64("digest", idx.Digest))
	} else {
		idx, err := CombinePatterns(patterns)
		if err != nil {
			router.log().Error("route index build failed", zap.Uint64("version", version), zap.Error(err))
			return nil
		}
		entry.index = idx
		router.log().Debug("route index built",
			zap.Uint64("version", version), zap.Int("routes", idx.Len()), zap.Uint64("digest", idx.Digest))
	}

	router.cache.put(entry)
	return entry
}
