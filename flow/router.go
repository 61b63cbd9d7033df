package flow

import (
	"regexp"
	"strings"
)

// Handler processes one matched event and produces the next screen.
type Handler = StepFunc

type routeKind int

const (
	routeLiteral routeKind = iota
	routePrefix
	routePattern
)

type route struct {
	kind    routeKind
	literal string
	prefix  string
	re      *regexp.Regexp
	handler Handler
}

// Router is the per-dialog table mapping callback triggers to handlers.
// Dispatch precedence is declarative: literal entries always try before
// prefix/pattern entries; within each class registration order decides,
// first match wins. Routers are never shared across dialogs, so the same
// literal may mean different things in different dialogs.
type Router struct {
	literals []route
	patterns []route
}

// NewRouter constructs an empty router.
func NewRouter() *Router {
	return &Router{}
}

// Handle registers an exact-match trigger.
func (r *Router) Handle(trigger string, h Handler) {
	if trigger == "" || h == nil {
		return
	}
	r.literals = append(r.literals, route{kind: routeLiteral, literal: trigger, handler: h})
}

// HandlePrefix registers a handler for every trigger starting with prefix.
func (r *Router) HandlePrefix(prefix string, h Handler) {
	if prefix == "" || h == nil {
		return
	}
	r.patterns = append(r.patterns, route{kind: routePrefix, prefix: prefix, handler: h})
}

// HandleMatch registers a regexp-matched handler.
func (r *Router) HandleMatch(re *regexp.Regexp, h Handler) {
	if re == nil || h == nil {
		return
	}
	r.patterns = append(r.patterns, route{kind: routePattern, re: re, handler: h})
}

// Dispatch resolves a trigger to its handler. A miss is not an error:
// unmatched triggers are stale or duplicate button presses and the caller
// acknowledges them silently.
func (r *Router) Dispatch(trigger string) (Handler, bool) {
	for _, rt := range r.literals {
		if rt.literal == trigger {
			return rt.handler, true
		}
	}
	for _, rt := range r.patterns {
		switch rt.kind {
		case routePrefix:
			if strings.HasPrefix(trigger, rt.prefix) {
				return rt.handler, true
			}
		case routePattern:
			if rt.re.MatchString(trigger) {
				return rt.handler, true
			}
		}
	}
	return nil, false
}

// Len reports the number of registered routes.
func (r *Router) Len() int {
	return len(r.literals) + len(r.patterns)
}
