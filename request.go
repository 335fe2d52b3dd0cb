package main

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
)

const (
	staticPrefix = "/static"
	statsPrefix  = "/stats"
	calcPrefix   = "/calc"
)

var ErrMalformedRequest = errors.New("malformed request line")

var knownMethods = map[string]bool{
	"GET":     true,
	"HEAD":    true,
	"POST":    true,
	"PUT":     true,
	"DELETE":  true,
	"PATCH":   true,
	"OPTIONS": true,
	"CONNECT": true,
	"TRACE":   true,
}

// Request is what the server keeps of a request: its first line only.
type Request struct {
	Method   string
	Path     string
	Query    string
	HasQuery bool
}

// parseRequestLine reads METHOD SP TARGET SP from the first line of raw.
// The target is split on its first '?'; nothing is decoded or cleaned.
func parseRequestLine(raw []byte) (Request, error) {
	line := raw
	if i := bytes.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}

	method, rest, ok := strings.Cut(string(line), " ")
	if !ok || !knownMethods[method] {
		return Request{}, fmt.Errorf("%w: unknown method %q", ErrMalformedRequest, method)
	}

	target, _, ok := strings.Cut(rest, " ")
	if !ok || target == "" {
		return Request{}, fmt.Errorf("%w: no request target", ErrMalformedRequest)
	}

	req := Request{Method: method}
	req.Path, req.Query, req.HasQuery = strings.Cut(target, "?")
	return req, nil
}

type routeKind int

const (
	routeNotFound routeKind = iota
	routeStatic
	routeStats
	routeCalc
)

func (k routeKind) String() string {
	switch k {
	case routeStatic:
		return "static"
	case routeStats:
		return "stats"
	case routeCalc:
		return "calc"
	default:
		return "not-found"
	}
}

type routeMatch struct {
	kind routeKind
	arg  string // path remainder for static, query for calc
}

// classify picks a handler by literal prefix, so /staticfoo is a static route.
func classify(req Request) routeMatch {
	switch {
	case strings.HasPrefix(req.Path, staticPrefix):
		return routeMatch{kind: routeStatic, arg: strings.TrimPrefix(req.Path, staticPrefix)}
	case strings.HasPrefix(req.Path, statsPrefix):
		return routeMatch{kind: routeStats}
	case strings.HasPrefix(req.Path, calcPrefix):
		if !req.HasQuery {
			return routeMatch{kind: routeNotFound}
		}
		return routeMatch{kind: routeCalc, arg: req.Query}
	default:
		return routeMatch{kind: routeNotFound}
	}
}
