// Package normalize validates and canonicalizes route declarations before
// tree construction. It is a pure function: same input, same output, and the
// first invalid declaration aborts the whole set.
package normalize

import (
	"fmt"
	"strings"

	"github.com/agsys/routeplan/internal/model"
)

// Rule identifies the validation rule a declaration violated.
type Rule string

const (
	EmptyServiceName     Rule = "empty_service_name"
	DuplicateServiceName Rule = "duplicate_service_name"
	ReservedSegment      Rule = "reserved_segment"
	TimeoutOutOfRange    Rule = "timeout_out_of_range"
	InvalidThrottle      Rule = "invalid_throttle"
)

// Error names the offending service and the violated rule. It is surfaced
// verbatim to the operator; nothing upstream wraps or retries it.
type Error struct {
	Service string
	Rule    Rule
}

func (e *Error) Error() string {
	if e.Service == "" {
		return fmt.Sprintf("declaration invalid: %s", e.Rule)
	}
	return fmt.Sprintf("declaration %q invalid: %s", e.Service, e.Rule)
}

// Normalize canonicalizes declarations in order, failing fast on the first
// invalid one. Normalizing already-normalized input returns it unchanged.
func Normalize(decls []model.Declaration) ([]model.Declaration, error) {
	out := make([]model.Declaration, 0, len(decls))
	seen := make(map[string]struct{}, len(decls))

	for _, d := range decls {
		d.Service = strings.TrimSpace(d.Service)
		if d.Service == "" {
			return nil, &Error{Service: d.Service, Rule: EmptyServiceName}
		}
		if _, dup := seen[d.Service]; dup {
			return nil, &Error{Service: d.Service, Rule: DuplicateServiceName}
		}
		seen[d.Service] = struct{}{}

		if strings.Contains(d.PathPrefix, model.WildcardSegment) {
			return nil, &Error{Service: d.Service, Rule: ReservedSegment}
		}
		d.PathPrefix = canonicalPrefix(d.PathPrefix)

		switch {
		case d.TimeoutMillis == 0:
			d.TimeoutMillis = model.DefaultTimeoutMillis
		case d.TimeoutMillis < model.MinTimeoutMillis || d.TimeoutMillis > model.MaxTimeoutMillis:
			return nil, &Error{Service: d.Service, Rule: TimeoutOutOfRange}
		}

		if d.Throttle != nil && (d.Throttle.Rate <= 0 || d.Throttle.Burst <= 0) {
			return nil, &Error{Service: d.Service, Rule: InvalidThrottle}
		}

		if d.Method == "" {
			d.Method = model.DefaultMethod
		}
		d.Method = strings.ToUpper(d.Method)
		if d.Auth == "" {
			d.Auth = model.AuthNone
		}

		// A root method only ever binds when the declaration claims the
		// root; on a prefixed declaration the flag is inert, so drop it
		// rather than carry a bit the builder ignores.
		if d.PathPrefix != "" {
			d.AllowRootMethod = false
		}

		out = append(out, d)
	}
	return out, nil
}

// canonicalPrefix strips leading/trailing separators and collapses empty
// interior segments, so "/web/", "web" and "/web" are the same prefix.
func canonicalPrefix(p string) string {
	parts := strings.Split(p, "/")
	segs := parts[:0]
	for _, s := range parts {
		if s = strings.TrimSpace(s); s != "" {
			segs = append(segs, s)
		}
	}
	return strings.Join(segs, "/")
}
