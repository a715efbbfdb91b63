package router

import (
	"fmt"
	"strings"
)

// WildcardKey is the reserved capture key for the path remainder matched
// by a trailing wildcard.
const WildcardKey = "*"

// Pattern is a compiled path template. Templates consist of literal
// segments, named parameters, and an optional trailing wildcard:
//
//	/users/:id
//	/assets/*
//	/orgs/:org/repos/:repo
//
// A named segment matches exactly one path segment and captures it under
// its name. The wildcard matches the remainder of the path (zero or more
// segments) and captures it under WildcardKey. Patterns are immutable
// once compiled and safe for concurrent matching.
type Pattern struct {
	raw      string
	segments []segment
	wildcard bool
}

// segment is a single compiled pattern segment. Exactly one field is set.
type segment struct {
	literal string
	param   string
}

// ParsePattern compiles a path template. The template must start with "/",
// a wildcard may only appear as the final segment, and parameter names
// must be unique within the template.
func ParsePattern(raw string) (*Pattern, error) {
	if len(raw) == 0 || raw[0] != '/' {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPattern, raw)
	}

	p := &Pattern{raw: raw}
	parts := strings.Split(raw[1:], "/")

	// A bare "/" compiles to zero segments.
	if len(parts) == 1 && parts[0] == "" {
		return p, nil
	}

	seen := make(map[string]struct{}, len(parts))
	for i, part := range parts {
		switch {
		case part == WildcardKey:
			if i != len(parts)-1 {
				return nil, fmt.Errorf("%w: %q", ErrWildcardPosition, raw)
			}
			p.wildcard = true
		case strings.HasPrefix(part, ":"):
			name := part[1:]
			if name == "" {
				return nil, fmt.Errorf("%w: empty parameter name in %q", ErrInvalidPattern, raw)
			}
			if _, ok := seen[name]; ok {
				return nil, fmt.Errorf("%w: %q in %q", ErrDuplicateParam, name, raw)
			}
			seen[name] = struct{}{}
			p.segments = append(p.segments, segment{param: name})
		default:
			p.segments = append(p.segments, segment{literal: part})
		}
	}

	return p, nil
}

// MustPattern compiles a template and panics on error. Intended for
// startup-time route declarations.
func MustPattern(raw string) *Pattern {
	p, err := ParsePattern(raw)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the original template.
func (p *Pattern) String() string {
	return p.raw
}

// Match tests a request path against the pattern. On success it returns
// the capture set: parameter names mapped to the segments they matched,
// plus the wildcard remainder under WildcardKey when the pattern ends in
// a wildcard. Matching is case-sensitive and structural: every literal
// must match exactly and no prefix match is accepted unless the pattern
// is wildcard-terminated. The returned map is freshly allocated per match
// and never shared.
func (p *Pattern) Match(path string) (map[string]string, bool) {
	if len(path) == 0 || path[0] != '/' {
		return nil, false
	}

	parts := strings.Split(path[1:], "/")
	// "/" yields a single empty part, meaning zero path segments.
	if len(parts) == 1 && parts[0] == "" {
		parts = nil
	}

	if p.wildcard {
		if len(parts) < len(p.segments) {
			return nil, false
		}
	} else if len(parts) != len(p.segments) {
		return nil, false
	}

	var captures map[string]string
	for i, seg := range p.segments {
		part := parts[i]
		if seg.param != "" {
			// A named segment matches exactly one non-empty segment.
			if part == "" {
				return nil, false
			}
			if captures == nil {
				captures = make(map[string]string, len(p.segments)+1)
			}
			captures[seg.param] = part
		} else if seg.literal != part {
			return nil, false
		}
	}

	if p.wildcard {
		if captures == nil {
			captures = make(map[string]string, 1)
		}
		captures[WildcardKey] = strings.Join(parts[len(p.segments):], "/")
	}

	return captures, true
}
