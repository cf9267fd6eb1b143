// Package httppattern parses the route patterns understood by net/http's ServeMux and builds concrete paths
// from them.
package httppattern

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Segment is one slash-separated piece of a pattern path.
type Segment struct {
	Literal  string // set when the segment is not a wildcard
	Wildcard string // name of the wildcard, empty for literals and {$}
	Multi    bool   // {name...}
	End      bool   // {$}
}

// Pattern is a parsed route pattern.
type Pattern struct {
	Method   string
	Host     string
	Segments []Segment
	Str      string
}

// Wildcards returns the wildcard names in order of appearance.
func (p *Pattern) Wildcards() []string {
	var names []string
	for _, s := range p.Segments {
		if s.Wildcard != "" {
			names = append(names, s.Wildcard)
		}
	}
	return names
}

// ParsePattern parses 's' which has the form "[METHOD ][HOST]/[PATH]".
func ParsePattern(s string) (*Pattern, error) {
	if s == "" {
		return nil, errors.New("empty pattern")
	}

	p := &Pattern{Str: s}
	rest := s
	if method, after, found := strings.Cut(s, " "); found {
		p.Method = method
		rest = strings.TrimLeft(after, " \t")
	}

	i := strings.IndexByte(rest, '/')
	if i < 0 {
		return nil, fmt.Errorf("host/path missing /: %q", s)
	}
	p.Host, rest = rest[:i], rest[i+1:]

	seen := map[string]bool{}
	segs := strings.Split(rest, "/")
	for idx, seg := range segs {
		last := idx == len(segs)-1
		if !strings.HasPrefix(seg, "{") {
			if strings.ContainsAny(seg, "{}") {
				return nil, fmt.Errorf("bad wildcard segment %q in %q", seg, s)
			}
			p.Segments = append(p.Segments, Segment{Literal: seg})
			continue
		}

		if !strings.HasSuffix(seg, "}") {
			return nil, fmt.Errorf("bad wildcard segment %q in %q", seg, s)
		}

		name := seg[1 : len(seg)-1]
		switch {
		case name == "$":
			if !last {
				return nil, fmt.Errorf("{$} not at end of %q", s)
			}
			p.Segments = append(p.Segments, Segment{End: true})
			continue
		case strings.HasSuffix(name, "..."):
			if !last {
				return nil, fmt.Errorf("{...} wildcard not at end of %q", s)
			}
			name = strings.TrimSuffix(name, "...")
			if name == "" {
				return nil, fmt.Errorf("empty wildcard in %q", s)
			}
			p.Segments = append(p.Segments, Segment{Wildcard: name, Multi: true})
		case name == "":
			return nil, fmt.Errorf("empty wildcard in %q", s)
		default:
			p.Segments = append(p.Segments, Segment{Wildcard: name})
		}

		if seen[name] {
			return nil, fmt.Errorf("duplicate wildcard name %q in %q", name, s)
		}
		seen[name] = true
	}

	return p, nil
}

// Build substitutes 'vals' for the wildcards of 'p', in order, and returns the resulting path.
func Build(p *Pattern, vals ...string) (string, error) {
	need := len(p.Wildcards())
	if len(vals) < need {
		return "", fmt.Errorf("not enough values: pattern %q needs %d, got %d", p.Str, need, len(vals))
	}
	if len(vals) > need {
		return "", fmt.Errorf("too many values: pattern %q needs %d, got %d", p.Str, need, len(vals))
	}

	var b strings.Builder
	next := 0
	for _, seg := range p.Segments {
		b.WriteByte('/')
		switch {
		case seg.End:
		case seg.Multi:
			b.WriteString(vals[next])
			next++
		case seg.Wildcard != "":
			b.WriteString(url.PathEscape(vals[next]))
			next++
		default:
			b.WriteString(seg.Literal)
		}
	}

	return b.String(), nil
}
