package grammar

import (
	"math"
	"os"

	"github.com/pkg/errors"

	"github.com/katalvlaran/fourd/builder"
	"github.com/katalvlaran/fourd/core"
)

var (
	// ErrSyntax wraps every lexing or parsing failure.
	ErrSyntax = errors.New("grammar: syntax error")
	// ErrUnknownAttribute indicates an edge attribute other than strength.
	ErrUnknownAttribute = errors.New("grammar: unknown attribute")
	// ErrBadAttribute indicates an attribute value out of range.
	ErrBadAttribute = errors.New("grammar: bad attribute value")
)

const attrStrength = "strength"

// Parse reads src; name is used in error positions only.
func Parse(name, src string) (*Document, error) {
	doc, err := parseDocument.ParseString(name, src)
	if err != nil {
		return nil, errors.Wrap(ErrSyntax, err.Error())
	}
	if err := doc.validate(); err != nil {
		return nil, err
	}
	return doc, nil
}

// ParseFile reads and parses the file at path.
func ParseFile(path string) (*Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "grammar: read %s", path)
	}
	return Parse(path, string(raw))
}

// validate checks attributes so that Apply only fails on target errors.
func (d *Document) validate() error {
	for _, st := range d.Statements {
		for _, l := range st.Links {
			for _, a := range l.Attrs {
				if a.Key != attrStrength {
					return errors.Wrapf(ErrUnknownAttribute, "%s: %q", a.Pos, a.Key)
				}
				if a.Value < 0 || math.IsInf(a.Value, 0) || math.IsNaN(a.Value) {
					return errors.Wrapf(ErrBadAttribute, "%s: %s=%g", a.Pos, a.Key, a.Value)
				}
			}
		}
	}
	return nil
}

// Vertices returns the distinct vertex names in order of first appearance.
func (d *Document) Vertices() []string {
	seen := make(map[string]struct{})
	var out []string
	add := func(name string) {
		if _, ok := seen[name]; !ok {
			seen[name] = struct{}{}
			out = append(out, name)
		}
	}
	for _, st := range d.Statements {
		add(st.From)
		for _, l := range st.Links {
			add(l.To)
		}
	}
	return out
}

// EdgeCount returns the number of edges Apply will emit.
func (d *Document) EdgeCount() int {
	n := 0
	for _, st := range d.Statements {
		n += len(st.Links)
	}
	return n
}

// Apply replays the document onto t and returns the id of every named vertex.
// Edges are added in source order; a failing edge aborts the replay with the
// error wrapped in its source position, leaving earlier additions in place.
//
// Errors: whatever t.AddEdge returns, e.g. core.ErrLoopNotAllowed for "a -- a".
func (d *Document) Apply(t builder.Target) (map[string]int, error) {
	ids := make(map[string]int)
	resolve := func(name string) int {
		id, ok := ids[name]
		if !ok {
			id = t.AddVertex()
			ids[name] = id
		}
		return id
	}

	for _, st := range d.Statements {
		prev, from := st.From, resolve(st.From)
		for _, l := range st.Links {
			to := resolve(l.To)
			if _, err := t.AddEdge(from, to, l.options()...); err != nil {
				return ids, errors.Wrapf(err, "%s: %s %s %s", l.Pos, prev, l.Op, l.To)
			}
			prev, from = l.To, to
		}
	}
	return ids, nil
}

func (l *Link) options() []core.EdgeOption {
	var opts []core.EdgeOption
	if l.Directed() {
		opts = append(opts, core.WithDirected(true))
	}
	for _, a := range l.Attrs {
		if a.Key == attrStrength {
			opts = append(opts, core.WithStrength(a.Value))
		}
	}
	return opts
}
