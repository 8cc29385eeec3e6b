package builder_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/fourd/builder"
)

func TestParseGenerator(t *testing.T) {
	tests := []struct {
		spec         string
		wantV, wantE int
	}{
		{"complete:4", 4, 6},
		{"cycle:7", 7, 7},
		{"path:3", 3, 2},
		{"star:5", 5, 4},
		{"wheel:5", 5, 8},
		{"grid:2x3", 6, 7},
		{"bipartite:2x2", 4, 4},
		{"sparse:5:1", 5, 10},
		{"regular:6:2", 6, 6},
		{"platonic:octahedron", 6, 12},
		{"Platonic:Tetrahedron:center", 5, 10},
	}
	for _, tc := range tests {
		t.Run(tc.spec, func(t *testing.T) {
			ctor, err := builder.ParseGenerator(tc.spec)
			require.NoError(t, err)
			r := &recorder{}
			ids, err := builder.Build(r, []builder.BuilderOption{builder.WithSeed(2)}, ctor)
			require.NoError(t, err)
			assert.Len(t, ids, tc.wantV)
			assert.Len(t, r.edges, tc.wantE)
		})
	}
}

func TestParseGenerator_Errors(t *testing.T) {
	for _, spec := range []string{
		"", "hexagon:3", "cycle", "cycle:x", "grid:3", "grid:3by4",
		"sparse:4", "sparse:4:p", "regular:4:x", "platonic", "platonic:sphere",
		"platonic:cube:hub",
	} {
		_, err := builder.ParseGenerator(spec)
		assert.ErrorIs(t, err, builder.ErrOptionViolation, spec)
	}

	// well-formed but out of range: reported by the constructor
	ctor, err := builder.ParseGenerator("cycle:2")
	require.NoError(t, err)
	_, err = builder.Build(&recorder{}, nil, ctor)
	assert.ErrorIs(t, err, builder.ErrTooFewVertices)
}
