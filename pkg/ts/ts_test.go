package ts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const sample = `3 3
0
a b
0 t1 1
1 t2 2
2 t2 1
0 -1
-1 0
1 -1
`

func TestLoad(t *testing.T) {
	tsys, err := Load(strings.NewReader(sample))
	require.NoError(t, err)
	require.Len(t, tsys.Nodes, 3)
	require.Equal(t, []string{"a", "b"}, tsys.AP)

	require.True(t, tsys.Nodes[0].Initial)
	require.False(t, tsys.Nodes[1].Initial)
	require.False(t, tsys.Nodes[2].Initial)

	require.True(t, tsys.Nodes[0].AP["a"])
	require.False(t, tsys.Nodes[0].AP["b"])
	require.True(t, tsys.Nodes[1].AP["a"])
	require.False(t, tsys.Nodes[1].AP["b"])
	require.True(t, tsys.Nodes[2].AP["b"])
	require.False(t, tsys.Nodes[2].AP["a"])

	require.Equal(t, []int{1}, tsys.Successors(0))
	require.Equal(t, []int{2}, tsys.Successors(1))
	require.Equal(t, []int{1}, tsys.Successors(2))
}

func TestWithInitialDoesNotMutateOriginal(t *testing.T) {
	tsys, err := Load(strings.NewReader(sample))
	require.NoError(t, err)

	rerooted := tsys.WithInitial(2)
	require.True(t, rerooted.Nodes[2].Initial)
	require.False(t, rerooted.Nodes[0].Initial)

	// The original TS's initial flags must be untouched.
	require.True(t, tsys.Nodes[0].Initial)
	require.False(t, tsys.Nodes[2].Initial)
}

func TestLoadRejectsOutOfRangeAPIndex(t *testing.T) {
	bad := `1 0
0
a
5
`
	_, err := Load(strings.NewReader(bad))
	require.Error(t, err)
}

func TestLoadRejectsMalformedCounts(t *testing.T) {
	_, err := Load(strings.NewReader("not-a-number 0\n"))
	require.Error(t, err)
}

func TestLoadRejectsTooFewTransitionLines(t *testing.T) {
	bad := `1 1
0

`
	_, err := Load(strings.NewReader(bad))
	require.Error(t, err)
}
