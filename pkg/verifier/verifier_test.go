package verifier

import (
	"strings"
	"testing"

	"github.com/corvid-labs/tableau/pkg/ts"
	"github.com/stretchr/testify/require"
)

func mustLoadTS(t *testing.T, src string) *ts.TS {
	t.Helper()
	tsys, err := ts.Load(strings.NewReader(src))
	require.NoError(t, err)
	return tsys
}

// TestVerifyEndToEndScenarios exercises every scenario from section 8 of
// the system design.
func TestVerifyEndToEndScenarios(t *testing.T) {
	t.Run("tautology", func(t *testing.T) {
		// s0, no APs, self-loop, initial.
		src := "1 1\n0\na\n0 t 0\n-1\n"
		tsys := mustLoadTS(t, src)
		verdict, err := Verify(tsys, "G (a \\/ !a)")
		require.NoError(t, err)
		require.True(t, verdict)
	})

	t.Run("trivially violated", func(t *testing.T) {
		src := "1 1\n0\na\n0 t 0\n-1\n"
		tsys := mustLoadTS(t, src)
		verdict, err := Verify(tsys, "a")
		require.NoError(t, err)
		require.False(t, verdict)
	})

	t.Run("until satisfied", func(t *testing.T) {
		// s0 (initial, {a}) -> s1 ({b}) -> s1 self-loop.
		src := "2 2\n0\na b\n0 t 1\n1 t 1\n0\n1\n"
		tsys := mustLoadTS(t, src)
		verdict, err := Verify(tsys, "a U b")
		require.NoError(t, err)
		require.True(t, verdict)
	})

	t.Run("until violated", func(t *testing.T) {
		// s0 self-loops and never reaches s1.
		src := "2 2\n0\na b\n0 t 0\n1 t 1\n0\n1\n"
		tsys := mustLoadTS(t, src)
		verdict, err := Verify(tsys, "a U b")
		require.NoError(t, err)
		require.False(t, verdict)
	})

	t.Run("next", func(t *testing.T) {
		// s0 -> s1 -> s0; s0={a}, s1={}. Initial=s0.
		src := "2 2\n0\na\n0 t 1\n1 t 0\n0\n-1\n"
		tsys := mustLoadTS(t, src)

		verdict, err := Verify(tsys, "X !a")
		require.NoError(t, err)
		require.True(t, verdict)

		verdict, err = Verify(tsys, "X a")
		require.NoError(t, err)
		require.False(t, verdict)
	})

	t.Run("always eventually", func(t *testing.T) {
		// s0 ({a}) -> s1 ({}) -> s0. Initial=s0.
		src := "2 2\n0\na\n0 t 1\n1 t 0\n0\n-1\n"
		tsys := mustLoadTS(t, src)
		verdict, err := Verify(tsys, "G F a")
		require.NoError(t, err)
		require.True(t, verdict)
	})
}

func TestLoadQueryBatch(t *testing.T) {
	src := "2 1\nG (a \\/ !a)\na U b\n0 a\n"
	b, err := LoadQueryBatch(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, b.Global, 2)
	require.Len(t, b.PerStartState, 1)
	require.Equal(t, 0, *b.PerStartState[0].StartOverride)
	require.Equal(t, "a", b.PerStartState[0].Formula)
}

func TestRunBatch(t *testing.T) {
	// s0 (initial, {a}) -> s1 ({b}) -> s1 self-loop.
	tsys := mustLoadTS(t, "2 2\n0\na b\n0 t 1\n1 t 1\n0\n1\n")
	b, err := LoadQueryBatch(strings.NewReader("1 1\na U b\n1 b\n"))
	require.NoError(t, err)

	verdicts, err := RunBatch(tsys, b, false)
	require.NoError(t, err)
	require.Equal(t, []bool{true, true}, verdicts)
}

func TestRunBatchPerStartStateDoesNotAffectLaterGlobalRuns(t *testing.T) {
	tsys := mustLoadTS(t, "2 2\n0\na b\n0 t 1\n1 t 1\n0\n1\n")
	b, err := LoadQueryBatch(strings.NewReader("1 1\na U b\n1 b\n"))
	require.NoError(t, err)

	_, err = RunBatch(tsys, b, false)
	require.NoError(t, err)
	// tsys itself must still have node 0 as its only initial node.
	require.True(t, tsys.Nodes[0].Initial)
	require.False(t, tsys.Nodes[1].Initial)
}
