package funcargparse

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chainState is the chained command tree used across the chain tests:
//
//	prog -a
//	├── sp1 -t (switch, default true)
//	│   ├── sp11 -b
//	│   └── sp12 -c
//	└── sp2 -t (switch, default true)
type chainState struct {
	root, sp1, sp11, sp12, sp2 *Parser
}

func newChainState(t *testing.T) chainState {
	t.Helper()
	toggle := func(a *Arg) {
		a.Short = "t"
		a.Action = StoreFalse
		a.Default = true
	}
	root := New("prog")
	require.NoError(t, root.UpdateArg("a", IfAbsent, func(a *Arg) { a.Short = "a" }))
	require.NoError(t, root.AddSubcommands(true))

	sp1, err := root.AddSubcommand("sp1", "first branch")
	require.NoError(t, err)
	require.NoError(t, sp1.UpdateArg("t", IfAbsent, toggle))
	require.NoError(t, sp1.AddSubcommands(true))
	sp11, err := sp1.AddSubcommand("sp11", "nested branch")
	require.NoError(t, err)
	require.NoError(t, sp11.UpdateArg("b", IfAbsent, func(a *Arg) { a.Short = "b" }))
	sp12, err := sp1.AddSubcommand("sp12", "second nested branch")
	require.NoError(t, err)
	require.NoError(t, sp12.UpdateArg("c", IfAbsent, func(a *Arg) { a.Short = "c" }))

	sp2, err := root.AddSubcommand("sp2", "second branch")
	require.NoError(t, err)
	require.NoError(t, sp2.UpdateArg("t", IfAbsent, toggle))

	require.NoError(t, root.CreateArguments(true))
	return chainState{root: root, sp1: sp1, sp11: sp11, sp12: sp12, sp2: sp2}
}

func TestParseChained(t *testing.T) {
	t.Parallel()

	t.Run("partitions runs across sibling and nested branches", func(t *testing.T) {
		t.Parallel()
		s := newChainState(t)

		res, err := s.root.Parse([]string{"-a", "test", "sp1", "-t", "sp11", "-b", "okay", "sp2"})
		require.NoError(t, err)
		assert.Equal(t, "test", Get[string](res.Values, "a"))
		assert.Equal(t, []string{"sp1", "sp2"}, res.ChildNames())

		sp1Res, ok := res.Child("sp1")
		require.True(t, ok)
		assert.False(t, Get[bool](sp1Res.Values, "t"))

		sp11Res, ok := sp1Res.Child("sp11")
		require.True(t, ok)
		assert.Equal(t, "okay", Get[string](sp11Res.Values, "b"))

		sp2Res, ok := res.Child("sp2")
		require.True(t, ok)
		assert.True(t, Get[bool](sp2Res.Values, "t"))
	})
	t.Run("main region values are layered into every child", func(t *testing.T) {
		t.Parallel()
		s := newChainState(t)

		res, err := s.root.Parse([]string{"-a", "test", "sp1", "sp2"})
		require.NoError(t, err)
		want := Values{"a": "test", "t": true}
		for _, name := range []string{"sp1", "sp2"} {
			child, ok := res.Child(name)
			require.True(t, ok)
			if diff := cmp.Diff(want, child.Values); diff != "" {
				t.Errorf("%s values mismatch (-want +got):\n%s", name, diff)
			}
		}
		// The layering is one level deep: nested results carry their own
		// parser's region, not the root's.
		res, err = s.root.Parse([]string{"-a", "test", "sp1", "-t", "sp11", "-b", "okay"})
		require.NoError(t, err)
		sp1Res, _ := res.Child("sp1")
		sp11Res, _ := sp1Res.Child("sp11")
		if diff := cmp.Diff(Values{"t": false, "b": "okay"}, sp11Res.Values); diff != "" {
			t.Errorf("sp11 values mismatch (-want +got):\n%s", diff)
		}
	})
	t.Run("second nested branch splits off its own run", func(t *testing.T) {
		t.Parallel()
		s := newChainState(t)

		res, err := s.root.Parse([]string{"sp1", "sp11", "-b", "okay", "sp12", "-c", "off", "sp2"})
		require.NoError(t, err)
		assert.Equal(t, []string{"sp1", "sp2"}, res.ChildNames())

		sp1Res, _ := res.Child("sp1")
		assert.Equal(t, []string{"sp11", "sp12"}, sp1Res.ChildNames())
		sp11Res, _ := sp1Res.Child("sp11")
		assert.Equal(t, "okay", Get[string](sp11Res.Values, "b"))
		sp12Res, _ := sp1Res.Child("sp12")
		assert.Equal(t, "off", Get[string](sp12Res.Values, "c"))
	})
	t.Run("tokens after a nested branch return to the right scope", func(t *testing.T) {
		t.Parallel()
		s := newChainState(t)

		// sp2 closes sp1's whole territory, including the open sp11 scope.
		res, err := s.root.Parse([]string{"sp1", "sp11", "-b", "okay", "sp2", "-t"})
		require.NoError(t, err)
		sp2Res, ok := res.Child("sp2")
		require.True(t, ok)
		assert.False(t, Get[bool](sp2Res.Values, "t"))
	})
	t.Run("repeated subcommand keeps its position and the last values", func(t *testing.T) {
		t.Parallel()
		s := newChainState(t)

		res, err := s.root.Parse([]string{"sp2", "-t", "sp1", "sp2"})
		require.NoError(t, err)
		assert.Equal(t, []string{"sp2", "sp1"}, res.ChildNames())

		// The second sp2 run parses fresh, so the toggle from the first run
		// does not leak into it.
		sp2Res, _ := res.Child("sp2")
		assert.True(t, Get[bool](sp2Res.Values, "t"))
	})
	t.Run("remainder collects child extras first and main extras last", func(t *testing.T) {
		t.Parallel()
		s := newChainState(t)

		res, extras, err := s.root.ParseKnown([]string{"-zz", "sp1", "-t", "-qq", "sp2", "-yy"})
		require.NoError(t, err)
		assert.Equal(t, []string{"-qq", "-yy", "-zz"}, extras)
		sp1Res, _ := res.Child("sp1")
		assert.False(t, Get[bool](sp1Res.Values, "t"))
	})
	t.Run("strict parse rejects the remainder", func(t *testing.T) {
		t.Parallel()
		s := newChainState(t)

		_, err := s.root.Parse([]string{"sp1", "-qq"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unrecognized arguments: -qq")
	})
	t.Run("reusable across command lines", func(t *testing.T) {
		t.Parallel()
		s := newChainState(t)

		_, err := s.root.Parse([]string{"-a", "test", "sp1", "-t", "sp11", "-b", "okay", "sp2"})
		require.NoError(t, err)

		res, err := s.root.Parse([]string{"sp2"})
		require.NoError(t, err)
		assert.Nil(t, res.Values["a"])
		assert.Equal(t, []string{"sp2"}, res.ChildNames())
		sp2Res, _ := res.Child("sp2")
		assert.True(t, Get[bool](sp2Res.Values, "t"))
	})
	t.Run("own values shadow a child of the same name", func(t *testing.T) {
		t.Parallel()
		root := New("prog")
		require.NoError(t, root.UpdateArg("deploy", IfAbsent, func(a *Arg) { a.Short = "deploy" }))
		require.NoError(t, root.AddSubcommands(true))
		_, err := root.AddSubcommand("deploy", "deploy things")
		require.NoError(t, err)
		require.NoError(t, root.CreateArguments(true))

		res, err := root.Parse([]string{"-deploy", "yes", "deploy"})
		require.NoError(t, err)
		assert.Equal(t, "yes", Get[string](res.Values, "deploy"))
		_, ok := res.Child("deploy")
		assert.False(t, ok)
		assert.Empty(t, res.ChildNames())
	})
	t.Run("dashed command names normalize in the result", func(t *testing.T) {
		t.Parallel()
		root := New("prog")
		require.NoError(t, root.AddSubcommands(true))
		child, err := root.AddSubcommand("dry-run", "pretend only")
		require.NoError(t, err)
		require.NoError(t, child.UpdateArg("n", IfAbsent, func(a *Arg) { a.Short = "n" }))
		require.NoError(t, root.CreateArguments(true))

		res, err := root.Parse([]string{"dry-run", "-n", "3"})
		require.NoError(t, err)
		assert.Equal(t, []string{"dry_run"}, res.ChildNames())

		byResultKey, ok := res.Child("dry_run")
		require.True(t, ok)
		byCommandName, ok := res.Child("dry-run")
		require.True(t, ok)
		assert.Same(t, byResultKey, byCommandName)
		assert.Equal(t, "3", Get[string](byResultKey.Values, "n"))
	})
}

func TestChainedNameCollision(t *testing.T) {
	t.Parallel()

	// newCollisionState builds a tree where the root and sp1 both own a child
	// named sp11:
	//
	//	prog
	//	├── sp1
	//	│   └── sp11 -b
	//	└── sp11 -r
	newCollisionState := func(t *testing.T) *Parser {
		t.Helper()
		root := New("prog")
		require.NoError(t, root.AddSubcommands(true))
		sp1, err := root.AddSubcommand("sp1", "outer branch")
		require.NoError(t, err)
		require.NoError(t, sp1.AddSubcommands(true))
		inner, err := sp1.AddSubcommand("sp11", "nested namesake")
		require.NoError(t, err)
		require.NoError(t, inner.UpdateArg("b", IfAbsent, func(a *Arg) { a.Short = "b" }))
		top, err := root.AddSubcommand("sp11", "top-level namesake")
		require.NoError(t, err)
		require.NoError(t, top.UpdateArg("r", IfAbsent, func(a *Arg) { a.Short = "r" }))
		require.NoError(t, root.CreateArguments(true))
		return root
	}

	t.Run("innermost active scope claims the name", func(t *testing.T) {
		t.Parallel()
		root := newCollisionState(t)

		res, err := root.Parse([]string{"sp1", "sp11", "-b", "inner"})
		require.NoError(t, err)
		assert.Equal(t, []string{"sp1"}, res.ChildNames())

		sp1Res, _ := res.Child("sp1")
		sp11Res, ok := sp1Res.Child("sp11")
		require.True(t, ok)
		assert.Equal(t, "inner", Get[string](sp11Res.Values, "b"))
	})
	t.Run("top-level namesake wins while no inner scope is open", func(t *testing.T) {
		t.Parallel()
		root := newCollisionState(t)

		res, err := root.Parse([]string{"sp11", "-r", "top", "sp1", "sp11", "-b", "inner"})
		require.NoError(t, err)
		assert.Equal(t, []string{"sp11", "sp1"}, res.ChildNames())

		topRes, _ := res.Child("sp11")
		assert.Equal(t, "top", Get[string](topRes.Values, "r"))

		sp1Res, _ := res.Child("sp1")
		innerRes, ok := sp1Res.Child("sp11")
		require.True(t, ok)
		assert.Equal(t, "inner", Get[string](innerRes.Values, "b"))
	})
}
