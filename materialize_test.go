package funcargparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateArguments(t *testing.T) {
	t.Parallel()

	t.Run("second call fails", func(t *testing.T) {
		t.Parallel()
		p := New("prog")
		require.NoError(t, p.UpdateArg("n", IfAbsent, func(a *Arg) { a.Short = "n" }))
		require.NoError(t, p.CreateArguments(false))

		err := p.CreateArguments(false)
		require.ErrorIs(t, err, ErrFinalized)
		assert.Contains(t, err.Error(), `command "prog"`)
	})
	t.Run("failed pass still seals the table", func(t *testing.T) {
		t.Parallel()
		p := New("prog")
		require.NoError(t, p.UpdateArg("good", IfAbsent, func(a *Arg) { a.Short = "g" }))
		require.NoError(t, p.UpdateArg("bad", IfAbsent, func(a *Arg) { a.Help = "flagless" }))

		err := p.CreateArguments(false)
		require.Error(t, err)
		assert.Contains(t, err.Error(),
			`command "prog": argument "bad": neither a short (-) nor a long (--) flag name is set`)

		// The table counts as materialized, so a retry cannot double-register
		// the entries emitted before the failure.
		err = p.CreateArguments(false)
		require.ErrorIs(t, err, ErrFinalized)
		err = p.UpdateArg("bad", IfPresent, func(a *Arg) { a.Short = "b" })
		require.ErrorIs(t, err, ErrFinalized)
	})
	t.Run("duplicate flag spelling", func(t *testing.T) {
		t.Parallel()
		p := New("prog")
		require.NoError(t, p.UpdateArg("first", IfAbsent, func(a *Arg) { a.Short = "n" }))
		require.NoError(t, p.UpdateArg("second", IfAbsent, func(a *Arg) { a.Short = "n" }))

		err := p.CreateArguments(false)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `command "prog": argument "second": flag name "n" already defined`)
	})
	t.Run("identical short and long collapse to one flag", func(t *testing.T) {
		t.Parallel()
		p := New("prog")
		require.NoError(t, p.UpdateArg("n", IfAbsent, func(a *Arg) {
			a.Short = "n"
			a.Long = "n"
		}))
		require.NoError(t, p.CreateArguments(false))
		assert.Len(t, p.byFlag, 1)

		res, err := p.Parse([]string{"-n", "5"})
		require.NoError(t, err)
		assert.Equal(t, "5", res.Values["n"])
	})
	t.Run("short and long both register", func(t *testing.T) {
		t.Parallel()
		p := New("prog")
		require.NoError(t, p.UpdateArg("count", IfAbsent, func(a *Arg) {
			a.Short = "n"
			a.Long = "count"
			a.Type = Int
		}))
		require.NoError(t, p.CreateArguments(false))
		assert.Len(t, p.byFlag, 2)

		res, err := p.Parse([]string{"-n", "1"})
		require.NoError(t, err)
		assert.Equal(t, 1, res.Values["count"])

		res, err = p.Parse([]string{"--count", "2"})
		require.NoError(t, err)
		assert.Equal(t, 2, res.Values["count"])
	})
	t.Run("switches drop their metavar", func(t *testing.T) {
		t.Parallel()
		p := New("prog")
		require.NoError(t, p.UpdateArg("verbose", IfAbsent, func(a *Arg) {
			a.Short = "v"
			a.Action = StoreTrue
			a.Metavar = "LEVEL"
		}))
		require.NoError(t, p.CreateArguments(false))
		assert.Equal(t, "", p.byFlag["v"].metavar)
	})
	t.Run("dest overrides the result key", func(t *testing.T) {
		t.Parallel()
		p := New("prog")
		require.NoError(t, p.UpdateArg("orig", IfAbsent, func(a *Arg) {
			a.Short = "o"
			a.Dest = "renamed"
		}))
		require.NoError(t, p.CreateArguments(false))

		res, err := p.Parse([]string{"-o", "x"})
		require.NoError(t, err)
		assert.Equal(t, "x", res.Values["renamed"])
		_, ok := res.Values["orig"]
		assert.False(t, ok)
	})
	t.Run("recursive materializes every subcommand", func(t *testing.T) {
		t.Parallel()
		root := New("prog")
		require.NoError(t, root.AddSubcommands(false))
		child, err := root.AddSubcommand("kid", "a subcommand")
		require.NoError(t, err)
		require.NoError(t, child.UpdateArg("x", IfAbsent, func(a *Arg) { a.Short = "x" }))

		require.NoError(t, root.CreateArguments(true))
		err = child.UpdateArg("x", IfPresent, func(a *Arg) { a.Help = "late" })
		require.ErrorIs(t, err, ErrFinalized)

		res, err := root.Parse([]string{"kid", "-x", "5"})
		require.NoError(t, err)
		assert.Equal(t, "5", res.Values["x"])
	})
	t.Run("non-recursive leaves subcommands pending", func(t *testing.T) {
		t.Parallel()
		root := New("prog")
		require.NoError(t, root.AddSubcommands(false))
		child, err := root.AddSubcommand("kid", "a subcommand")
		require.NoError(t, err)

		require.NoError(t, root.CreateArguments(false))
		require.NoError(t, child.UpdateArg("x", IfAbsent, func(a *Arg) { a.Short = "x" }))
		require.NoError(t, child.CreateArguments(false))
	})
	t.Run("recursive failure names the offending command", func(t *testing.T) {
		t.Parallel()
		root := New("prog")
		require.NoError(t, root.AddSubcommands(false))
		child, err := root.AddSubcommand("kid", "a subcommand")
		require.NoError(t, err)
		require.NoError(t, child.UpdateArg("bad", IfAbsent, func(a *Arg) { a.Help = "flagless" }))

		err = root.CreateArguments(true)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `command "kid": argument "bad"`)
	})
}
