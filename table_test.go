// FILE: lixenwraith/looks/table_test.go
package looks

import (
	"bytes"
	"errors"
	"log"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bufferLogger(buf *bytes.Buffer) *log.Logger {
	return log.New(buf, "", 0)
}

func TestEntries(t *testing.T) {
	t.Run("Pairs", func(t *testing.T) {
		entries, err := Entries("A.x", 1, "A.y", "two")
		require.NoError(t, err)
		assert.Equal(t, []Entry{{"A.x", 1}, {"A.y", "two"}}, entries)
	})

	t.Run("OddArguments", func(t *testing.T) {
		_, err := Entries("A.x", 1, "A.y")
		assert.Error(t, err)
	})

	t.Run("NonStringKey", func(t *testing.T) {
		_, err := Entries(42, "value")
		assert.ErrorIs(t, err, ErrInvalidKey)
	})

	t.Run("EmptyKey", func(t *testing.T) {
		_, err := Entries("", "value")
		assert.ErrorIs(t, err, ErrInvalidKey)
	})
}

func TestTablePutDefaults(t *testing.T) {
	table := NewTable(DiscardLogger())

	table.PutDefaults(Entry{"X", 1})
	table.PutDefaults(Entry{"X", 2}, Entry{"Y", 3})

	x, ok := table.Get("X")
	require.True(t, ok)
	assert.Equal(t, 2, x)
	y, ok := table.Get("Y")
	require.True(t, ok)
	assert.Equal(t, 3, y)

	t.Run("LaterEntryInSameCallWins", func(t *testing.T) {
		table.PutDefaults(Entry{"Z", "first"}, Entry{"Z", "second"})
		z, _ := table.Get("Z")
		assert.Equal(t, "second", z)
	})

	t.Run("NilRemoves", func(t *testing.T) {
		table.PutDefaults(Entry{"Z", nil})
		assert.False(t, table.Has("Z"))
	})

	assert.Equal(t, []string{"X", "Y"}, table.Keys(""))
	assert.Equal(t, 2, table.Len())
}

func TestTableLazyEvaluation(t *testing.T) {
	var calls int
	table := NewTable(DiscardLogger())
	table.PutDefaults(Entry{"Button.border", NewLazyValue("borders.button", func() (any, error) {
		calls++
		return Border{Kind: "button", Insets: NewInsets(2, 3, 2, 3)}, nil
	})})

	assert.True(t, table.Has("Button.border"))
	assert.True(t, table.IsPending("Button.border"))
	assert.Equal(t, "lazy:borders.button", table.Snapshot()["Button.border"])
	assert.Zero(t, calls, "snapshot must not evaluate")

	for range 3 {
		v, ok := table.Get("Button.border")
		require.True(t, ok)
		assert.Equal(t, Border{Kind: "button", Insets: NewInsets(2, 3, 2, 3)}, v)
	}
	assert.Equal(t, 1, calls)
	assert.False(t, table.IsPending("Button.border"))
	assert.IsType(t, Border{}, table.Snapshot()["Button.border"])
}

func TestTableEvaluationFailure(t *testing.T) {
	var buf bytes.Buffer
	table := NewTable(bufferLogger(&buf))

	fail := true
	table.PutDefaults(Entry{"Tree.icon", NewLazyValue("icons.tree", func() (any, error) {
		if fail {
			return nil, errors.New("icon resource missing")
		}
		return Icon{Name: "tree", Width: 16, Height: 16}, nil
	})})

	v, ok := table.Get("Tree.icon")
	assert.False(t, ok)
	assert.Nil(t, v)
	assert.Contains(t, buf.String(), "Tree.icon")
	assert.Contains(t, buf.String(), "icon resource missing")
	assert.True(t, table.IsPending("Tree.icon"), "failed value stays for retry")

	fail = false
	v, ok = table.Get("Tree.icon")
	require.True(t, ok)
	assert.Equal(t, Icon{Name: "tree", Width: 16, Height: 16}, v)
}

func TestTableLazyNilResultReadsAbsent(t *testing.T) {
	table := NewTable(DiscardLogger())
	table.PutDefaults(Entry{"Empty", NewLazyValue("empty", func() (any, error) { return nil, nil })})

	_, ok := table.Get("Empty")
	assert.False(t, ok)
	assert.False(t, table.Has("Empty"))
}

func TestTableConcurrentReads(t *testing.T) {
	table := NewTable(DiscardLogger())
	var mu sync.Mutex
	var calls int
	table.PutDefaults(Entry{"Shared", NewLazyValue("shared", func() (any, error) {
		mu.Lock()
		calls++
		mu.Unlock()
		return 7, nil
	})})

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n, err := table.Int("Shared")
			assert.NoError(t, err)
			assert.Equal(t, 7, n)
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, calls)
}

func TestTableTypedGetters(t *testing.T) {
	table := NewTable(DiscardLogger())
	table.PutDefaults(mustEntries(
		"Font", MustParseFont("Tahoma-11"),
		"FontPtr", &Font{Family: "Arial", Size: 10},
		"String", "text",
		"Stringer", NewInsets(1, 2, 3, 4),
		"Int", 5,
		"Int64", int64(6),
		"Bool", true,
		"Insets", NewInsets(1, 1, 1, 1),
		"Dimension", Dimension{Width: 20, Height: 20},
		"Color", Color{R: 255},
	)...)

	f, ok := table.Font("Font")
	assert.True(t, ok)
	assert.Equal(t, "Tahoma", f.Family)
	f, ok = table.Font("FontPtr")
	assert.True(t, ok)
	assert.Equal(t, "Arial", f.Family)
	_, ok = table.Font("String")
	assert.False(t, ok)

	s, err := table.String("String")
	require.NoError(t, err)
	assert.Equal(t, "text", s)
	s, err = table.String("Stringer")
	require.NoError(t, err)
	assert.Equal(t, NewInsets(1, 2, 3, 4).String(), s)
	_, err = table.String("Int")
	assert.Error(t, err)

	n, err := table.Int("Int64")
	require.NoError(t, err)
	assert.Equal(t, 6, n)
	_, err = table.Int("Missing")
	assert.Error(t, err)

	b, err := table.Bool("Bool")
	require.NoError(t, err)
	assert.True(t, b)

	in, ok := table.Insets("Insets")
	assert.True(t, ok)
	assert.Equal(t, 1, in.Top)
	d, ok := table.Dimension("Dimension")
	assert.True(t, ok)
	assert.Equal(t, 20, d.Width)
	c, ok := table.Color("Color")
	assert.True(t, ok)
	assert.Equal(t, uint8(255), c.R)
}

func TestTableDump(t *testing.T) {
	table := NewTable(DiscardLogger())
	table.PutDefaults(mustEntries(
		"Menu.font", MustParseFont("Tahoma-11"),
		"Button.margin", NewInsets(2, 14, 2, 14),
		"Button.border", NewLazyValue("borders.button", func() (any, error) { return Border{}, nil }),
	)...)

	var buf bytes.Buffer
	require.NoError(t, table.Dump(&buf))
	out := buf.String()
	assert.Contains(t, out, `font = "Tahoma-PLAIN-11"`)
	assert.Contains(t, out, `border = "lazy:borders.button"`)
	assert.True(t, table.IsPending("Button.border"))
}
