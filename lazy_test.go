// FILE: lixenwraith/looks/lazy_test.go
package looks

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLazyValueEvaluatesOnce(t *testing.T) {
	var calls atomic.Int32
	lazy := NewLazyValue("counter", func() (any, error) {
		calls.Add(1)
		return Insets{Top: 1, Left: 2, Bottom: 3, Right: 4}, nil
	})
	assert.False(t, lazy.Evaluated())

	const readers = 50
	var wg sync.WaitGroup
	results := make([]any, readers)
	for i := range readers {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			v, err := lazy.Evaluate()
			assert.NoError(t, err)
			results[idx] = v
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	assert.True(t, lazy.Evaluated())
	for _, v := range results {
		assert.Equal(t, Insets{Top: 1, Left: 2, Bottom: 3, Right: 4}, v)
	}
}

func TestLazyValueFailureIsNotCached(t *testing.T) {
	var calls int
	lazy := NewLazyValue("flaky", func() (any, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("resource unavailable")
		}
		return "ready", nil
	})

	_, err := lazy.Evaluate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEvaluation)
	var evalErr *EvalError
	require.ErrorAs(t, err, &evalErr)
	assert.Equal(t, "flaky", evalErr.Name)
	assert.False(t, lazy.Evaluated())

	v, err := lazy.Evaluate()
	require.NoError(t, err)
	assert.Equal(t, "ready", v)
	assert.Equal(t, 2, calls)
}

func TestLazyValuePanicBecomesEvalError(t *testing.T) {
	lazy := NewLazyValue("explosive", func() (any, error) {
		panic("boom")
	})

	v, err := lazy.Evaluate()
	assert.Nil(t, v)
	require.ErrorIs(t, err, ErrEvaluation)
	assert.Contains(t, err.Error(), "boom")
	assert.False(t, lazy.Evaluated())
}

func TestFactories(t *testing.T) {
	factories := Factories{
		"borders.button": func() (any, error) { return Border{Kind: "button"}, nil },
	}

	t.Run("Registered", func(t *testing.T) {
		lazy := factories.Lazy("borders.button")
		assert.Equal(t, "lazy:borders.button", lazy.String())
		v, err := lazy.Evaluate()
		require.NoError(t, err)
		assert.Equal(t, Border{Kind: "button"}, v)
	})

	t.Run("Unregistered", func(t *testing.T) {
		lazy := factories.Lazy("borders.missing")
		_, err := lazy.Evaluate()
		assert.ErrorIs(t, err, ErrFactoryNotFound)
		assert.ErrorIs(t, err, ErrEvaluation)
	})

	t.Run("NilProducer", func(t *testing.T) {
		_, err := NewLazyValue("unbound", nil).Evaluate()
		assert.ErrorIs(t, err, ErrEvaluation)
	})
}
