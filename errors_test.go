package veloxql_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/veloxql"
)

func TestNotFoundError(t *testing.T) {
	t.Run("Error", func(t *testing.T) {
		err := veloxql.NewNotFoundError("User")
		assert.Equal(t, "velox: User not found", err.Error())
	})

	t.Run("Is", func(t *testing.T) {
		err := veloxql.NewNotFoundError("Post")
		assert.True(t, errors.Is(err, veloxql.ErrNotFound))
	})

	t.Run("IsNotFound", func(t *testing.T) {
		err := veloxql.NewNotFoundError("Comment")
		assert.True(t, veloxql.IsNotFound(err))

		// Wrapped error
		wrapped := fmt.Errorf("wrapper: %w", err)
		assert.True(t, veloxql.IsNotFound(wrapped))

		// Sentinel error
		assert.True(t, veloxql.IsNotFound(veloxql.ErrNotFound))

		// Non-matching error
		assert.False(t, veloxql.IsNotFound(errors.New("other error")))
		assert.False(t, veloxql.IsNotFound(nil))
	})
}

func TestNotSingularError(t *testing.T) {
	t.Run("Error", func(t *testing.T) {
		err := veloxql.NewNotSingularError("User")
		assert.Equal(t, "velox: User not singular", err.Error())
	})

	t.Run("Is", func(t *testing.T) {
		err := veloxql.NewNotSingularError("Post")
		assert.True(t, errors.Is(err, veloxql.ErrNotSingular))
	})

	t.Run("IsNotSingular", func(t *testing.T) {
		err := veloxql.NewNotSingularError("Comment")
		assert.True(t, veloxql.IsNotSingular(err))

		// Wrapped error
		wrapped := fmt.Errorf("wrapper: %w", err)
		assert.True(t, veloxql.IsNotSingular(wrapped))

		// Sentinel error
		assert.True(t, veloxql.IsNotSingular(veloxql.ErrNotSingular))

		// Non-matching error
		assert.False(t, veloxql.IsNotSingular(errors.New("other error")))
		assert.False(t, veloxql.IsNotSingular(nil))
	})
}

func TestNotLoadedError(t *testing.T) {
	t.Run("Error", func(t *testing.T) {
		err := veloxql.NewNotLoadedError("posts")
		assert.Equal(t, `velox: edge "posts" was not loaded`, err.Error())
	})

	t.Run("IsNotLoaded", func(t *testing.T) {
		err := veloxql.NewNotLoadedError("comments")
		assert.True(t, veloxql.IsNotLoaded(err))

		// Wrapped error
		wrapped := fmt.Errorf("wrapper: %w", err)
		assert.True(t, veloxql.IsNotLoaded(wrapped))

		// Non-matching error
		assert.False(t, veloxql.IsNotLoaded(errors.New("other error")))
		assert.False(t, veloxql.IsNotLoaded(nil))
	})
}

func TestConstraintError(t *testing.T) {
	t.Run("Error", func(t *testing.T) {
		err := veloxql.NewConstraintError("UNIQUE constraint failed", nil)
		assert.Equal(t, "velox: constraint failed: UNIQUE constraint failed", err.Error())
	})

	t.Run("Unwrap", func(t *testing.T) {
		underlying := errors.New("db error")
		err := veloxql.NewConstraintError("constraint violated", underlying)
		assert.True(t, errors.Is(err, underlying))
	})

	t.Run("IsConstraintError", func(t *testing.T) {
		err := veloxql.NewConstraintError("check failed", nil)
		assert.True(t, veloxql.IsConstraintError(err))

		// Wrapped error
		wrapped := fmt.Errorf("wrapper: %w", err)
		assert.True(t, veloxql.IsConstraintError(wrapped))

		// Non-matching error
		assert.False(t, veloxql.IsConstraintError(errors.New("other error")))
		assert.False(t, veloxql.IsConstraintError(nil))
	})
}

func TestValidationError(t *testing.T) {
	t.Run("Error", func(t *testing.T) {
		err := veloxql.NewValidationError("email", errors.New("invalid format"))
		assert.Equal(t, `velox: validator failed for field "email": invalid format`, err.Error())
	})

	t.Run("Unwrap", func(t *testing.T) {
		underlying := errors.New("too short")
		err := veloxql.NewValidationError("name", underlying)
		assert.True(t, errors.Is(err, underlying))
	})

	t.Run("IsValidationError", func(t *testing.T) {
		err := veloxql.NewValidationError("age", errors.New("must be positive"))
		assert.True(t, veloxql.IsValidationError(err))

		// Wrapped error
		wrapped := fmt.Errorf("wrapper: %w", err)
		assert.True(t, veloxql.IsValidationError(wrapped))

		// Non-matching error
		assert.False(t, veloxql.IsValidationError(errors.New("other error")))
		assert.False(t, veloxql.IsValidationError(nil))
	})
}

func TestRollbackError(t *testing.T) {
	t.Run("Error", func(t *testing.T) {
		err := &veloxql.RollbackError{Err: errors.New("connection lost")}
		assert.Equal(t, "velox: rollback failed: connection lost", err.Error())
	})

	t.Run("Unwrap", func(t *testing.T) {
		underlying := errors.New("timeout")
		err := &veloxql.RollbackError{Err: underlying}
		assert.True(t, errors.Is(err, underlying))
	})
}

func TestAggregateError(t *testing.T) {
	t.Run("NoErrors", func(t *testing.T) {
		err := veloxql.NewAggregateError()
		assert.Nil(t, err)
	})

	t.Run("NilErrors", func(t *testing.T) {
		err := veloxql.NewAggregateError(nil, nil, nil)
		assert.Nil(t, err)
	})

	t.Run("SingleError", func(t *testing.T) {
		single := errors.New("single error")
		err := veloxql.NewAggregateError(single)
		assert.Equal(t, single, err)
	})

	t.Run("MultipleErrors", func(t *testing.T) {
		err1 := errors.New("error 1")
		err2 := errors.New("error 2")
		err := veloxql.NewAggregateError(err1, err2)

		require.NotNil(t, err)
		assert.Contains(t, err.Error(), "multiple errors")
		assert.Contains(t, err.Error(), "error 1")
		assert.Contains(t, err.Error(), "error 2")
	})

	t.Run("MixedNilAndErrors", func(t *testing.T) {
		err1 := errors.New("error 1")
		err := veloxql.NewAggregateError(nil, err1, nil)

		require.NotNil(t, err)
		assert.Equal(t, err1, err) // Single non-nil error returned directly
	})
}

func TestSentinelErrors(t *testing.T) {
	t.Run("ErrNotFound", func(t *testing.T) {
		assert.Error(t, veloxql.ErrNotFound)
		assert.Contains(t, veloxql.ErrNotFound.Error(), "not found")
	})

	t.Run("ErrNotSingular", func(t *testing.T) {
		assert.Error(t, veloxql.ErrNotSingular)
		assert.Contains(t, veloxql.ErrNotSingular.Error(), "not singular")
	})

	t.Run("ErrTxStarted", func(t *testing.T) {
		assert.Error(t, veloxql.ErrTxStarted)
		assert.Contains(t, veloxql.ErrTxStarted.Error(), "transaction")
	})
}

// BenchmarkErrors benchmarks error creation and checking.
func BenchmarkErrors(b *testing.B) {
	b.Run("NewNotFoundError", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = veloxql.NewNotFoundError("User")
		}
	})

	b.Run("IsNotFound", func(b *testing.B) {
		err := veloxql.NewNotFoundError("User")
		for i := 0; i < b.N; i++ {
			_ = veloxql.IsNotFound(err)
		}
	})

	b.Run("NewConstraintError", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = veloxql.NewConstraintError("unique", nil)
		}
	})

	b.Run("IsConstraintError", func(b *testing.B) {
		err := veloxql.NewConstraintError("unique", nil)
		for i := 0; i < b.N; i++ {
			_ = veloxql.IsConstraintError(err)
		}
	})

	b.Run("NewValidationError", func(b *testing.B) {
		underlying := errors.New("invalid")
		for i := 0; i < b.N; i++ {
			_ = veloxql.NewValidationError("field", underlying)
		}
	})

	b.Run("NewAggregateError_multiple", func(b *testing.B) {
		err1 := errors.New("err1")
		err2 := errors.New("err2")
		err3 := errors.New("err3")
		for i := 0; i < b.N; i++ {
			_ = veloxql.NewAggregateError(err1, err2, err3)
		}
	})
}
