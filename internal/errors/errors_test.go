package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_ErrorAndUnwrap(t *testing.T) {
	cause := stderrors.New("boom")
	err := Wrap(cause, ErrCodeInternal, "saving document")

	assert.Equal(t, "saving document: boom", err.Error())
	assert.True(t, stderrors.Is(err, cause))

	plain := NotFound("document not found")
	assert.Equal(t, "document not found", plain.Error())
	assert.Nil(t, plain.Unwrap())
}

func TestWrap_NilError(t *testing.T) {
	assert.Nil(t, Wrap(nil, ErrCodeInternal, "ignored"))
}

func TestCodePredicates(t *testing.T) {
	assert.True(t, IsNotFound(NotFoundf("doc %s", "d1")))
	assert.True(t, IsConflict(Conflict("dup")))
	assert.True(t, IsValidation(Validation("bad")))
	assert.False(t, IsNotFound(Internal("oops")))
	assert.False(t, IsNotFound(stderrors.New("plain")))

	// predicates see through wrapping
	wrapped := fmt.Errorf("outer: %w", NotFound("inner"))
	assert.True(t, IsNotFound(wrapped))
}

func TestMapDBError(t *testing.T) {
	cases := []struct {
		name string
		in   error
		want ErrorCode
	}{
		{"no rows", pgx.ErrNoRows, ErrCodeNotFound},
		{"unique violation", &pgconn.PgError{Code: pgerrcode.UniqueViolation}, ErrCodeConflict},
		{"foreign key", &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}, ErrCodeForeignKey},
		{"check violation", &pgconn.PgError{Code: pgerrcode.CheckViolation}, ErrCodeValidation},
		{"deadline", context.DeadlineExceeded, ErrCodeTimeout},
		{"canceled", context.Canceled, ErrCodeCanceled},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mapped := MapDBError(tc.in)
			var appErr *AppError
			require.True(t, stderrors.As(mapped, &appErr))
			assert.Equal(t, tc.want, appErr.Code)
			assert.True(t, stderrors.Is(mapped, tc.in), "cause must be preserved")
		})
	}
}

func TestMapDBError_Passthrough(t *testing.T) {
	assert.Nil(t, MapDBError(nil))

	plain := stderrors.New("network down")
	assert.Equal(t, plain, MapDBError(plain))
}
