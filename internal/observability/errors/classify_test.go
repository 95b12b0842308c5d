package errors

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/dictate-io/dictate/internal/errors"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "deadline", err: context.DeadlineExceeded, want: "context_deadlineexceedederror"},
		{
			name: "wrapped deadline matches bare",
			err:  fmt.Errorf("fetch config: %w", context.DeadlineExceeded),
			want: Classify(context.DeadlineExceeded),
		},
		{
			name: "app error",
			err:  apperrors.NotFoundf("document %s not found", "d1"),
			want: "errors_apperror",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
}
