package apperr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tally/internal/apperr"
)

func TestKindOf(t *testing.T) {
	owner := uuid.New()
	conflict := &apperr.SequenceConflictError{OwnerID: owner, Scope: "journal", Value: "JV/2024/0001"}
	notFound := apperr.Sentinel(apperr.KindNotFound, "missing")

	tests := []struct {
		name string
		err  error
		want apperr.Kind
	}{
		{name: "Conflict", err: conflict, want: apperr.KindConflict},
		{name: "WrappedConflict", err: fmt.Errorf("posting: %w", conflict), want: apperr.KindConflict},
		{name: "Sentinel", err: notFound, want: apperr.KindNotFound},
		{name: "Plain", err: errors.New("boom"), want: apperr.KindUnknown},
		{name: "Nil", err: nil, want: apperr.KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, apperr.KindOf(tt.err))
		})
	}

	assert.True(t, apperr.Retryable(conflict))
	assert.False(t, apperr.Retryable(notFound))
}

func TestWrap(t *testing.T) {
	owner := uuid.New()
	base := errors.New("connection reset")

	err := apperr.Wrap("posting journal", owner, base)

	var opErr *apperr.OpError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, "posting journal", opErr.Op)
	assert.Equal(t, owner, opErr.OwnerID)
	assert.ErrorIs(t, err, base)
	assert.Contains(t, err.Error(), owner.String())

	conflict := &apperr.SequenceConflictError{OwnerID: owner}
	assert.Same(t, conflict, apperr.Wrap("posting journal", owner, conflict))
	assert.NoError(t, apperr.Wrap("noop", owner, nil))
}
