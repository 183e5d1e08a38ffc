package shared

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTraceID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetTraceID(ctx))

	ctx = SetTraceID(ctx)
	id := GetTraceID(ctx)
	assert.Len(t, id, 32)
	assert.NotContains(t, id, "-")
	assert.NotEqual(t, id, NewTraceID())
}

func TestUserIDFromContext(t *testing.T) {
	_, ok := UserIDFromContext(context.Background())
	assert.False(t, ok)

	_, ok = UserIDFromContext(WithUserID(context.Background(), 0))
	assert.False(t, ok)

	id, ok := UserIDFromContext(WithUserID(context.Background(), 42))
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)
}
