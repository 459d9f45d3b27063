package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserMessage(t *testing.T) {
	wrapped := fmt.Errorf("%w: %w", PersistenceUnavailable, fmt.Errorf("rpc error: code = Unavailable"))

	assert.Equal(t, "", UserMessage(nil))
	assert.Equal(t, "Your favorites could not be saved right now. Please try again.", UserMessage(wrapped))
	assert.Equal(t, "This product is already in your favorites.", UserMessage(AlreadyFavorited))
	assert.NotContains(t, UserMessage(fmt.Errorf("boom")), "boom")
}

func TestExpected(t *testing.T) {
	assert.True(t, Expected(SelectionFull))
	assert.True(t, Expected(fmt.Errorf("add: %w", AlreadyFavorited)))
	assert.False(t, Expected(PersistenceUnavailable))
	assert.False(t, Expected(CatalogUnavailable))
}
