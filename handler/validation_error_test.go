package handler_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mtgqe/cardsearch/handler"
)

func TestValidationError(t *testing.T) {
	t.Parallel()

	verr := handler.NewValidationError()
	assert.True(t, verr.IsEmpty())
	assert.NoError(t, verr.OrNil())
	assert.Equal(t, "validation failed", verr.Error())

	verr.Add("power_to", "must be an integer")
	verr.Add("cmc_from", "must be an integer")
	verr.Add("cmc_from", "must not be negative")

	assert.False(t, verr.IsEmpty())
	assert.True(t, verr.Has("cmc_from"))
	assert.False(t, verr.Has("white_from"))
	assert.Equal(t, "must be an integer", verr.Get("cmc_from"))
	assert.Equal(t, "validation error: cmc_from: must be an integer, power_to: must be an integer", verr.Error())
	assert.Error(t, verr.OrNil())
}
