package classifier_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/ecosnap-api/internal/clients/classifier"
	"github.com/KirkDiggler/ecosnap-api/internal/entities"
)

func TestStatic(t *testing.T) {
	c := classifier.NewStatic("squirrel", "tree")

	labels, err := c.Classify(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, []entities.Label{
		{Description: "squirrel", Score: 1},
		{Description: "tree", Score: 0.5},
	}, labels)

	labels[0].Description = "changed"
	again, err := c.Classify(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "squirrel", again[0].Description)
}

func TestStaticHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := classifier.NewStatic("robin").Classify(ctx, nil)
	assert.ErrorIs(t, err, context.Canceled)
}
