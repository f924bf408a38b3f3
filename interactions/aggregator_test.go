package interactions

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// counterStub is a stub for Counter keyed by interaction type.
type counterStub struct {
	counts map[string]int64
	calls  []string
}

func (s *counterStub) CountDocuments(_ context.Context, filter interface{}, _ ...*options.CountOptions) (int64, error) {
	interactionType := filter.(bson.M)["type"].(string)
	s.calls = append(s.calls, interactionType)
	return s.counts[interactionType], nil
}

func TestStatsCountsPerType(t *testing.T) {
	stub := &counterStub{counts: map[string]int64{
		"like":   3,
		"rating": 1,
		"save":   2,
	}}
	a := &Aggregator{Interactions: stub}

	stats, err := a.Stats(context.Background(), primitive.NewObjectID())
	require.NoError(t, err)

	assert.Equal(t, int64(3), stats.LikesCount)
	assert.Equal(t, int64(1), stats.RatingsCount)
	assert.Equal(t, int64(2), stats.SavesCount)
	assert.ElementsMatch(t, []string{"like", "rating", "save"}, stub.calls)
}

func TestStatsZeroInteractions(t *testing.T) {
	a := &Aggregator{Interactions: &counterStub{counts: map[string]int64{}}}

	stats, err := a.Stats(context.Background(), primitive.NewObjectID())
	require.NoError(t, err)

	assert.Equal(t, Stats{}, stats)
}
