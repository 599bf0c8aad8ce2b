package cache

import (
	"context"

	"listenerlab/internal/model"

	"github.com/redis/go-redis/v9"
)

const segmentTallyKey = "segments:tally"

// SegmentTallyCache keeps a running persona count in a Redis ZSET for the live dashboard
type SegmentTallyCache interface {
	Increment(ctx context.Context, persona model.PersonaID) error
	Ranked(ctx context.Context) ([]SegmentTally, error)
}

// SegmentTally is one persona's live count and rank
type SegmentTally struct {
	PersonaID model.PersonaID `json:"personaId"`
	Count     int             `json:"count"`
	Rank      int             `json:"rank"`
}

type segmentTallyCache struct {
	client *redis.Client
}

// NewSegmentTallyCache creates a new segment tally cache
func NewSegmentTallyCache(client *redis.Client) SegmentTallyCache {
	return &segmentTallyCache{
		client: client,
	}
}

func (c *segmentTallyCache) Increment(ctx context.Context, persona model.PersonaID) error {
	return c.client.ZIncrBy(ctx, segmentTallyKey, 1, string(persona)).Err()
}

// Ranked returns personas ordered by count, highest first
func (c *segmentTallyCache) Ranked(ctx context.Context) ([]SegmentTally, error) {
	results, err := c.client.ZRevRangeWithScores(ctx, segmentTallyKey, 0, -1).Result()
	if err != nil {
		return nil, err
	}

	tallies := make([]SegmentTally, len(results))
	for i, z := range results {
		member, _ := z.Member.(string)
		tallies[i] = SegmentTally{
			PersonaID: model.PersonaID(member),
			Count:     int(z.Score),
			Rank:      i + 1,
		}
	}
	return tallies, nil
}
