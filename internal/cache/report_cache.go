package cache

import (
	"context"
	"encoding/json"
	"time"

	"listenerlab/internal/model"

	"github.com/redis/go-redis/v9"
)

const populationReportKey = "report:population"

// ReportCache holds the most recent population report for a short while
type ReportCache interface {
	GetPopulation(ctx context.Context) (*model.PopulationReport, error)
	SetPopulation(ctx context.Context, report *model.PopulationReport) error
	Invalidate(ctx context.Context) error
}

type reportCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewReportCache creates a report cache; ttl <= 0 means 5m
func NewReportCache(client *redis.Client, ttl time.Duration) ReportCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &reportCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *reportCache) GetPopulation(ctx context.Context) (*model.PopulationReport, error) {
	data, err := c.client.Get(ctx, populationReportKey).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var report model.PopulationReport
	if err := json.Unmarshal([]byte(data), &report); err != nil {
		return nil, err
	}
	return &report, nil
}

func (c *reportCache) SetPopulation(ctx context.Context, report *model.PopulationReport) error {
	data, err := json.Marshal(report)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, populationReportKey, data, c.ttl).Err()
}

func (c *reportCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, populationReportKey).Err()
}
