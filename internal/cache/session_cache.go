package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"listenerlab/internal/model"

	"github.com/redis/go-redis/v9"
)

// SessionCache holds in-progress respondent sessions in Redis
type SessionCache interface {
	Create(ctx context.Context, session *model.Session) error
	Get(ctx context.Context, id string) (*model.Session, error)
	SetResponse(ctx context.Context, id string, questionID, value int) error

	// ClaimCompletion returns true for exactly one caller per session
	ClaimCompletion(ctx context.Context, id, submissionID string) (bool, error)
	ReleaseCompletion(ctx context.Context, id string) error
	MarkCompleted(ctx context.Context, id, submissionID string, at time.Time) error
	Delete(ctx context.Context, id string) error
}

type sessionMeta struct {
	ID           string     `json:"id"`
	StartedAt    time.Time  `json:"startedAt"`
	CompletedAt  *time.Time `json:"completedAt,omitempty"`
	SubmissionID string     `json:"submissionId,omitempty"`
}

type sessionCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionCache creates a session cache; ttl <= 0 means 2h
func NewSessionCache(client *redis.Client, ttl time.Duration) SessionCache {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &sessionCache{
		client: client,
		ttl:    ttl,
	}
}

// Key helpers
func (c *sessionCache) metaKey(id string) string {
	return fmt.Sprintf("session:%s", id)
}

func (c *sessionCache) responsesKey(id string) string {
	return fmt.Sprintf("session:%s:responses", id)
}

func (c *sessionCache) completedKey(id string) string {
	return fmt.Sprintf("session:%s:completed", id)
}

func (c *sessionCache) Create(ctx context.Context, session *model.Session) error {
	if err := c.setMeta(ctx, &sessionMeta{ID: session.ID, StartedAt: session.StartedAt}); err != nil {
		return err
	}
	if len(session.Responses) == 0 {
		return nil
	}
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for qid, v := range session.Responses {
			pipe.HSet(ctx, c.responsesKey(session.ID), strconv.Itoa(qid), v)
		}
		pipe.Expire(ctx, c.responsesKey(session.ID), c.ttl)
		return nil
	})
	return err
}

func (c *sessionCache) Get(ctx context.Context, id string) (*model.Session, error) {
	meta, err := c.getMeta(ctx, id)
	if err != nil || meta == nil {
		return nil, err
	}

	fields, err := c.client.HGetAll(ctx, c.responsesKey(id)).Result()
	if err != nil {
		return nil, err
	}
	responses := make(map[int]int, len(fields))
	for k, v := range fields {
		qid, err := strconv.Atoi(k)
		if err != nil {
			continue
		}
		val, err := strconv.Atoi(v)
		if err != nil {
			continue
		}
		responses[qid] = val
	}

	session := &model.Session{
		ID:           meta.ID,
		Responses:    responses,
		StartedAt:    meta.StartedAt,
		CompletedAt:  meta.CompletedAt,
		SubmissionID: meta.SubmissionID,
	}
	if session.CompletedAt != nil {
		return session, nil
	}

	// A held claim counts as completed even before MarkCompleted lands
	submissionID, err := c.client.Get(ctx, c.completedKey(id)).Result()
	if err == redis.Nil {
		return session, nil
	}
	if err != nil {
		return nil, err
	}
	claimedAt := time.Now().UTC()
	session.CompletedAt = &claimedAt
	session.SubmissionID = submissionID
	return session, nil
}

func (c *sessionCache) SetResponse(ctx context.Context, id string, questionID, value int) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, c.responsesKey(id), strconv.Itoa(questionID), value)
		pipe.Expire(ctx, c.responsesKey(id), c.ttl)
		pipe.Expire(ctx, c.metaKey(id), c.ttl)
		return nil
	})
	return err
}

func (c *sessionCache) ClaimCompletion(ctx context.Context, id, submissionID string) (bool, error) {
	return c.client.SetNX(ctx, c.completedKey(id), submissionID, c.ttl).Result()
}

func (c *sessionCache) ReleaseCompletion(ctx context.Context, id string) error {
	return c.client.Del(ctx, c.completedKey(id)).Err()
}

func (c *sessionCache) MarkCompleted(ctx context.Context, id, submissionID string, at time.Time) error {
	meta, err := c.getMeta(ctx, id)
	if err != nil {
		return err
	}
	if meta == nil {
		return fmt.Errorf("session %s not found", id)
	}
	meta.CompletedAt = &at
	meta.SubmissionID = submissionID
	return c.setMeta(ctx, meta)
}

func (c *sessionCache) Delete(ctx context.Context, id string) error {
	return c.client.Del(ctx, c.metaKey(id), c.responsesKey(id), c.completedKey(id)).Err()
}

func (c *sessionCache) setMeta(ctx context.Context, meta *sessionMeta) error {
	data, err := json.Marshal(meta)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.metaKey(meta.ID), data, c.ttl).Err()
}

func (c *sessionCache) getMeta(ctx context.Context, id string) (*sessionMeta, error) {
	data, err := c.client.Get(ctx, c.metaKey(id)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var meta sessionMeta
	if err := json.Unmarshal([]byte(data), &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}
