package collection

import (
	"context"
	"encoding/json"

	"github.com/KirkDiggler/ecosnap-api/internal/errors"
	redisclient "github.com/KirkDiggler/ecosnap-api/internal/redis"
)

const collectionKeyPrefix = "ecosnap:collection:"

// Config holds the configuration for the Redis repository
type Config struct {
	Client redisclient.Client
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.Client == nil {
		vb.RequiredField("Client")
	}
	return vb.Build()
}

type redisRepository struct {
	client redisclient.Client
}

// NewRedisRepository creates a Redis-backed collection repository.
// Documents are stored as JSON without expiry.
func NewRedisRepository(cfg *Config) (Repository, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &redisRepository{client: cfg.Client}, nil
}

// Ensure redisRepository implements Repository
var _ Repository = (*redisRepository)(nil)

func (r *redisRepository) Load(ctx context.Context, input LoadInput) (*LoadOutput, error) {
	if input.PlayerID == "" {
		return nil, errors.InvalidArgument(errPlayerIDEmpty)
	}

	key := buildKey(input.PlayerID)
	raw, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redisclient.Nil {
			return nil, errors.NotFoundf("no collection found for player %s", input.PlayerID)
		}
		return nil, errors.Wrapf(err, "failed to get collection from Redis")
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeDataLoss, "collection document is corrupt").
			WithMeta("key", key)
	}
	if err := checkDocument(&doc); err != nil {
		return nil, err
	}

	return &LoadOutput{Document: &doc}, nil
}

func (r *redisRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	if err := validateSave(input); err != nil {
		return nil, err
	}

	data, err := json.Marshal(input.Document)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal collection")
	}

	if err := r.client.Set(ctx, buildKey(input.PlayerID), data, 0).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to store collection in Redis")
	}

	return &SaveOutput{}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.PlayerID == "" {
		return nil, errors.InvalidArgument(errPlayerIDEmpty)
	}

	deleted, err := r.client.Del(ctx, buildKey(input.PlayerID)).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete collection from Redis")
	}

	return &DeleteOutput{Existed: deleted > 0}, nil
}

func buildKey(playerID string) string {
	return collectionKeyPrefix + playerID
}
