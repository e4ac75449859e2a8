package hexcrawl

import (
	"context"
	"encoding/json"

	redis "github.com/redis/go-redis/v9"

	"github.com/wildlands/hexcrawl-api/internal/entities"
	"github.com/wildlands/hexcrawl-api/internal/errors"
	redisclient "github.com/wildlands/hexcrawl-api/internal/redis"
)

const (
	hexcrawlKeyPrefix = "hexcrawl:"

	errStateNil   = "hexcrawl state cannot be nil"
	errIDEmpty    = "hexcrawl ID cannot be empty"
	errCorrupt    = "corrupt hexcrawl state"
	errMarshal    = "failed to marshal hexcrawl state"
	errStoreCheck = "failed to check hexcrawl existence"
)

type redisRepository struct {
	client redisclient.Client
}

// RedisConfig contains configuration for the Redis hexcrawl repository.
type RedisConfig struct {
	Client redisclient.Client
}

// Validate validates the RedisConfig.
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	return nil
}

// NewRedis creates a Redis-backed hexcrawl repository.
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &redisRepository{client: cfg.Client}, nil
}

func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if input.State == nil {
		return nil, errors.InvalidArgument(errStateNil)
	}
	if input.State.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	key := hexcrawlKeyPrefix + input.State.ID

	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return nil, errors.Wrap(err, errStoreCheck)
	}
	if exists > 0 {
		return nil, errors.AlreadyExistsf("hexcrawl with ID %s already exists", input.State.ID)
	}

	data, err := json.Marshal(input.State)
	if err != nil {
		return nil, errors.Wrap(err, errMarshal)
	}

	if err := r.client.Set(ctx, key, data, 0).Err(); err != nil {
		return nil, errors.Wrap(err, "failed to create hexcrawl")
	}

	return &CreateOutput{State: input.State}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	key := hexcrawlKeyPrefix + input.ID
	result, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("hexcrawl with ID %s not found", input.ID)
		}
		return nil, errors.Wrap(err, "failed to get hexcrawl")
	}

	state, err := decodeState([]byte(result), input.ID)
	if err != nil {
		return nil, err
	}

	return &GetOutput{State: state}, nil
}

func (r *redisRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	if input.State == nil {
		return nil, errors.InvalidArgument(errStateNil)
	}
	if input.State.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	key := hexcrawlKeyPrefix + input.State.ID

	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return nil, errors.Wrap(err, errStoreCheck)
	}
	if exists == 0 {
		return nil, errors.NotFoundf("hexcrawl with ID %s not found", input.State.ID)
	}

	data, err := json.Marshal(input.State)
	if err != nil {
		return nil, errors.Wrap(err, errMarshal)
	}

	if err := r.client.Set(ctx, key, data, 0).Err(); err != nil {
		return nil, errors.Wrap(err, "failed to update hexcrawl")
	}

	return &UpdateOutput{State: input.State}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errIDEmpty)
	}

	key := hexcrawlKeyPrefix + input.ID
	deleted, err := r.client.Del(ctx, key).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to delete hexcrawl")
	}
	if deleted == 0 {
		return nil, errors.NotFoundf("hexcrawl with ID %s not found", input.ID)
	}

	return &DeleteOutput{}, nil
}

// decodeState unmarshals and validates stored state. Corrupt state is a
// hard DataLoss failure: silently defaulting would destroy a GM's campaign
// history.
func decodeState(data []byte, id string) (*entities.HexcrawlState, error) {
	var state entities.HexcrawlState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeDataLoss, errCorrupt).
			WithMeta("hexcrawl_id", id)
	}
	if err := state.Validate(); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeDataLoss, errCorrupt).
			WithMeta("hexcrawl_id", id)
	}
	return &state, nil
}
