package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gadget-scout/server/internal/agent/model"
	errx "github.com/gadget-scout/server/internal/core/error"
	logx "github.com/gadget-scout/server/pkg/logger"
)

// RedisConversationStore keeps session state in Redis so HTTP deployments can
// run more than one replica. Each session spreads across four keys: a list of
// record JSON blobs, a preferences blob, a sequence counter, and the theme.
// Every write touches the session TTL.
type RedisConversationStore struct {
	rdb      redis.Cmdable
	capacity int
	ttl      time.Duration
}

var _ model.ConversationStore = (*RedisConversationStore)(nil)

func NewRedisConversationStore(rdb redis.Cmdable, capacity int, ttl time.Duration) *RedisConversationStore {
	if capacity <= 0 {
		capacity = 10
	}
	return &RedisConversationStore{rdb: rdb, capacity: capacity, ttl: ttl}
}

func (r *RedisConversationStore) historyKey(sessionID string) string {
	return fmt.Sprintf("session:%s:history", sessionID)
}

func (r *RedisConversationStore) prefsKey(sessionID string) string {
	return fmt.Sprintf("session:%s:prefs", sessionID)
}

func (r *RedisConversationStore) seqKey(sessionID string) string {
	return fmt.Sprintf("session:%s:seq", sessionID)
}

func (r *RedisConversationStore) themeKey(sessionID string) string {
	return fmt.Sprintf("session:%s:theme", sessionID)
}

func (r *RedisConversationStore) touch(ctx context.Context, sessionID string) {
	if r.ttl <= 0 {
		return
	}
	for _, key := range []string{
		r.historyKey(sessionID), r.prefsKey(sessionID),
		r.seqKey(sessionID), r.themeKey(sessionID),
	} {
		if err := r.rdb.Expire(ctx, key, r.ttl).Err(); err != nil {
			logx.Warn().Err(err).Str("key", key).Msg("failed to refresh session TTL")
		}
	}
}

func (r *RedisConversationStore) Append(ctx context.Context, sessionID string, rec model.QueryRecord) (model.QueryRecord, error) {
	seq, err := r.rdb.Incr(ctx, r.seqKey(sessionID)).Result()
	if err != nil {
		logx.Error().Err(err).Str("sessionID", sessionID).Msg("failed to advance session sequence")
		return model.QueryRecord{}, errx.WrapRedis(err)
	}
	rec.SessionID = sessionID
	rec.Sequence = seq

	b, err := json.Marshal(rec)
	if err != nil {
		logx.Error().Err(err).Str("sessionID", sessionID).Msg("failed to marshal query record")
		return model.QueryRecord{}, fmt.Errorf("marshal query record: %w", err)
	}

	key := r.historyKey(sessionID)
	if err := r.rdb.RPush(ctx, key, b).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to push query record to redis")
		return model.QueryRecord{}, errx.WrapRedis(err)
	}
	// evict beyond capacity, oldest first
	if err := r.rdb.LTrim(ctx, key, int64(-r.capacity), -1).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to trim session history")
		return model.QueryRecord{}, errx.WrapRedis(err)
	}
	r.touch(ctx, sessionID)
	return rec, nil
}

func (r *RedisConversationStore) Recent(ctx context.Context, sessionID string, n int) ([]model.QueryRecord, error) {
	if n <= 0 {
		return nil, nil
	}
	key := r.historyKey(sessionID)
	rows, err := r.rdb.LRange(ctx, key, int64(-n), -1).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		logx.Error().Err(err).Str("key", key).Msg("failed to load session history from redis")
		return nil, errx.WrapRedis(err)
	}

	out := make([]model.QueryRecord, 0, len(rows))
	for i, s := range rows {
		var rec model.QueryRecord
		if err := json.Unmarshal([]byte(s), &rec); err != nil {
			logx.Error().Err(err).Str("sessionID", sessionID).Int("index", i).Msg("failed to unmarshal query record")
			return nil, fmt.Errorf("unmarshal query record at index %d: %w", i, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

func (r *RedisConversationStore) EntitiesInWindow(ctx context.Context, sessionID string, n int) ([]string, error) {
	recent, err := r.Recent(ctx, sessionID, n)
	if err != nil {
		return nil, err
	}
	return entityUnion(recent), nil
}

func (r *RedisConversationStore) Preferences(ctx context.Context, sessionID string) (model.Preferences, error) {
	raw, err := r.rdb.Get(ctx, r.prefsKey(sessionID)).Result()
	if err != nil {
		if err == redis.Nil {
			return model.Preferences{}, nil
		}
		logx.Error().Err(err).Str("sessionID", sessionID).Msg("failed to load preferences from redis")
		return model.Preferences{}, errx.WrapRedis(err)
	}
	var prefs model.Preferences
	if err := json.Unmarshal([]byte(raw), &prefs); err != nil {
		logx.Error().Err(err).Str("sessionID", sessionID).Msg("failed to unmarshal preferences")
		return model.Preferences{}, fmt.Errorf("unmarshal preferences: %w", err)
	}
	return prefs, nil
}

func (r *RedisConversationStore) MergePreferences(ctx context.Context, sessionID string, delta model.PreferenceDelta) (model.Preferences, error) {
	prefs, err := r.Preferences(ctx, sessionID)
	if err != nil {
		return model.Preferences{}, err
	}
	prefs.Apply(delta)

	b, err := json.Marshal(prefs)
	if err != nil {
		logx.Error().Err(err).Str("sessionID", sessionID).Msg("failed to marshal preferences")
		return model.Preferences{}, fmt.Errorf("marshal preferences: %w", err)
	}
	if err := r.rdb.Set(ctx, r.prefsKey(sessionID), b, r.ttl).Err(); err != nil {
		logx.Error().Err(err).Str("sessionID", sessionID).Msg("failed to store preferences in redis")
		return model.Preferences{}, errx.WrapRedis(err)
	}
	return prefs, nil
}

func (r *RedisConversationStore) Theme(ctx context.Context, sessionID string) (model.QueryType, error) {
	raw, err := r.rdb.Get(ctx, r.themeKey(sessionID)).Result()
	if err != nil {
		if err == redis.Nil {
			return model.QueryGeneral, nil
		}
		logx.Error().Err(err).Str("sessionID", sessionID).Msg("failed to load theme from redis")
		return model.QueryGeneral, errx.WrapRedis(err)
	}
	if raw == "" {
		return model.QueryGeneral, nil
	}
	return model.QueryType(raw), nil
}

func (r *RedisConversationStore) SetTheme(ctx context.Context, sessionID string, theme model.QueryType) error {
	if err := r.rdb.Set(ctx, r.themeKey(sessionID), string(theme), r.ttl).Err(); err != nil {
		logx.Error().Err(err).Str("sessionID", sessionID).Msg("failed to store theme in redis")
		return errx.WrapRedis(err)
	}
	return nil
}

func (r *RedisConversationStore) AttachToolUsage(ctx context.Context, sessionID string, toolNames []string) error {
	key := r.historyKey(sessionID)
	rows, err := r.rdb.LRange(ctx, key, -1, -1).Result()
	if err != nil {
		if err == redis.Nil {
			return nil
		}
		logx.Error().Err(err).Str("key", key).Msg("failed to load latest query record from redis")
		return errx.WrapRedis(err)
	}
	if len(rows) == 0 {
		return nil
	}

	var rec model.QueryRecord
	if err := json.Unmarshal([]byte(rows[0]), &rec); err != nil {
		logx.Error().Err(err).Str("sessionID", sessionID).Msg("failed to unmarshal latest query record")
		return fmt.Errorf("unmarshal query record: %w", err)
	}
	// tool usage is recorded once per query
	if len(rec.ToolsUsed) > 0 {
		return nil
	}
	rec.ToolsUsed = append([]string(nil), toolNames...)

	b, err := json.Marshal(rec)
	if err != nil {
		logx.Error().Err(err).Str("sessionID", sessionID).Msg("failed to marshal query record")
		return fmt.Errorf("marshal query record: %w", err)
	}
	if err := r.rdb.LSet(ctx, key, -1, b).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to update latest query record in redis")
		return errx.WrapRedis(err)
	}
	r.touch(ctx, sessionID)
	return nil
}

func (r *RedisConversationStore) QueryCount(ctx context.Context, sessionID string) (int64, error) {
	n, err := r.rdb.Get(ctx, r.seqKey(sessionID)).Int64()
	if err != nil {
		if err == redis.Nil {
			return 0, nil
		}
		logx.Error().Err(err).Str("sessionID", sessionID).Msg("failed to load session query count from redis")
		return 0, errx.WrapRedis(err)
	}
	return n, nil
}
