package reader

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// LastRead is the transient view of a reader's position in a novel.
type LastRead struct {
	UserID        string    `json:"user_id"`
	NovelID       int64     `json:"novel_id"`
	ChapterNumber int       `json:"chapter_number"`
	ReadAt        time.Time `json:"read_at"`
}

// ProgressRedisCache keeps last-read pointers in Redis hashes so the hot
// "continue reading" path avoids the database. Entries expire after the
// configured TTL.
type ProgressRedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewProgressRedisCache(addr, password string, ttl time.Duration) (*ProgressRedisCache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &ProgressRedisCache{client: rdb, ttl: ttl}, nil
}

func lastReadKey(userID string, novelID int64) string {
	return fmt.Sprintf("lastread:user:%s:novel:%d", userID, novelID)
}

// SaveLastRead upserts the cached pointer and refreshes its TTL.
func (c *ProgressRedisCache) SaveLastRead(ctx context.Context, data *LastRead) error {
	if c == nil || c.client == nil {
		// cache disabled, no-op
		return nil
	}
	key := lastReadKey(data.UserID, data.NovelID)

	fields := map[string]any{
		"user_id":        data.UserID,
		"novel_id":       data.NovelID,
		"chapter_number": data.ChapterNumber,
		"read_at":        data.ReadAt.Format(time.RFC3339Nano),
	}

	if err := c.client.HSet(ctx, key, fields).Err(); err != nil {
		return err
	}
	return c.client.Expire(ctx, key, c.ttl).Err()
}

// GetLastRead returns the cached pointer, or nil on a miss.
func (c *ProgressRedisCache) GetLastRead(ctx context.Context, userID string, novelID int64) (*LastRead, error) {
	if c == nil || c.client == nil {
		return nil, nil
	}
	fields, err := c.client.HGetAll(ctx, lastReadKey(userID, novelID)).Result()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, nil // miss
	}

	data := &LastRead{UserID: userID, NovelID: novelID}
	if ch, ok := fields["chapter_number"]; ok {
		n, err := strconv.Atoi(ch)
		if err != nil {
			return nil, fmt.Errorf("invalid chapter_number in cache: %w", err)
		}
		data.ChapterNumber = n
	}
	if ts, ok := fields["read_at"]; ok {
		data.ReadAt, _ = time.Parse(time.RFC3339Nano, ts)
	}
	return data, nil
}

// DeleteLastRead drops the cached pointer, e.g. when a library entry is
// removed.
func (c *ProgressRedisCache) DeleteLastRead(ctx context.Context, userID string, novelID int64) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Del(ctx, lastReadKey(userID, novelID)).Err()
}

func (c *ProgressRedisCache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}
