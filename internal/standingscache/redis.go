// Package standingscache provides a read-through cache of flat standings
// in front of the engine's recompute-from-scratch C1; group standings are
// not cached (ComputeStandings/ComputeGroupStandings are cheap, but a read-heavy
// standings-page endpoint shouldn't recompute on every request). Adapted
// from Bengo-Hub-game-stats-api's internal/infrastructure/cache/redis_client.go
// wrapper style.
package standingscache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/braccet/tournament-engine/internal/domain"
)

// TTLStandings is how long a cached standings page survives before a reader
// forces a recompute, independent of invalidation on write.
const TTLStandings = 30 * time.Second

// Cache wraps a redis client scoped to standings lookups.
type Cache struct {
	client *redis.Client
}

// New connects to redisURL and verifies the connection.
func New(redisURL string) (*Cache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return &Cache{client: client}, nil
}

// GetStandings returns the cached standings for a tournament, or a cache
// miss (nil, nil).
func (c *Cache) GetStandings(ctx context.Context, tournamentID domain.TournamentID) ([]domain.StandingEntry, error) {
	data, err := c.client.Get(ctx, standingsKey(tournamentID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get standings cache: %w", err)
	}
	var entries []domain.StandingEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("unmarshal cached standings: %w", err)
	}
	return entries, nil
}

// PutStandings stores the standings for a tournament with TTLStandings.
func (c *Cache) PutStandings(ctx context.Context, tournamentID domain.TournamentID, entries []domain.StandingEntry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshal standings: %w", err)
	}
	return c.client.Set(ctx, standingsKey(tournamentID), data, TTLStandings).Err()
}

// Invalidate drops the cached standings for a tournament. Called by the
// command-submission surface right after any command mutates that
// tournament, so a stale entry never outlives a write by more than the
// in-flight request.
func (c *Cache) Invalidate(ctx context.Context, tournamentID domain.TournamentID) error {
	return c.client.Del(ctx, standingsKey(tournamentID)).Err()
}

// Close releases the underlying connection pool.
func (c *Cache) Close() error {
	return c.client.Close()
}

func standingsKey(tournamentID domain.TournamentID) string {
	return fmt.Sprintf("tournament-engine:standings:%s", tournamentID)
}
