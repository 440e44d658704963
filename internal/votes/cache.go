package votes

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// rdb is nil when REDIS_URL is unset; every cache call then degrades to a
// miss and the counts come straight from Postgres.
var rdb *redis.Client

const countsTTL = 60 * time.Second

func InitCache() {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		log.Println("[votes] REDIS_URL not set, counts cache disabled")
		return
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		log.Printf("[votes] bad REDIS_URL, counts cache disabled: %v", err)
		return
	}

	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("[votes] redis unreachable, counts cache disabled: %v", err)
		return
	}

	rdb = client
	log.Println("[votes] counts cache enabled")
}

func countsKey(kind Kind, itemID string) string {
	return fmt.Sprintf("votes:%s:%s", kind, itemID)
}

func cachedCounts(ctx context.Context, kind Kind, itemID string) (Counts, bool) {
	if rdb == nil {
		return Counts{}, false
	}
	raw, err := rdb.Get(ctx, countsKey(kind, itemID)).Bytes()
	if err != nil {
		return Counts{}, false
	}
	var c Counts
	if err := json.Unmarshal(raw, &c); err != nil {
		return Counts{}, false
	}
	return c, true
}

func storeCounts(ctx context.Context, kind Kind, itemID string, c Counts) {
	if rdb == nil {
		return
	}
	raw, err := json.Marshal(c)
	if err != nil {
		return
	}
	if err := rdb.Set(ctx, countsKey(kind, itemID), raw, countsTTL).Err(); err != nil {
		log.Printf("[votes] cache set failed: %v", err)
	}
}

func invalidateCounts(ctx context.Context, kind Kind, itemID string) {
	if rdb == nil {
		return
	}
	if err := rdb.Del(ctx, countsKey(kind, itemID)).Err(); err != nil {
		log.Printf("[votes] cache invalidate failed: %v", err)
	}
}
