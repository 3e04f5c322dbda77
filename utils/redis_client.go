package utils

import (
	"context"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fitquest/fitquest/config"
)

var (
	redisClient    *redis.Client
	redisReachable bool
	redisOnce      sync.Once
)

// GetRedis returns a singleton Redis client, or nil when Redis was not
// reachable at first use. Callers fall back to in-memory state in that case,
// which is fine for the single-instance deployments this app targets.
func GetRedis() *redis.Client {
	redisOnce.Do(func() {
		cfg := config.Get()
		client := redis.NewClient(&redis.Options{
			Addr:         net.JoinHostPort(cfg.RedisHost, strconv.Itoa(cfg.RedisPort)),
			Password:     cfg.RedisPassword,
			DB:           cfg.RedisDB,
			DialTimeout:  3 * time.Second,
			ReadTimeout:  2 * time.Second,
			WriteTimeout: 2 * time.Second,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			if Sugar != nil {
				Sugar.Warnf("redis unreachable at %s:%d, using in-memory fallback: %v", cfg.RedisHost, cfg.RedisPort, err)
			}
			_ = client.Close()
			return
		}
		redisClient = client
		redisReachable = true
	})
	if !redisReachable {
		return nil
	}
	return redisClient
}
