package database

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/spf13/viper"
)

// RedisOptions builds client options from config. REDIS_URL wins over host/port.
func RedisOptions() (*redis.Options, error) {
	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", "6379")
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)

	if url := viper.GetString("redis.url"); url != "" {
		return redis.ParseURL(url)
	}
	return &redis.Options{
		Addr:     viper.GetString("redis.host") + ":" + viper.GetString("redis.port"),
		Password: viper.GetString("redis.password"),
		DB:       viper.GetInt("redis.db"),
	}, nil
}

// InitRedis returns a connected client, or nil when Redis is disabled or unreachable.
// Callers fall back to in-process notifications and hole pointers.
func InitRedis() *redis.Client {
	if viper.IsSet("redis.enabled") && !viper.GetBool("redis.enabled") {
		log.Println("Redis disabled by config")
		return nil
	}

	opts, err := RedisOptions()
	if err != nil {
		log.Printf("Invalid Redis config, continuing without Redis: %v", err)
		return nil
	}
	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("Redis connection failed, continuing without Redis: %v", err)
		rdb.Close()
		return nil
	}

	log.Println("Redis connection established")
	return rdb
}
