package database

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDBConfig_DSN(t *testing.T) {
	t.Run("fields", func(t *testing.T) {
		cfg := &DBConfig{Host: "db", Port: "5432", User: "golf", Password: "pw", Name: "sideputt", SSLMode: "disable"}
		assert.Equal(t, "host=db port=5432 user=golf password=pw dbname=sideputt sslmode=disable", cfg.DSN())
	})

	t.Run("url wins", func(t *testing.T) {
		cfg := &DBConfig{URL: "postgres://golf@db/sideputt", Host: "ignored"}
		assert.Equal(t, "postgres://golf@db/sideputt", cfg.DSN())
	})
}

func TestGetConfig_Defaults(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	cfg := GetConfig()
	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, "sideputt", cfg.Name)
	assert.Equal(t, 25, cfg.MaxOpenConns)
	assert.Empty(t, cfg.URL)
}

func TestRedisOptions(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	opts, err := RedisOptions()
	require.NoError(t, err)
	assert.Equal(t, "localhost:6379", opts.Addr)

	viper.Set("redis.url", "redis://:secret@cache:6380/2")
	opts, err = RedisOptions()
	require.NoError(t, err)
	assert.Equal(t, "cache:6380", opts.Addr)
	assert.Equal(t, "secret", opts.Password)
	assert.Equal(t, 2, opts.DB)
}

func TestInitRedis_Disabled(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	viper.Set("redis.enabled", false)
	assert.Nil(t, InitRedis())
}
