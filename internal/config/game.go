package config

import (
	"os"
	"strconv"
	"time"
)

type GameConfig struct {
	JoinCodeLength        int
	MinJoinCodeLength     int
	JoinCodeAttempts      int
	JoinURLBase           string
	HolePointerTTL        time.Duration
	InviteCacheTTL        time.Duration
	ViewIdleTTL           time.Duration
	ViewSweepInterval     time.Duration
	ChannelPrefix         string
	CardInsertRetries     int
	MaxPutts              int
	DefaultBuyIn          int64
	DefaultThreePuttValue int64
	DefaultChipValue      int64
}

func LoadGameConfig() *GameConfig {
	return &GameConfig{
		JoinCodeLength:        getEnvAsInt("JOIN_CODE_LENGTH", 6),
		MinJoinCodeLength:     getEnvAsInt("JOIN_CODE_MIN_LENGTH", 4),
		JoinCodeAttempts:      getEnvAsInt("JOIN_CODE_ATTEMPTS", 5),
		JoinURLBase:           getEnv("JOIN_URL_BASE", "http://localhost:5173/join"),
		HolePointerTTL:        getEnvAsDuration("HOLE_POINTER_TTL", 7*24*time.Hour),
		InviteCacheTTL:        getEnvAsDuration("INVITE_CACHE_TTL", 24*time.Hour),
		ViewIdleTTL:           getEnvAsDuration("VIEW_IDLE_TTL", 30*time.Minute),
		ViewSweepInterval:     getEnvAsDuration("VIEW_SWEEP_INTERVAL", 5*time.Minute),
		ChannelPrefix:         getEnv("CHANGE_CHANNEL_PREFIX", "sideputt"),
		CardInsertRetries:     getEnvAsInt("CARD_INSERT_RETRIES", 3),
		MaxPutts:              getEnvAsInt("MAX_PUTTS", 20),
		DefaultBuyIn:          getEnvAsInt64("DEFAULT_BUY_IN", 500),
		DefaultThreePuttValue: getEnvAsInt64("DEFAULT_THREE_PUTT_VALUE", 100),
		DefaultChipValue:      getEnvAsInt64("DEFAULT_CHIP_VALUE", 500),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsInt64(key string, defaultVal int64) int64 {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.ParseInt(val, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if duration, err := time.ParseDuration(val); err == nil {
			return duration
		}
	}
	return defaultVal
}
