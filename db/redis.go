// db/redis.go
package db

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	logger "github.com/MichaelGetu-git/Security-Project/logging"
	"github.com/MichaelGetu-git/Security-Project/model"
)

var (
	RedisClient redis.UniversalClient
	// encryptionKey is empty when cached profiles are stored in plain JSON.
	encryptionKey []byte
)

func InitRedis(ctx context.Context) error {
	client := redis.NewClient(&redis.Options{
		Addr:         viper.GetString("redis.addr"),
		Password:     viper.GetString("redis.password"),
		DB:           viper.GetInt("redis.db"),
		DialTimeout:  viper.GetDuration("redis.dialTimeout"),
		ReadTimeout:  viper.GetDuration("redis.readTimeout"),
		WriteTimeout: viper.GetDuration("redis.writeTimeout"),
		PoolSize:     viper.GetInt("redis.poolSize"),
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := client.Ping(pingCtx).Result(); err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	if err := SetEncryptionKey(viper.GetString("redis.encryptionKey")); err != nil {
		return err
	}

	RedisClient = client
	logger.Info("Successfully connected to Redis", zap.Bool("encrypted", len(encryptionKey) > 0))
	return nil
}

// SetEncryptionKey enables AES-256-GCM for cached values. An empty key disables it.
func SetEncryptionKey(key string) error {
	if key == "" {
		encryptionKey = nil
		return nil
	}
	if len(key) != 32 {
		return fmt.Errorf("invalid encryption key length: must be 32 bytes")
	}
	encryptionKey = []byte(key)
	return nil
}

func CloseRedis() {
	if RedisClient != nil {
		if err := RedisClient.Close(); err != nil {
			logger.Error("Error closing Redis connection", zap.Error(err))
		}
	}
}

func encrypt(plaintext []byte) ([]byte, error) {
	block, err := aes.NewCipher(encryptionKey)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err = io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

func decrypt(ciphertext []byte) ([]byte, error) {
	block, err := aes.NewCipher(encryptionKey)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	nonceSize := gcm.NonceSize()
	if len(ciphertext) < nonceSize {
		return nil, fmt.Errorf("ciphertext too short")
	}
	nonce, ciphertext := ciphertext[:nonceSize], ciphertext[nonceSize:]
	return gcm.Open(nil, nonce, ciphertext, nil)
}

func sealValue(plain []byte) (string, error) {
	if len(encryptionKey) == 0 {
		return string(plain), nil
	}
	sealed, err := encrypt(plain)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(sealed), nil
}

func openValue(stored string) ([]byte, error) {
	if len(encryptionKey) == 0 {
		return []byte(stored), nil
	}
	sealed, err := base64.StdEncoding.DecodeString(stored)
	if err != nil {
		return nil, err
	}
	return decrypt(sealed)
}

func userKey(userID int64) string {
	return fmt.Sprintf("user:%d", userID)
}

// CacheUser stores the decision subject for userID. Only identity, roles and
// department are cached; grants and policies are always read fresh.
func CacheUser(ctx context.Context, user *model.User) error {
	userJSON, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to marshal user: %w", err)
	}

	value, err := sealValue(userJSON)
	if err != nil {
		return fmt.Errorf("failed to encrypt user: %w", err)
	}

	defaultTTL := viper.GetDuration("redis.defaultCacheTTL")
	if err = RedisClient.Set(ctx, userKey(user.ID), value, defaultTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache user: %w", err)
	}

	logger.Debug("User cached successfully", zap.Int64("userID", user.ID))
	return nil
}

func DeleteCachedUser(ctx context.Context, userID int64) error {
	if err := RedisClient.Del(ctx, userKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to delete user from cache: %w", err)
	}
	logger.Debug("User deleted from cache", zap.Int64("userID", userID))
	return nil
}

// GetCachedUser returns nil, nil on a cache miss.
func GetCachedUser(ctx context.Context, userID int64) (*model.User, error) {
	stored, err := RedisClient.Get(ctx, userKey(userID)).Result()
	if err == redis.Nil {
		logger.Debug("User not found in cache", zap.Int64("userID", userID))
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get user from cache: %w", err)
	}

	userJSON, err := openValue(stored)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt user: %w", err)
	}

	var user model.User
	if err = json.Unmarshal(userJSON, &user); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}

	logger.Debug("User retrieved from cache", zap.Int64("userID", userID))
	return &user, nil
}

// RateLimit is a sliding-window counter over a sorted set.
func RateLimit(ctx context.Context, key string, limit int, per time.Duration) (bool, error) {
	pipe := RedisClient.Pipeline()
	now := time.Now().UnixNano()
	key = fmt.Sprintf("ratelimit:%s", key)

	pipe.ZRemRangeByScore(ctx, key, "0", fmt.Sprintf("%d", now-(per.Nanoseconds())))
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now), Member: now})
	card := pipe.ZCard(ctx, key)
	pipe.Expire(ctx, key, per)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("failed to execute rate limit commands: %w", err)
	}

	count := card.Val()
	allowed := count <= int64(limit)
	logger.Debug("Rate limit check",
		zap.String("key", key),
		zap.Int64("count", count),
		zap.Int("limit", limit),
		zap.Bool("allowed", allowed))
	return allowed, nil
}

func LockResource(ctx context.Context, resourceName string, ttl time.Duration) (bool, error) {
	key := fmt.Sprintf("lock:%s", resourceName)
	locked, err := RedisClient.SetNX(ctx, key, "locked", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire lock: %w", err)
	}
	logger.Debug("Lock acquisition attempt",
		zap.String("resource", resourceName),
		zap.Bool("locked", locked))
	return locked, nil
}

func UnlockResource(ctx context.Context, resourceName string) error {
	key := fmt.Sprintf("lock:%s", resourceName)
	if err := RedisClient.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to release lock: %w", err)
	}
	logger.Debug("Lock released", zap.String("resource", resourceName))
	return nil
}
