package cache

import (
	"context"
	"fmt"
	"net"
	"time"

	"hospital-portal/config"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const connectTimeout = 5 * time.Second

// NewRedisClient connects to the Redis instance backing the fallback
// appointment list and the appointment notification channel. The returned
// client has answered a PING.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig, log *logrus.Logger) (*redis.Client, error) {
	addr := net.JoinHostPort(cfg.Host, cfg.Port)
	client := redis.NewClient(&redis.Options{
		Addr:        addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: connectTimeout,
	})

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", addr, err)
	}

	log.WithFields(logrus.Fields{
		"addr":    addr,
		"db":      cfg.DB,
		"list":    cfg.AppointmentsKey,
		"channel": cfg.Channel,
	}).Info("Connected to Redis")

	return client, nil
}
