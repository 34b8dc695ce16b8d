package fallback

import (
	"context"
	"encoding/json"
	"fmt"

	"hospital-portal/internal/domain/entity"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// RedisList keeps each appointment as one JSON element of a Redis list, so an
// append is a single atomic RPUSH.
type RedisList struct {
	client *redis.Client
	key    string
	log    *logrus.Logger
}

func NewRedisList(client *redis.Client, key string, log *logrus.Logger) *RedisList {
	return &RedisList{client: client, key: key, log: log}
}

func (l *RedisList) Load(ctx context.Context) ([]entity.Appointment, error) {
	items, err := l.client.LRange(ctx, l.key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("read fallback list %s: %w", l.key, err)
	}

	appointments := make([]entity.Appointment, 0, len(items))
	for i, item := range items {
		var a entity.Appointment
		if err := json.Unmarshal([]byte(item), &a); err != nil {
			l.log.Warnf("Skipping malformed fallback appointment %d in %s: %v", i, l.key, err)
			continue
		}
		appointments = append(appointments, a)
	}
	return appointments, nil
}

func (l *RedisList) Append(ctx context.Context, appointment entity.Appointment) error {
	payload, err := json.Marshal(appointment)
	if err != nil {
		return err
	}
	if err := l.client.RPush(ctx, l.key, payload).Err(); err != nil {
		return fmt.Errorf("append fallback list %s: %w", l.key, err)
	}
	return nil
}
