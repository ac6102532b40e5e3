package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ErrSlotBusy is returned when another request holds the lock for the same slot.
var ErrSlotBusy = errors.New("appointment slot is being booked")

// releaseSlotScript deletes the lock only if it still carries our token, so a
// lock that expired and was re-acquired by someone else is left alone.
var releaseSlotScript = redis.NewScript(`
	if redis.call('GET', KEYS[1]) == ARGV[1] then
		return redis.call('DEL', KEYS[1])
	end
	return 0
`)

const (
	RedisSlotKeyPrefix = "appointment:slot:"

	redisLockTimeout = 2 * time.Second
)

// SlotLocker serializes concurrent bookings of one doctor slot.
type SlotLocker interface {
	Acquire(ctx context.Context, doctorID uuid.UUID, date, clock string) (release func(), err error)
}

type RedisSlotLocker struct {
	redisClient *redis.Client
	log         *logrus.Logger
	ttl         time.Duration
}

func NewRedisSlotLocker(redisClient *redis.Client, log *logrus.Logger, ttl time.Duration) *RedisSlotLocker {
	if ttl <= 0 {
		ttl = 10 * time.Second
	}
	return &RedisSlotLocker{
		redisClient: redisClient,
		log:         log,
		ttl:         ttl,
	}
}

func SlotKey(doctorID uuid.UUID, date, clock string) string {
	return fmt.Sprintf("%s%s:%s:%s", RedisSlotKeyPrefix, doctorID, date, clock)
}

// Acquire takes the slot lock with SET NX. The returned release func is safe to call once.
func (l *RedisSlotLocker) Acquire(ctx context.Context, doctorID uuid.UUID, date, clock string) (func(), error) {
	key := SlotKey(doctorID, date, clock)
	token := uuid.New().String()

	ok, err := l.redisClient.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		l.log.Warnf("Failed to acquire slot lock %s: %+v", key, err)
		return nil, err
	}
	if !ok {
		return nil, ErrSlotBusy
	}

	release := func() {
		// The request context may already be cancelled here.
		releaseCtx, cancel := context.WithTimeout(context.Background(), redisLockTimeout)
		defer cancel()

		if err := releaseSlotScript.Run(releaseCtx, l.redisClient, []string{key}, token).Err(); err != nil {
			l.log.Warnf("Failed to release slot lock %s: %+v", key, err)
		}
	}
	return release, nil
}
