package redis

import (
	"VyapaarAI/internal/entity"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const billKeyPrefix = "bill:"

var ErrBillNotFound = errors.New("bill not found")

type IRedis interface {
	SetBill(ctx context.Context, id string, bill entity.Bill, expiration time.Duration) error
	GetBill(ctx context.Context, id string) (entity.Bill, error)
	Close() error
}

type redisClient struct {
	client *redis.Client
	log    *logrus.Logger
}

// New connects to REDIS_ADDRESS. The second return is false when no address
// is configured.
func New(log *logrus.Logger) (IRedis, bool) {
	redisAddr := os.Getenv("REDIS_ADDRESS")
	if redisAddr == "" {
		return nil, false
	}

	db, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	log.Info(fmt.Sprintf("Connecting to Redis at %s...", redisAddr))

	client := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Error(fmt.Sprintf("Failed to connect to Redis: %v", err))
	} else {
		log.Info("Successfully connected to Redis")
	}

	return NewWithClient(client, log), true
}

func NewWithClient(client *redis.Client, log *logrus.Logger) IRedis {
	return &redisClient{client: client, log: log}
}

func (r *redisClient) SetBill(ctx context.Context, id string, bill entity.Bill, expiration time.Duration) error {
	payload, err := jsoniter.Marshal(bill)
	if err != nil {
		return fmt.Errorf("marshal bill: %w", err)
	}

	if err := r.client.Set(ctx, billKeyPrefix+id, payload, expiration).Err(); err != nil {
		r.log.Error(fmt.Sprintf("Error caching bill %s: %v", id, err))
		return err
	}

	r.log.Debug(fmt.Sprintf("Cached bill %s for %v", id, expiration))
	return nil
}

func (r *redisClient) GetBill(ctx context.Context, id string) (entity.Bill, error) {
	val, err := r.client.Get(ctx, billKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return entity.Bill{}, ErrBillNotFound
	} else if err != nil {
		r.log.Error(fmt.Sprintf("Error getting bill %s: %v", id, err))
		return entity.Bill{}, err
	}

	var bill entity.Bill
	if err := jsoniter.Unmarshal(val, &bill); err != nil {
		return entity.Bill{}, fmt.Errorf("unmarshal bill: %w", err)
	}
	if bill.Items == nil {
		bill.Items = []entity.BillLine{}
	}

	return bill, nil
}

func (r *redisClient) Close() error {
	return r.client.Close()
}
