// Command paymentsim is a stand-in for the payment collaborator. It
// listens for created orders and, after a random delay, publishes a
// confirmed or cancelled verdict with even odds. Useful for exercising the
// order service locally without a real payment provider.
package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"orderflow/internal/adapters/out/redisbus"
	"orderflow/internal/core/application/lifecycle"
	"orderflow/internal/core/domain/model/order"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	"github.com/redis/go-redis/v9"
)

type simulator struct {
	bus          *redisbus.Bus
	verdictTopic string
	maxDelay     time.Duration
	logger       *slog.Logger
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Infof("No .env file loaded: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	redisClient := redis.NewClient(&redis.Options{
		Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
	})

	sim := &simulator{
		bus:          redisbus.NewBus(redisClient, logger),
		verdictTopic: getEnv("PAYMENT_VERIFIED_TOPIC", "payment.verified"),
		maxDelay:     time.Duration(getEnvInt("PAYMENT_MAX_DELAY_MS", 60000)) * time.Millisecond,
		logger:       logger.With("component", "payment_simulator"),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	createdTopic := getEnv("ORDER_CREATED_TOPIC", "order.created")
	if err := sim.bus.Subscribe(ctx, createdTopic, sim.handleOrderCreated); err != nil {
		log.Fatalf("Failed to subscribe to %s: %v", createdTopic, err)
	}

	sim.logger.Info("payment simulator started",
		"ordersTopic", createdTopic,
		"verdictTopic", sim.verdictTopic,
		"maxDelay", sim.maxDelay,
	)

	<-ctx.Done()
	sim.logger.Info("payment simulator stopped")

	if err := redisClient.Close(); err != nil {
		sim.logger.Error("redis close failed", "error", err)
	}
}

// handleOrderCreated schedules a verdict for one created order. Each order
// gets its own goroutine so a slow verdict never delays the next order.
func (s *simulator) handleOrderCreated(ctx context.Context, payload []byte) error {
	var msg lifecycle.StatusMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		s.logger.Error("undecodable order message dropped", "error", err)
		return nil
	}

	go s.deliverVerdict(ctx, msg.ID)
	return nil
}

func (s *simulator) deliverVerdict(ctx context.Context, orderID string) {
	var delay time.Duration
	if s.maxDelay > 0 {
		delay = time.Duration(rand.Int63n(int64(s.maxDelay)))
	}

	select {
	case <-ctx.Done():
		return
	case <-time.After(delay):
	}

	verdict := order.EventConfirmed
	if rand.Intn(2) == 0 {
		verdict = order.EventCancelled
	}

	payload, err := json.Marshal(lifecycle.StatusMessage{
		ID:     orderID,
		Status: verdict.String(),
	})
	if err != nil {
		s.logger.Error("marshalling verdict failed", "orderId", orderID, "error", err)
		return
	}

	if err := s.bus.Publish(ctx, s.verdictTopic, payload); err != nil {
		s.logger.Error("publishing verdict failed", "orderId", orderID, "error", err)
		return
	}

	s.logger.Info("verdict published",
		"orderId", orderID,
		"verdict", verdict.String(),
		"delay", delay,
	)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		log.Fatalf("Environment variable %s must be an integer, got %q", key, raw)
	}
	return value
}
