package cmd

import "time"

// Config carries everything the service reads from the environment.
type Config struct {
	HTTPPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	RedisAddr     string
	RedisPassword string

	OrderCreatedTopic    string
	PaymentVerifiedTopic string

	DeliveryDelayMs int
}

// DeliveryDelay is how long a confirmed order waits before it is
// considered deliveried.
func (c Config) DeliveryDelay() time.Duration {
	return time.Duration(c.DeliveryDelayMs) * time.Millisecond
}
