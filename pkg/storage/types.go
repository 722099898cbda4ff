package storage

import "time"

// Delivery is the outcome of one alert on one channel.
type Delivery struct {
	RunID       string
	TokenName   string
	Address     string
	Channel     string
	OK          bool
	Error       string
	DeliveredAt time.Time
}
