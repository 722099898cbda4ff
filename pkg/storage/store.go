package storage

import "context"

// DeliveryStore records delivery outcomes. Runs only write to it; nothing
// read back from a store changes which tokens get alerted.
type DeliveryStore interface {
	SaveDeliveries(ctx context.Context, deliveries []Delivery) error
}
