package postgres

import (
	"context"
	"time"

	"tokenwatch/pkg/storage"
)

// SaveDeliveries inserts one row per delivery in a single statement.
func (p *PostgresClient) SaveDeliveries(ctx context.Context, deliveries []storage.Delivery) error {
	if len(deliveries) == 0 {
		return nil
	}

	records := make([]DeliveryRecord, len(deliveries))
	for i, d := range deliveries {
		records[i] = ToDeliveryRecord(d)
	}

	return p.DB.WithContext(ctx).Create(&records).Error
}

// DeleteDeliveriesBefore prunes journal rows older than before.
func (p *PostgresClient) DeleteDeliveriesBefore(ctx context.Context, before time.Time) (int64, error) {
	tx := p.DB.WithContext(ctx).
		Where("delivered_at < ?", before).
		Delete(&DeliveryRecord{})
	return tx.RowsAffected, tx.Error
}

// ToDeliveryRecord converts a storage.Delivery into a row for insertion.
func ToDeliveryRecord(d storage.Delivery) DeliveryRecord {
	return DeliveryRecord{
		RunID:       d.RunID,
		Channel:     d.Channel,
		TokenName:   d.TokenName,
		Address:     d.Address,
		OK:          d.OK,
		Error:       d.Error,
		DeliveredAt: d.DeliveredAt.UTC(),
	}
}
