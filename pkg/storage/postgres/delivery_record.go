package postgres

import "time"

// DeliveryRecord is one channel's outcome for one alert.
type DeliveryRecord struct {
	ID uint `gorm:"primaryKey"`

	RunID   string `gorm:"type:varchar(36);not null;index:idx_delivery_run"`
	Channel string `gorm:"type:varchar(32);not null"`

	TokenName string `gorm:"type:text;not null"`
	Address   string `gorm:"type:text;not null;index:idx_delivery_address"`

	OK    bool   `gorm:"not null"`
	Error string `gorm:"type:text"`

	DeliveredAt time.Time `gorm:"not null;index:idx_delivery_delivered_at"`

	RecordedAt time.Time `gorm:"autoCreateTime"`
}

// TableName overrides the default table name for GORM.
func (DeliveryRecord) TableName() string {
	return "delivery_record"
}
