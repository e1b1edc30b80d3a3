package migrations

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Run applies the schema for the persistent bounded contexts.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(&shipmentRecord{})
}

// Shipment schema mirrors the shipping Postgres adapter.
type shipmentRecord struct {
	ID           string         `gorm:"primaryKey;column:id;type:varchar(36)"`
	OrderID      string         `gorm:"column:order_id;index"`
	ProductIDs   pq.StringArray `gorm:"column:product_ids;type:text[]"`
	ShippingType string         `gorm:"column:shipping_type;type:varchar(64)"`
	DueDate      time.Time      `gorm:"column:due_date;index"`
	Status       string         `gorm:"column:status;type:varchar(32);index"`
	CreatedAt    time.Time      `gorm:"column:created_at"`
	UpdatedAt    time.Time      `gorm:"column:updated_at"`
}

func (shipmentRecord) TableName() string { return "shipments" }
