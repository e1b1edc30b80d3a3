package postgres

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/Apurer/go-gin-eshop/internal/domains/shipping/domain"
	"github.com/Apurer/go-gin-eshop/internal/domains/shipping/ports"
)

var (
	_ ports.Repository   = (*Repository)(nil)
	_ ports.StatusLister = (*Repository)(nil)
)

// Repository persists shipments in PostgreSQL using GORM. Schema is owned by platform/migrations.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// shipmentRecord maps the shipment aggregate to a relational table.
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

// CreateShipping inserts a shipment in the created state and returns its generated identifier.
func (r *Repository) CreateShipping(ctx context.Context, input ports.CreateShippingInput) (string, error) {
	if err := r.ensureDB(); err != nil {
		return "", err
	}
	record := shipmentRecord{
		ID:           uuid.NewString(),
		OrderID:      input.OrderID,
		ProductIDs:   pq.StringArray(append([]string(nil), input.ProductIDs...)),
		ShippingType: string(input.ShippingType),
		DueDate:      input.DueDate.UTC(),
		Status:       string(domain.StatusCreated),
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return "", err
	}
	return record.ID, nil
}

// GetShipping fetches a shipment by identifier.
func (r *Repository) GetShipping(ctx context.Context, shippingID string) (*domain.Shipment, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record shipmentRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", shippingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// UpdateShippingStatus sets the status column; zero affected rows is acknowledged as 404.
func (r *Repository) UpdateShippingStatus(ctx context.Context, shippingID string, status domain.Status) (ports.StatusAck, error) {
	if err := r.ensureDB(); err != nil {
		return ports.StatusAck{}, err
	}
	result := r.db.WithContext(ctx).
		Model(&shipmentRecord{}).
		Where("id = ?", shippingID).
		Updates(map[string]any{
			"status":     string(status),
			"updated_at": gorm.Expr("NOW()"),
		})
	if result.Error != nil {
		return ports.StatusAck{}, result.Error
	}
	if result.RowsAffected == 0 {
		return ports.StatusAck{StatusCode: http.StatusNotFound}, nil
	}
	return ports.StatusAck{StatusCode: http.StatusOK}, nil
}

// TransitionShippingStatus updates the row only while its status is still from.
// Zero affected rows is told apart by re-reading: 404 when the row is gone, 409 otherwise.
func (r *Repository) TransitionShippingStatus(ctx context.Context, shippingID string, from, next domain.Status) (ports.StatusAck, error) {
	if err := r.ensureDB(); err != nil {
		return ports.StatusAck{}, err
	}
	result := r.db.WithContext(ctx).
		Model(&shipmentRecord{}).
		Where("id = ? AND status = ?", shippingID, string(from)).
		Updates(map[string]any{
			"status":     string(next),
			"updated_at": gorm.Expr("NOW()"),
		})
	if result.Error != nil {
		return ports.StatusAck{}, result.Error
	}
	if result.RowsAffected > 0 {
		return ports.StatusAck{StatusCode: http.StatusOK}, nil
	}
	var count int64
	if err := r.db.WithContext(ctx).Model(&shipmentRecord{}).Where("id = ?", shippingID).Count(&count).Error; err != nil {
		return ports.StatusAck{}, err
	}
	if count == 0 {
		return ports.StatusAck{StatusCode: http.StatusNotFound}, nil
	}
	return ports.StatusAck{StatusCode: http.StatusConflict}, nil
}

// ListByStatus returns shipments currently in the given status, oldest first.
func (r *Repository) ListByStatus(ctx context.Context, status domain.Status) ([]*domain.Shipment, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []shipmentRecord
	if err := r.db.WithContext(ctx).Where("status = ?", string(status)).Order("created_at").Find(&records).Error; err != nil {
		return nil, err
	}
	shipments := make([]*domain.Shipment, 0, len(records))
	for i := range records {
		shipments = append(shipments, records[i].toDomain())
	}
	return shipments, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres shipment repository not configured")
	}
	return nil
}

func (r shipmentRecord) toDomain() *domain.Shipment {
	return &domain.Shipment{
		ID:         r.ID,
		OrderID:    r.OrderID,
		ProductIDs: append([]string(nil), r.ProductIDs...),
		Type:       domain.ShippingType(r.ShippingType),
		DueDate:    r.DueDate,
		Status:     domain.Status(r.Status),
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}
