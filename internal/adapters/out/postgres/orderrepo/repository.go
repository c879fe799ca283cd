package orderrepo

import (
	"context"
	"errors"
	"fmt"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id string, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the mutable columns of an existing order. Identity, customer
// and amount columns never change after Add.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("tenant_id = ? AND id = ?", dto.TenantID, dto.ID).
		Updates(mutableColumns(dto))
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves one order within a tenant.
func (r *GormOrderRepository) Get(ctx context.Context, tenantID, orderID string) (*order.Order, error) {
	var dto OrderDTO
	err := r.db.WithContext(ctx).
		First(&dto, "tenant_id = ? AND id = ?", tenantID, orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order",
				fmt.Sprintf("%s/%s", tenantID, orderID))
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByPhone retrieves every order carrying the phone number, across all
// tenants.
func (r *GormOrderRepository) GetByPhone(ctx context.Context, phone kernel.Phone) ([]*order.Order, error) {
	if phone.IsZero() {
		return nil, errs.NewValueIsRequiredError("phone")
	}

	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Find(&dtos, "customer_phone = ?", phone.String()).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetInFlight retrieves a tenant's booked orders that have not reached a
// terminal status, i.e. the reconciliation sweep's working set.
func (r *GormOrderRepository) GetInFlight(ctx context.Context, tenantID string) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Find(&dtos, "tenant_id = ? AND tracking_number <> '' AND status NOT IN (?, ?)",
			tenantID, order.Cancelled.String(), order.Delivered.String()).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

func toDomainSlice(dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}
