package store

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rentalmarket/core/models"
)

// GetItem loads an item by id, preloading its images.
func (s *Store) GetItem(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	var item models.Item
	err := s.DB.WithContext(ctx).Preload("Images").First(&item, "id = ?", id).Error
	if isNotFound(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// LockItemForUpdate loads the item row with an exclusive row lock, the
// per-item serialization primitive booking creation and transition must
// acquire. Must be called inside a transaction.
func LockItemForUpdate(tx *gorm.DB, id uuid.UUID) (*models.Item, error) {
	var item models.Item
	err := tx.Clauses(lockingForUpdate()).First(&item, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// ItemFilter describes the filters a "list/search items" query accepts.
type ItemFilter struct {
	CategoryID *int
	MinPrice   *float64
	MaxPrice   *float64
	Location   string
	Query      string
	OwnerID    *uuid.UUID
	OrderBy    string // "price_asc" | "price_desc" | "newest"
	Page       int
	PageSize   int
}

func (s *Store) ListItems(ctx context.Context, f ItemFilter) ([]models.Item, int64, error) {
	q := s.DB.WithContext(ctx).Model(&models.Item{}).Where("is_active = ?", true)
	if f.OwnerID != nil {
		q = q.Where("owner_id = ?", *f.OwnerID)
	}
	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}
	if f.MinPrice != nil {
		q = q.Where("price_per_day >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("price_per_day <= ?", *f.MaxPrice)
	}
	if f.Location != "" {
		q = q.Where("location ILIKE ?", "%"+f.Location+"%")
	}
	if f.Query != "" {
		q = q.Where("title ILIKE ? OR description ILIKE ?", "%"+f.Query+"%", "%"+f.Query+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	switch f.OrderBy {
	case "price_asc":
		q = q.Order("price_per_day ASC")
	case "price_desc":
		q = q.Order("price_per_day DESC")
	default:
		q = q.Order("created_at DESC")
	}

	page, pageSize := f.Page, f.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	var items []models.Item
	err := q.Preload("Images").Offset((page - 1) * pageSize).Limit(pageSize).Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (s *Store) CreateItem(ctx context.Context, item *models.Item) error {
	return s.DB.WithContext(ctx).Create(item).Error
}

func (s *Store) SaveItem(ctx context.Context, item *models.Item) error {
	return s.DB.WithContext(ctx).Save(item).Error
}

func (s *Store) DeleteItem(ctx context.Context, id uuid.UUID) error {
	return s.DB.WithContext(ctx).Delete(&models.Item{}, "id = ?", id).Error
}
