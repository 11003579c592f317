package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/rentalmarket/core/internal/apperr"
	"github.com/rentalmarket/core/models"
)

func (s *Store) ListCategories(ctx context.Context) ([]models.Category, error) {
	var out []models.Category
	err := s.DB.WithContext(ctx).Order("id ASC").Find(&out).Error
	return out, err
}

func (s *Store) GetCategory(ctx context.Context, id int) (*models.Category, error) {
	var c models.Category
	err := s.DB.WithContext(ctx).First(&c, "id = ?", id).Error
	if isNotFound(err) {
		return nil, ErrNotFound
	}
	return &c, err
}

// CreateCategory inserts c without an ancestor walk: the new row has no
// id and no descendants yet, so any parent it names cannot form a cycle.
// UpdateCategory is where the interesting case (re-parenting an existing
// node under its own descendant) is checked.
func (s *Store) CreateCategory(ctx context.Context, c *models.Category) error {
	return s.DB.WithContext(ctx).Create(c).Error
}

// UpdateCategory validates the acyclicity invariant before saving: walk
// ancestors starting at newParentID and fail if c.ID is encountered.
func (s *Store) UpdateCategory(ctx context.Context, c *models.Category) error {
	if c.ParentID != nil {
		if *c.ParentID == c.ID {
			return apperr.ErrCategoryCycle
		}
		if err := s.assertNoCycle(ctx, c.ID, *c.ParentID); err != nil {
			return err
		}
	}
	return s.DB.WithContext(ctx).Save(c).Error
}

func (s *Store) assertNoCycle(ctx context.Context, selfID, startParentID int) error {
	visited := map[int]bool{}
	current := startParentID
	for {
		if current == selfID {
			return apperr.ErrCategoryCycle
		}
		if visited[current] {
			// Existing corrupt cycle unrelated to this edit; do not let it
			// spin forever.
			return apperr.ErrCategoryCycle
		}
		visited[current] = true

		var parent models.Category
		err := s.DB.WithContext(ctx).Select("parent_id").First(&parent, "id = ?", current).Error
		if isNotFound(err) {
			return nil
		}
		if err != nil {
			return err
		}
		if parent.ParentID == nil {
			return nil
		}
		current = *parent.ParentID
	}
}

// DeleteCategory cascades to descendants, and nulls Item.CategoryID for
// every item referencing the deleted category or any of its descendants:
// items whose category is deleted become uncategorized rather than
// orphaned.
func (s *Store) DeleteCategory(ctx context.Context, id int) error {
	return s.WithinTx(ctx, func(tx *gorm.DB) error {
		ids, err := descendantIDs(tx, id)
		if err != nil {
			return err
		}
		ids = append(ids, id)

		if err := tx.Model(&models.Item{}).Where("category_id IN ?", ids).
			Update("category_id", nil).Error; err != nil {
			return err
		}
		return tx.Where("id IN ?", ids).Delete(&models.Category{}).Error
	})
}

func descendantIDs(tx *gorm.DB, rootID int) ([]int, error) {
	var all []models.Category
	if err := tx.Select("id", "parent_id").Find(&all).Error; err != nil {
		return nil, err
	}
	childrenOf := map[int][]int{}
	for _, c := range all {
		if c.ParentID != nil {
			childrenOf[*c.ParentID] = append(childrenOf[*c.ParentID], c.ID)
		}
	}
	var out []int
	queue := []int{rootID}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, child := range childrenOf[id] {
			out = append(out, child)
			queue = append(queue, child)
		}
	}
	return out, nil
}
