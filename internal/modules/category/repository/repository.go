package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"categories-api/internal/entity"
	"categories-api/internal/modules/category/query"
)

type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	Update(ctx context.Context, id uuid.UUID, fields map[string]any) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)
	FindBySlug(ctx context.Context, slug string) (*entity.Category, error)
	CountBySlug(ctx context.Context, slug string) (int64, error)
	List(ctx context.Context, plan query.Plan) ([]entity.Category, error)
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

// Update applies the partial field map and reports how many rows matched.
// Zero means the id does not exist.
func (r *categoryRepository) Update(ctx context.Context, id uuid.UUID, fields map[string]any) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&entity.Category{}).
		Where("id = ?", id).
		Updates(fields)
	return res.RowsAffected, res.Error
}

func (r *categoryRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&entity.Category{}, "id = ?", id)
	return res.RowsAffected, res.Error
}

func (r *categoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	var category entity.Category
	if err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) FindBySlug(ctx context.Context, slug string) (*entity.Category, error) {
	var category entity.Category
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) CountBySlug(ctx context.Context, slug string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Category{}).
		Where("slug = ?", slug).
		Count(&count).Error
	return count, err
}

// Text matching folds both sides to the е/ё normal form and compares an
// anchored prefix. LikePattern escapes LIKE metacharacters, hence ESCAPE.
const (
	nameMatch = `translate(lower(name), 'ё', 'е') LIKE ? ESCAPE '\'`
	descMatch = `translate(lower(description), 'ё', 'е') LIKE ? ESCAPE '\'`
)

func (r *categoryRepository) List(ctx context.Context, plan query.Plan) ([]entity.Category, error) {
	db := r.db.WithContext(ctx)

	if plan.Search != "" {
		pattern := query.LikePattern(plan.Search)
		db = db.Where(nameMatch+" OR "+descMatch, pattern, pattern)
	} else {
		if plan.Name != "" {
			db = db.Where(nameMatch, query.LikePattern(plan.Name))
		}
		if plan.Description != "" {
			db = db.Where(descMatch, query.LikePattern(plan.Description))
		}
	}

	if plan.Active != nil {
		db = db.Where("active = ?", *plan.Active)
	}

	order := plan.OrderColumn
	if plan.OrderDesc {
		order += " DESC"
	}

	var categories []entity.Category
	if err := db.Order(order).Offset(plan.Offset).Limit(plan.Limit).Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}
