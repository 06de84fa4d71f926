package category

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"categories-api/internal/entity"
	"categories-api/internal/modules/category/dto"
	"categories-api/internal/modules/category/query"
	"categories-api/internal/modules/category/repository"
	"categories-api/pkg/apperror"
)

type CategoryService interface {
	Create(ctx context.Context, req dto.CreateCategoryRequest) (*entity.Category, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateCategoryRequest) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, req dto.GetCategoryRequest) (*entity.Category, error)
	List(ctx context.Context, req dto.FilterCategoriesRequest) ([]entity.Category, error)
}

type categoryService struct {
	repo repository.CategoryRepository
}

func NewCategoryService(repo repository.CategoryRepository) CategoryService {
	return &categoryService{repo: repo}
}

func duplicateSlug(slug string) error {
	return apperror.BadRequest("category with slug %q already exists", slug)
}

// checkSlugFree is the advisory uniqueness check. It runs before the write
// and does not exclude the row being updated: re-submitting a category's own
// slug is rejected too. The unique index on the table stays authoritative.
func (s *categoryService) checkSlugFree(ctx context.Context, slug string) error {
	count, err := s.repo.CountBySlug(ctx, slug)
	if err != nil {
		return err
	}
	if count > 0 {
		return duplicateSlug(slug)
	}
	return nil
}

func (s *categoryService) Create(ctx context.Context, req dto.CreateCategoryRequest) (*entity.Category, error) {
	if err := s.checkSlugFree(ctx, req.Slug); err != nil {
		return nil, err
	}

	category := &entity.Category{
		Slug:        req.Slug,
		Name:        req.Name,
		Description: req.Description,
		Active:      *req.Active,
	}

	if err := s.repo.Create(ctx, category); err != nil {
		// A concurrent writer can slip between the check and the insert;
		// the constraint violation gets the same duplicate-slug answer.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, duplicateSlug(req.Slug)
		}
		return nil, err
	}
	return category, nil
}

func (s *categoryService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateCategoryRequest) error {
	if req.Slug != nil {
		if err := s.checkSlugFree(ctx, *req.Slug); err != nil {
			return err
		}
	}

	affected, err := s.repo.Update(ctx, id, req.Fields())
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) && req.Slug != nil {
			return duplicateSlug(*req.Slug)
		}
		return err
	}
	if affected == 0 {
		return apperror.NotFound("category with id %s does not exist", id)
	}
	return nil
}

func (s *categoryService) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperror.NotFound("category with id %s does not exist", id)
	}
	return nil
}

// FindOne returns nil without an error when nothing matches; a miss is not a
// failure on this endpoint.
func (s *categoryService) FindOne(ctx context.Context, req dto.GetCategoryRequest) (*entity.Category, error) {
	var (
		category *entity.Category
		err      error
	)

	switch req.Field {
	case "id":
		uid, parseErr := uuid.Parse(req.Value)
		if parseErr != nil {
			return nil, apperror.BadRequest("value must be a valid uuid")
		}
		category, err = s.repo.FindByID(ctx, uid)
	case "slug":
		category, err = s.repo.FindBySlug(ctx, req.Value)
	default:
		return nil, apperror.BadRequest("field must be one of: id, slug")
	}

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return category, nil
}

func (s *categoryService) List(ctx context.Context, req dto.FilterCategoriesRequest) ([]entity.Category, error) {
	active, err := req.ActiveFlag()
	if err != nil {
		return nil, err
	}

	plan := query.Build(query.Options{
		Search:      req.Search,
		Name:        req.Name,
		Description: req.Description,
		Active:      active,
		Sort:        req.Sort,
		Page:        req.Page,
		PageSize:    req.PageSize,
	})

	return s.repo.List(ctx, plan)
}
