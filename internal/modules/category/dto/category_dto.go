package dto

import (
	"time"

	"github.com/google/uuid"

	"categories-api/internal/entity"
	"categories-api/pkg/apperror"
	"categories-api/pkg/validator"
)

type CreateCategoryRequest struct {
	Slug        string  `json:"slug" binding:"required,slugpattern"`
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	Active      *bool   `json:"active" binding:"required"`
}

// UpdateCategoryRequest is a partial update: only non-nil fields are written.
// createdDate is deliberately updatable, the model does not protect it.
type UpdateCategoryRequest struct {
	Slug        *string    `json:"slug" binding:"omitempty,slugpattern"`
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	CreatedDate *time.Time `json:"createdDate"`
	Active      *bool      `json:"active"`
}

func (r UpdateCategoryRequest) IsEmpty() bool {
	return r.Slug == nil && r.Name == nil && r.Description == nil &&
		r.CreatedDate == nil && r.Active == nil
}

// Fields returns the column/value map for the partial update.
func (r UpdateCategoryRequest) Fields() map[string]any {
	fields := map[string]any{}
	if r.Slug != nil {
		fields["slug"] = *r.Slug
	}
	if r.Name != nil {
		fields["name"] = *r.Name
	}
	if r.Description != nil {
		fields["description"] = *r.Description
	}
	if r.CreatedDate != nil {
		fields["created_date"] = *r.CreatedDate
	}
	if r.Active != nil {
		fields["active"] = *r.Active
	}
	return fields
}

// GetCategoryRequest looks a single category up by id or slug.
type GetCategoryRequest struct {
	Field string `form:"field" binding:"required,oneof=id slug"`
	Value string `form:"value" binding:"required"`
}

// Validate cross-checks value against field: a uuid when looking up by id,
// a well-formed slug when looking up by slug.
func (r GetCategoryRequest) Validate() error {
	switch r.Field {
	case "id":
		if _, err := uuid.Parse(r.Value); err != nil {
			return apperror.BadRequest("value must be a valid uuid")
		}
	case "slug":
		if !validator.IsSlug(r.Value) {
			return apperror.BadRequest("value may only contain latin letters, digits, hyphen and underscore")
		}
	}
	return nil
}

type FilterCategoriesRequest struct {
	Search      string `form:"search"`
	Name        string `form:"name"`
	Description string `form:"description"`
	Active      string `form:"active"`
	Sort        string `form:"sort"`
	Page        *int   `form:"page" binding:"omitempty,min=0"`
	PageSize    *int   `form:"pageSize" binding:"omitempty,min=1,max=9"`
}

// ActiveFlag coerces the textual active filter. Only the exact encodings
// "1"/"true" and "0"/"false" are accepted; anything else is a client error.
func (r FilterCategoriesRequest) ActiveFlag() (*bool, error) {
	switch r.Active {
	case "":
		return nil, nil
	case "1", "true":
		v := true
		return &v, nil
	case "0", "false":
		v := false
		return &v, nil
	}
	return nil, apperror.BadRequest("active must be one of: 1, true, 0, false")
}

type CategoryResponse struct {
	ID          uuid.UUID `json:"id"`
	Slug        string    `json:"slug"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	CreatedDate time.Time `json:"createdDate"`
	Active      bool      `json:"active"`
}

func NewCategoryResponse(category *entity.Category) CategoryResponse {
	return CategoryResponse{
		ID:          category.ID,
		Slug:        category.Slug,
		Name:        category.Name,
		Description: category.Description,
		CreatedDate: category.CreatedDate,
		Active:      category.Active,
	}
}
