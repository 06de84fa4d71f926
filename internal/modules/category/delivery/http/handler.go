package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"

	"categories-api/internal/modules/category/dto"
	category "categories-api/internal/modules/category/service"
	"categories-api/pkg/response"
	pkgvalidator "categories-api/pkg/validator"
)

type CategoryHandler struct {
	service category.CategoryService
}

func NewCategoryHandler(service category.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: service}
}

func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": pkgvalidator.FormatValidationError(err)})
		return
	}

	created, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": created.ID})
}

func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be a valid uuid"})
		return
	}

	// Strict decoding: an unknown field, id included, rejects the body.
	var req dto.UpdateCategoryRequest
	decoder := json.NewDecoder(c.Request.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.IsEmpty() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "at least one field must be provided"})
		return
	}
	if err := binding.Validator.ValidateStruct(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": pkgvalidator.FormatValidationError(err)})
		return
	}

	if err := h.service.Update(c.Request.Context(), id, req); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "category updated successfully"})
}

func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be a valid uuid"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "category deleted successfully"})
}

// GetCategory answers /categories/category?field=…&value=…. A miss is a 200
// with an empty object, not a 404.
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	var req dto.GetCategoryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": pkgvalidator.FormatValidationError(err)})
		return
	}
	if err := req.Validate(); err != nil {
		response.ResponseError(c, err)
		return
	}

	found, err := h.service.FindOne(c.Request.Context(), req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	if found == nil {
		c.JSON(http.StatusOK, gin.H{})
		return
	}

	c.JSON(http.StatusOK, dto.NewCategoryResponse(found))
}

func (h *CategoryHandler) ListCategories(c *gin.Context) {
	var req dto.FilterCategoriesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": pkgvalidator.FormatValidationError(err)})
		return
	}

	categories, err := h.service.List(c.Request.Context(), req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	responses := make([]dto.CategoryResponse, 0, len(categories))
	for i := range categories {
		responses = append(responses, dto.NewCategoryResponse(&categories[i]))
	}

	c.JSON(http.StatusOK, responses)
}
