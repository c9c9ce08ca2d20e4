package category

import (
	"strings"
	"time"

	"github.com/frahmantamala/finance-tracker/internal"
	"github.com/frahmantamala/finance-tracker/internal/core/common/validation"
)

const MaxNameLength = 100

type CreateCategoryDTO struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (dto *CreateCategoryDTO) Normalize() {
	dto.Name = strings.TrimSpace(dto.Name)
	dto.Description = strings.TrimSpace(dto.Description)
}

func (dto CreateCategoryDTO) Validate() *internal.AppError {
	return validateCategoryFields(dto.Name)
}

// UpdateCategoryDTO replaces the editable fields of a category.
type UpdateCategoryDTO struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (dto *UpdateCategoryDTO) Normalize() {
	dto.Name = strings.TrimSpace(dto.Name)
	dto.Description = strings.TrimSpace(dto.Description)
}

func (dto UpdateCategoryDTO) Validate() *internal.AppError {
	return validateCategoryFields(dto.Name)
}

func validateCategoryFields(name string) *internal.AppError {
	validator := validation.NewValidator()
	validator.Field("name", name).
		Required().
		MaxLength(MaxNameLength, internal.ErrCodeInvalidName)
	return validator.Validate()
}

type CategoryResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type CategoriesResponse struct {
	Categories []CategoryResponse `json:"categories"`
}
