package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"marketplace-service/internal/events"
	"marketplace-service/internal/models"
	"marketplace-service/internal/repository"
	"marketplace-service/internal/storage"
)

type CategoryHandler struct {
	repo            repository.CategoryStore
	store           *storage.LocalStore
	eventsPublisher *events.Publisher
}

func NewCategoryHandler(repo repository.CategoryStore, store *storage.LocalStore, eventsPublisher *events.Publisher) *CategoryHandler {
	return &CategoryHandler{
		repo:            repo,
		store:           store,
		eventsPublisher: eventsPublisher,
	}
}

// CreateCategory creates a new category from a multipart form: a "title"
// field and an "img" file.
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req models.CreateCategoryRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Title is required",
				"field":   "title",
			},
		})
		return
	}

	file, err := c.FormFile("img")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Image file is required",
				"field":   "img",
			},
		})
		return
	}

	fileName, err := h.store.Save(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INTERNAL_ERROR",
				"message": "Failed to store image",
			},
		})
		return
	}

	category := models.Category{
		Title: req.Title,
		Img:   fileName,
	}
	if err := h.repo.Create(&category); err != nil {
		h.store.Remove(fileName)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INTERNAL_ERROR",
				"message": "Failed to create category",
			},
		})
		return
	}

	if h.eventsPublisher != nil {
		h.eventsPublisher.PublishCategoryCreated(category.ID, category.Title)
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": category})
}

// GetCategoryList returns all categories ordered by id
func (h *CategoryHandler) GetCategoryList(c *gin.Context) {
	categories, err := h.repo.GetAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INTERNAL_ERROR",
				"message": "Failed to list categories",
			},
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": categories})
}

// GetCategory gets a category by ID
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid category id",
				"field":   "id",
			},
		})
		return
	}

	category, err := h.repo.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "CATEGORY_NOT_FOUND",
					"message": "Category not found",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INTERNAL_ERROR",
				"message": "Failed to get category",
			},
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": category})
}

// DeleteCategory deletes a category and its attribute taxonomy. Deletion
// is refused while products still reference the category.
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid category id",
				"field":   "id",
			},
		})
		return
	}

	category, err := h.repo.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "CATEGORY_NOT_FOUND",
					"message": "Category not found",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INTERNAL_ERROR",
				"message": "Failed to get category",
			},
		})
		return
	}

	if err := h.repo.Delete(uint(id)); err != nil {
		switch {
		case errors.Is(err, repository.ErrCategoryNotFound):
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "CATEGORY_NOT_FOUND",
					"message": "Category not found",
				},
			})
		case errors.Is(err, repository.ErrCategoryInUse):
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "CATEGORY_IN_USE",
					"message": "Category still has products and cannot be deleted",
				},
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INTERNAL_ERROR",
					"message": "Failed to delete category",
				},
			})
		}
		return
	}

	h.store.Remove(category.Img)
	if h.eventsPublisher != nil {
		h.eventsPublisher.PublishCategoryDeleted(category.ID, category.Title)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Category deleted"})
}
