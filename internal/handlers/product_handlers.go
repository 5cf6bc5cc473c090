package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"marketplace-service/internal/events"
	"marketplace-service/internal/models"
	"marketplace-service/internal/repository"
	"marketplace-service/internal/storage"
)

type ProductHandler struct {
	repo            repository.ProductStore
	categories      repository.CategoryStore
	users           repository.UserStore
	store           *storage.LocalStore
	eventsPublisher *events.Publisher
}

func NewProductHandler(repo repository.ProductStore, categories repository.CategoryStore, users repository.UserStore, store *storage.LocalStore, eventsPublisher *events.Publisher) *ProductHandler {
	return &ProductHandler{
		repo:            repo,
		categories:      categories,
		users:           users,
		store:           store,
		eventsPublisher: eventsPublisher,
	}
}

// CreateProduct creates a product listing. All fields are required; the
// category total is recounted inside the same transaction as the insert.
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req models.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request: " + err.Error(),
			},
		})
		return
	}
	if req.Price.Sign() <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Price must be a positive decimal",
				"field":   "price",
			},
		})
		return
	}
	if len(req.Geo) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "At least one geo entry is required",
				"field":   "geo",
			},
		})
		return
	}

	category, err := h.categories.GetByTitle(req.CategoryTitle)
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
				"message": "Failed to check category",
			},
		})
		return
	}

	if _, err := h.users.GetByID(req.UserID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "USER_NOT_FOUND",
					"message": "User not found",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INTERNAL_ERROR",
				"message": "Failed to check user",
			},
		})
		return
	}

	product := models.Product{
		ID:            uuid.New(),
		Title:         req.Title,
		Description:   req.Description,
		Price:         req.Price,
		Introtext:     req.Introtext,
		Geo:           req.Geo,
		CategoryTitle: category.Title,
		UserID:        req.UserID,
	}
	if err := h.repo.Create(&product); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INTERNAL_ERROR",
				"message": "Failed to create product",
			},
		})
		return
	}

	if h.eventsPublisher != nil {
		h.eventsPublisher.PublishProductCreated(product.ID.String(), product.Title, product.CategoryTitle, product.UserID)
	}

	product.Category = category
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": product})
}

// GetProductList returns all products with their category
func (h *ProductHandler) GetProductList(c *gin.Context) {
	products, err := h.repo.GetAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INTERNAL_ERROR",
				"message": "Failed to list products",
			},
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": products})
}

// GetProduct gets a product by ID
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid product id",
				"field":   "id",
			},
		})
		return
	}

	product, err := h.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "PRODUCT_NOT_FOUND",
					"message": "Product not found",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INTERNAL_ERROR",
				"message": "Failed to get product",
			},
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": product})
}

// GetProductsByCategory returns products under a category title
func (h *ProductHandler) GetProductsByCategory(c *gin.Context) {
	categoryTitle := c.Param("categoryTitle")

	if _, err := h.categories.GetByTitle(categoryTitle); err != nil {
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
				"message": "Failed to check category",
			},
		})
		return
	}

	products, err := h.repo.GetByCategory(categoryTitle)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INTERNAL_ERROR",
				"message": "Failed to list products",
			},
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": products})
}

// GetProductsByUser returns products listed by a user. An empty result is
// reported as an error, matching the established client contract.
func (h *ProductHandler) GetProductsByUser(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid user id",
				"field":   "userId",
			},
		})
		return
	}

	products, err := h.repo.GetByUser(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INTERNAL_ERROR",
				"message": "Failed to list products",
			},
		})
		return
	}
	if len(products) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "PRODUCTS_NOT_FOUND",
				"message": "User has no products",
			},
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": products})
}

// UpdateProduct applies a partial update. Category and owner are fixed,
// so Category.Total is never affected here.
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid product id",
				"field":   "id",
			},
		})
		return
	}

	var req models.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request: " + err.Error(),
			},
		})
		return
	}

	product, err := h.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "PRODUCT_NOT_FOUND",
					"message": "Product not found",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INTERNAL_ERROR",
				"message": "Failed to get product",
			},
		})
		return
	}

	if req.Title != nil {
		product.Title = *req.Title
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		if req.Price.Sign() <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VALIDATION_ERROR",
					"message": "Price must be a positive decimal",
					"field":   "price",
				},
			})
			return
		}
		product.Price = *req.Price
	}
	if req.Introtext != nil {
		product.Introtext = *req.Introtext
	}
	if req.Geo != nil {
		product.Geo = *req.Geo
	}

	if err := h.repo.Update(product); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INTERNAL_ERROR",
				"message": "Failed to update product",
			},
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": product})
}

// DeleteProduct removes a product with its favourites, images and
// attribute bindings, then cleans up image files best-effort.
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid product id",
				"field":   "id",
			},
		})
		return
	}

	deleted, err := h.repo.Delete(id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "PRODUCT_NOT_FOUND",
					"message": "Product not found",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INTERNAL_ERROR",
				"message": "Failed to delete product",
			},
		})
		return
	}

	for _, url := range deleted.ImageURLs {
		h.store.Remove(url)
	}
	if h.eventsPublisher != nil {
		p := deleted.Product
		h.eventsPublisher.PublishProductDeleted(p.ID.String(), p.Title, p.CategoryTitle, p.UserID)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product deleted"})
}
