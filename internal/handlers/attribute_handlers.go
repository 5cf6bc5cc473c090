package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"marketplace-service/internal/models"
	"marketplace-service/internal/repository"
)

type AttributeHandler struct {
	repo repository.AttributeStore
}

func NewAttributeHandler(repo repository.AttributeStore) *AttributeHandler {
	return &AttributeHandler{repo: repo}
}

// CreateAttributeCategory creates an attribute category scoped to an
// existing product category
func (h *AttributeHandler) CreateAttributeCategory(c *gin.Context) {
	var req models.CreateAttributeCategoryRequest
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
	if req.Name == "" || req.Type == "" || req.CategoryTitle == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Name, type and category title are required",
			},
		})
		return
	}

	ac := models.AttributeCategory{
		Name:          req.Name,
		Type:          req.Type,
		CategoryTitle: req.CategoryTitle,
	}
	if err := h.repo.CreateAttributeCategory(&ac); err != nil {
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
				"message": "Failed to create attribute category",
			},
		})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": ac})
}

// GetAttributeCategories lists attribute categories with nested attributes
func (h *AttributeHandler) GetAttributeCategories(c *gin.Context) {
	categories, err := h.repo.GetAttributeCategories()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INTERNAL_ERROR",
				"message": "Failed to list attribute categories",
			},
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": categories})
}

// GetAttributeCategoriesByCategory lists attribute categories scoped to
// one product category, with nested attributes
func (h *AttributeHandler) GetAttributeCategoriesByCategory(c *gin.Context) {
	categories, err := h.repo.GetAttributeCategoriesByCategory(c.Param("categoryTitle"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INTERNAL_ERROR",
				"message": "Failed to list attribute categories",
			},
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": categories})
}

// DeleteAttributeCategory deletes an attribute category with its whole
// taxonomy closure, atomically
func (h *AttributeHandler) DeleteAttributeCategory(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid attribute category id",
				"field":   "id",
			},
		})
		return
	}

	if err := h.repo.DeleteAttributeCategory(uint(id)); err != nil {
		if errors.Is(err, repository.ErrAttributeCategoryNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "ATTRIBUTE_CATEGORY_NOT_FOUND",
					"message": "Attribute category not found",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INTERNAL_ERROR",
				"message": "Failed to delete attribute category",
			},
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Attribute category deleted"})
}

// CreateAttribute creates an attribute under an attribute category,
// optionally nested below a sub-category
func (h *AttributeHandler) CreateAttribute(c *gin.Context) {
	var req models.CreateAttributeRequest
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
	if req.Name == "" || req.AttributeCategoryName == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Name and attribute category name are required",
			},
		})
		return
	}

	attribute := models.Attribute{
		Name:                  req.Name,
		AttributeCategoryName: req.AttributeCategoryName,
		ParentAttributeName:   req.ParentAttributeName,
	}
	if err := h.repo.CreateAttribute(&attribute); err != nil {
		switch {
		case errors.Is(err, repository.ErrAttributeCategoryNotFound):
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "ATTRIBUTE_CATEGORY_NOT_FOUND",
					"message": "Attribute category not found",
				},
			})
		case errors.Is(err, repository.ErrSubCategoryNotFound):
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "SUB_CATEGORY_NOT_FOUND",
					"message": "Parent sub-category not found",
				},
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INTERNAL_ERROR",
					"message": "Failed to create attribute",
				},
			})
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": attribute})
}

// GetAttributes lists all attributes
func (h *AttributeHandler) GetAttributes(c *gin.Context) {
	attributes, err := h.repo.GetAttributes()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INTERNAL_ERROR",
				"message": "Failed to list attributes",
			},
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": attributes})
}

// GetSubAttributes lists attributes nested under the named parent
func (h *AttributeHandler) GetSubAttributes(c *gin.Context) {
	attributes, err := h.repo.GetSubAttributes(c.Param("parentAttributeName"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INTERNAL_ERROR",
				"message": "Failed to list attributes",
			},
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": attributes})
}

// DeleteAttribute deletes an attribute by its unique name
func (h *AttributeHandler) DeleteAttribute(c *gin.Context) {
	name := c.Param("name")

	if err := h.repo.DeleteAttribute(name); err != nil {
		if errors.Is(err, repository.ErrAttributeNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "ATTRIBUTE_NOT_FOUND",
					"message": "Attribute not found",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INTERNAL_ERROR",
				"message": "Failed to delete attribute",
			},
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Attribute deleted"})
}

// CreateSubCategory creates a sub-category refining an attribute
func (h *AttributeHandler) CreateSubCategory(c *gin.Context) {
	var req models.CreateSubCategoryRequest
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
	if req.Name == "" || req.AttributeCategoryName == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Name and attribute category name are required",
			},
		})
		return
	}

	sc := models.SubCategory{
		Name:                  req.Name,
		AttributeCategoryName: req.AttributeCategoryName,
		ParentAttributeName:   req.ParentAttributeName,
		Type:                  req.Type,
	}
	if err := h.repo.CreateSubCategory(&sc); err != nil {
		if errors.Is(err, repository.ErrAttributeCategoryNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "ATTRIBUTE_CATEGORY_NOT_FOUND",
					"message": "Attribute category not found",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INTERNAL_ERROR",
				"message": "Failed to create sub-category",
			},
		})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": sc})
}

// GetSubCategories lists sub-categories refining the named attribute
func (h *AttributeHandler) GetSubCategories(c *gin.Context) {
	subCategories, err := h.repo.GetSubCategoriesByParentAttribute(c.Param("parentAttributeName"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INTERNAL_ERROR",
				"message": "Failed to list sub-categories",
			},
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": subCategories})
}

// DeleteSubCategory deletes a sub-category by id
func (h *AttributeHandler) DeleteSubCategory(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid sub-category id",
				"field":   "id",
			},
		})
		return
	}

	if err := h.repo.DeleteSubCategory(uint(id)); err != nil {
		if errors.Is(err, repository.ErrSubCategoryNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "SUB_CATEGORY_NOT_FOUND",
					"message": "Sub-category not found",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INTERNAL_ERROR",
				"message": "Failed to delete sub-category",
			},
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Sub-category deleted"})
}

// BindProductAttribute assigns an attribute value to a product
func (h *AttributeHandler) BindProductAttribute(c *gin.Context) {
	var req models.BindProductAttributeRequest
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
	if req.ProductID == "" || req.AttributeID == 0 || req.Value == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Product, attribute and value are required",
			},
		})
		return
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid product id",
				"field":   "productId",
			},
		})
		return
	}

	pa := models.ProductAttribute{
		ProductID:   productID,
		AttributeID: req.AttributeID,
		Value:       req.Value,
	}
	if err := h.repo.Bind(&pa); err != nil {
		switch {
		case errors.Is(err, repository.ErrProductNotFound):
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "PRODUCT_NOT_FOUND",
					"message": "Product not found",
				},
			})
		case errors.Is(err, repository.ErrAttributeNotFound):
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "ATTRIBUTE_NOT_FOUND",
					"message": "Attribute not found",
				},
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INTERNAL_ERROR",
					"message": "Failed to bind attribute",
				},
			})
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": pa})
}

// GetProductAttributes lists a product's attribute bindings
func (h *AttributeHandler) GetProductAttributes(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid product id",
				"field":   "productId",
			},
		})
		return
	}

	bindings, err := h.repo.ListByProduct(productID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INTERNAL_ERROR",
				"message": "Failed to list product attributes",
			},
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": bindings})
}

// UnbindProductAttributes removes every binding for a product. Zero
// removed rows still succeeds: this runs as a step of larger deletions.
func (h *AttributeHandler) UnbindProductAttributes(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid product id",
				"field":   "productId",
			},
		})
		return
	}

	deleted, err := h.repo.UnbindAllForProduct(productID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INTERNAL_ERROR",
				"message": "Failed to unbind product attributes",
			},
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"deleted": deleted}})
}

// SearchProductsByAttributes returns the deduplicated products matching
// any of the comma-separated attribute ids, narrowed by optional
// fromPrice/toPrice/categoryTitle query parameters.
func (h *AttributeHandler) SearchProductsByAttributes(c *gin.Context) {
	ids, err := parseAttributeIDs(c.Param("ids"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid attribute id list",
				"field":   "ids",
			},
		})
		return
	}

	filters := models.ProductSearchFilters{
		CategoryTitle: c.Query("categoryTitle"),
	}
	if raw := c.Query("fromPrice"); raw != "" {
		price, err := decimal.NewFromString(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VALIDATION_ERROR",
					"message": "Invalid fromPrice",
					"field":   "fromPrice",
				},
			})
			return
		}
		filters.FromPrice = &price
	}
	if raw := c.Query("toPrice"); raw != "" {
		price, err := decimal.NewFromString(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VALIDATION_ERROR",
					"message": "Invalid toPrice",
					"field":   "toPrice",
				},
			})
			return
		}
		filters.ToPrice = &price
	}

	products, err := h.repo.FindProductsByAttributeIDs(ids, filters)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INTERNAL_ERROR",
				"message": "Failed to search products",
			},
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": products})
}

// parseAttributeIDs splits a comma-separated id list into numeric ids
func parseAttributeIDs(raw string) ([]uint, error) {
	parts := strings.Split(raw, ",")
	ids := make([]uint, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseUint(part, 10, 32)
		if err != nil {
			return nil, err
		}
		ids = append(ids, uint(id))
	}
	if len(ids) == 0 {
		return nil, strconv.ErrSyntax
	}
	return ids, nil
}
