package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"marketplace-service/internal/models"
	"marketplace-service/internal/repository"
	"marketplace-service/internal/storage"
)

type ImageHandler struct {
	repo     repository.ImageStore
	products repository.ProductStore
	store    *storage.LocalStore
}

func NewImageHandler(repo repository.ImageStore, products repository.ProductStore, store *storage.LocalStore) *ImageHandler {
	return &ImageHandler{
		repo:     repo,
		products: products,
		store:    store,
	}
}

// UploadImage stores an uploaded product image: multipart form with a
// "productId" field and a "url" file, matching the established clients.
func (h *ImageHandler) UploadImage(c *gin.Context) {
	rawProductID := c.PostForm("productId")
	productID, err := uuid.Parse(rawProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "A valid product id is required",
				"field":   "productId",
			},
		})
		return
	}

	file, err := c.FormFile("url")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Image file is required",
				"field":   "url",
			},
		})
		return
	}

	if _, err := h.products.GetByID(productID); err != nil {
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
				"message": "Failed to check product",
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

	image := models.Image{
		ID:        uuid.New(),
		URL:       fileName,
		ProductID: productID,
	}
	if err := h.repo.Create(&image); err != nil {
		h.store.Remove(fileName)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INTERNAL_ERROR",
				"message": "Failed to save image record",
			},
		})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": image})
}

// GetImagesByProduct lists a product's images. An empty result is
// reported as an error, matching the established client contract.
func (h *ImageHandler) GetImagesByProduct(c *gin.Context) {
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

	images, err := h.repo.GetByProduct(productID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INTERNAL_ERROR",
				"message": "Failed to list images",
			},
		})
		return
	}
	if len(images) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "IMAGES_NOT_FOUND",
				"message": "No images found for this product",
			},
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": images})
}

// GetImageByURL gets an image record by its file name
func (h *ImageHandler) GetImageByURL(c *gin.Context) {
	image, err := h.repo.GetByURL(c.Param("url"))
	if err != nil {
		if errors.Is(err, repository.ErrImageNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "IMAGE_NOT_FOUND",
					"message": "Image not found",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INTERNAL_ERROR",
				"message": "Failed to get image",
			},
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": image})
}

// DeleteImage removes one image of a product. A failure to delete the
// backing file is logged by the store and never blocks the record delete.
func (h *ImageHandler) DeleteImage(c *gin.Context) {
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
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid image id",
				"field":   "id",
			},
		})
		return
	}

	image, err := h.repo.DeleteByID(productID, id)
	if err != nil {
		if errors.Is(err, repository.ErrImageNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "IMAGE_NOT_FOUND",
					"message": "Image not found",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INTERNAL_ERROR",
				"message": "Failed to delete image",
			},
		})
		return
	}

	h.store.Remove(image.URL)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Image deleted"})
}

// DeleteImageByURL removes an image by its file name
func (h *ImageHandler) DeleteImageByURL(c *gin.Context) {
	image, err := h.repo.DeleteByURL(c.Param("url"))
	if err != nil {
		if errors.Is(err, repository.ErrImageNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "IMAGE_NOT_FOUND",
					"message": "Image not found",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INTERNAL_ERROR",
				"message": "Failed to delete image",
			},
		})
		return
	}

	h.store.Remove(image.URL)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Image deleted"})
}

// DeleteImagesByProduct removes every image of a product
func (h *ImageHandler) DeleteImagesByProduct(c *gin.Context) {
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

	urls, err := h.repo.DeleteAllByProduct(productID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INTERNAL_ERROR",
				"message": "Failed to delete images",
			},
		})
		return
	}
	if len(urls) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "IMAGES_NOT_FOUND",
				"message": "No images found for this product",
			},
		})
		return
	}

	for _, url := range urls {
		h.store.Remove(url)
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Images deleted"})
}
