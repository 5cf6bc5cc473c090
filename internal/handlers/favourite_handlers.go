package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"marketplace-service/internal/models"
	"marketplace-service/internal/repository"
)

type FavouriteHandler struct {
	repo repository.FavouriteStore
}

func NewFavouriteHandler(repo repository.FavouriteStore) *FavouriteHandler {
	return &FavouriteHandler{repo: repo}
}

// CreateFavourite adds a product to a user's favourites
func (h *FavouriteHandler) CreateFavourite(c *gin.Context) {
	var req models.FavouriteRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == 0 || req.ProductID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "User id and product id are required",
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

	favourite := models.Favourite{
		UserID:    req.UserID,
		ProductID: productID,
	}
	if err := h.repo.Create(&favourite); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INTERNAL_ERROR",
				"message": "Failed to add favourite",
			},
		})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": favourite})
}

// GetFavouritesByUser lists a user's favourites with product detail
func (h *FavouriteHandler) GetFavouritesByUser(c *gin.Context) {
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

	favourites, err := h.repo.GetAllByUser(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INTERNAL_ERROR",
				"message": "Failed to list favourites",
			},
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": favourites})
}

// DeleteFavourite removes a favourite. Deleting an absent favourite is a
// no-op: the outcome the client asked for already holds.
func (h *FavouriteHandler) DeleteFavourite(c *gin.Context) {
	var req models.FavouriteRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == 0 || req.ProductID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "User id and product id are required",
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

	if err := h.repo.Delete(req.UserID, productID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INTERNAL_ERROR",
				"message": "Failed to remove favourite",
			},
		})
		return
	}
	c.Status(http.StatusNoContent)
}
