package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"marketplace-service/internal/models"
	"marketplace-service/internal/repository"
)

func setupAttributeRouter(repo repository.AttributeStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewAttributeHandler(repo)

	router := gin.New()
	attribute := router.Group("/attribute")
	{
		attribute.POST("/category", handler.CreateAttributeCategory)
		attribute.GET("/category", handler.GetAttributeCategories)
		attribute.GET("/category/:categoryTitle", handler.GetAttributeCategoriesByCategory)
		attribute.DELETE("/category/:id", handler.DeleteAttributeCategory)

		attribute.POST("", handler.CreateAttribute)
		attribute.GET("", handler.GetAttributes)
		attribute.GET("/sub/:parentAttributeName", handler.GetSubAttributes)
		attribute.GET("/products/:ids", handler.SearchProductsByAttributes)
		attribute.DELETE("/:name", handler.DeleteAttribute)

		attribute.POST("/subcategory", handler.CreateSubCategory)
		attribute.GET("/subcategory/:parentAttributeName", handler.GetSubCategories)
		attribute.DELETE("/subcategory/:id", handler.DeleteSubCategory)

		attribute.POST("/product", handler.BindProductAttribute)
		attribute.GET("/product/:productId", handler.GetProductAttributes)
		attribute.DELETE("/product/:productId", handler.UnbindProductAttributes)
	}
	return router
}

func TestCreateAttributeCategory_Success(t *testing.T) {
	repo := new(mockAttributeStore)
	repo.On("CreateAttributeCategory", mock.MatchedBy(func(ac *models.AttributeCategory) bool {
		return ac.Name == "Size" && ac.Type == "select" && ac.CategoryTitle == "Clothing"
	})).Return(nil)

	router := setupAttributeRouter(repo)

	body, _ := json.Marshal(models.CreateAttributeCategoryRequest{
		Name:          "Size",
		Type:          "select",
		CategoryTitle: "Clothing",
	})
	req := httptest.NewRequest(http.MethodPost, "/attribute/category", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	repo.AssertExpectations(t)
}

func TestCreateAttributeCategory_MissingFields(t *testing.T) {
	repo := new(mockAttributeStore)
	router := setupAttributeRouter(repo)

	body, _ := json.Marshal(models.CreateAttributeCategoryRequest{Name: "Size"})
	req := httptest.NewRequest(http.MethodPost, "/attribute/category", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	repo.AssertNotCalled(t, "CreateAttributeCategory")
}

func TestCreateAttributeCategory_UnknownCategory(t *testing.T) {
	repo := new(mockAttributeStore)
	repo.On("CreateAttributeCategory", mock.Anything).Return(repository.ErrCategoryNotFound)

	router := setupAttributeRouter(repo)

	body, _ := json.Marshal(models.CreateAttributeCategoryRequest{
		Name:          "Size",
		Type:          "select",
		CategoryTitle: "Nope",
	})
	req := httptest.NewRequest(http.MethodPost, "/attribute/category", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "CATEGORY_NOT_FOUND", resp.Error.Code)
}

func TestCreateAttribute_UnknownParentSubCategory(t *testing.T) {
	repo := new(mockAttributeStore)
	repo.On("CreateAttribute", mock.Anything).Return(repository.ErrSubCategoryNotFound)

	router := setupAttributeRouter(repo)

	parent := "Shade"
	body, _ := json.Marshal(models.CreateAttributeRequest{
		Name:                  "Crimson",
		AttributeCategoryName: "Color",
		ParentAttributeName:   &parent,
	})
	req := httptest.NewRequest(http.MethodPost, "/attribute", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "SUB_CATEGORY_NOT_FOUND", resp.Error.Code)
}

func TestDeleteAttribute_NotFound(t *testing.T) {
	repo := new(mockAttributeStore)
	repo.On("DeleteAttribute", "Missing").Return(repository.ErrAttributeNotFound)

	router := setupAttributeRouter(repo)

	req := httptest.NewRequest(http.MethodDelete, "/attribute/Missing", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ATTRIBUTE_NOT_FOUND", resp.Error.Code)
}

func TestDeleteAttributeCategory_InvalidID(t *testing.T) {
	repo := new(mockAttributeStore)
	router := setupAttributeRouter(repo)

	req := httptest.NewRequest(http.MethodDelete, "/attribute/category/abc", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	repo.AssertNotCalled(t, "DeleteAttributeCategory")
}

func TestBindProductAttribute_InvalidProductID(t *testing.T) {
	repo := new(mockAttributeStore)
	router := setupAttributeRouter(repo)

	body, _ := json.Marshal(models.BindProductAttributeRequest{
		ProductID:   "not-a-uuid",
		AttributeID: 3,
		Value:       "XL",
	})
	req := httptest.NewRequest(http.MethodPost, "/attribute/product", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	repo.AssertNotCalled(t, "Bind")
}

func TestBindProductAttribute_Success(t *testing.T) {
	productID := uuid.New()
	repo := new(mockAttributeStore)
	repo.On("Bind", mock.MatchedBy(func(pa *models.ProductAttribute) bool {
		return pa.ProductID == productID && pa.AttributeID == 3 && pa.Value == "XL"
	})).Return(nil)

	router := setupAttributeRouter(repo)

	body, _ := json.Marshal(models.BindProductAttributeRequest{
		ProductID:   productID.String(),
		AttributeID: 3,
		Value:       "XL",
	})
	req := httptest.NewRequest(http.MethodPost, "/attribute/product", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	repo.AssertExpectations(t)
}

func TestUnbindProductAttributes_ZeroRowsSucceeds(t *testing.T) {
	productID := uuid.New()
	repo := new(mockAttributeStore)
	repo.On("UnbindAllForProduct", productID).Return(int64(0), nil)

	router := setupAttributeRouter(repo)

	req := httptest.NewRequest(http.MethodDelete, "/attribute/product/"+productID.String(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	repo.AssertExpectations(t)
}

func TestSearchProductsByAttributes_Success(t *testing.T) {
	from := decimal.RequireFromString("10.50")
	repo := new(mockAttributeStore)
	repo.On("FindProductsByAttributeIDs", []uint{1, 2, 7}, models.ProductSearchFilters{
		FromPrice:     &from,
		CategoryTitle: "Clothing",
	}).Return([]models.Product{{ID: uuid.New(), Title: "Jacket"}}, nil)

	router := setupAttributeRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/attribute/products/1,2,7?fromPrice=10.50&categoryTitle=Clothing", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	repo.AssertExpectations(t)
}

func TestSearchProductsByAttributes_InvalidIDList(t *testing.T) {
	repo := new(mockAttributeStore)
	router := setupAttributeRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/attribute/products/1,abc", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	repo.AssertNotCalled(t, "FindProductsByAttributeIDs")
}

func TestSearchProductsByAttributes_InvalidPrice(t *testing.T) {
	repo := new(mockAttributeStore)
	router := setupAttributeRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/attribute/products/1?fromPrice=cheap", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "fromPrice", resp.Error.Field)
}

func TestParseAttributeIDs(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    []uint
		wantErr bool
	}{
		{name: "single id", raw: "5", want: []uint{5}},
		{name: "several ids", raw: "1,2,3", want: []uint{1, 2, 3}},
		{name: "spaces and trailing comma", raw: " 1, 2 ,", want: []uint{1, 2}},
		{name: "empty", raw: "", wantErr: true},
		{name: "only commas", raw: ",,", wantErr: true},
		{name: "non-numeric", raw: "1,x", wantErr: true},
		{name: "negative", raw: "-1", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseAttributeIDs(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
