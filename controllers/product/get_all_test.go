package productcontroller_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	productControllers "github.com/satenderkumar11/BuzzBasket/controllers/product"
	"github.com/satenderkumar11/BuzzBasket/models"
)

type listResponse struct {
	Data   []models.Product `json:"data"`
	Brands []string         `json:"brands"`
}

func setupCatalogTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&models.Product{}, &models.Category{}, &models.Brand{},
		&models.User{}, &models.Cart{}, &models.CartItem{},
		&models.Order{}, &models.OrderItem{},
	))

	r := gin.New()
	r.GET("/products", productControllers.GetProducts(db))
	r.GET("/products/:id", productControllers.GetProductByID(db))
	r.POST("/products", productControllers.CreateProduct(db))
	r.PATCH("/products/:id", productControllers.UpdateProduct(db))
	r.DELETE("/products/:id", productControllers.DeleteProduct(db))
	r.GET("/categories", productControllers.GetAllCategories(db))
	r.POST("/categories", productControllers.CreateCategory(db))
	r.GET("/brands", productControllers.GetAllBrands(db))
	r.POST("/brands", productControllers.CreateBrand(db))
	return r, db
}

func seedProducts(t *testing.T, db *gorm.DB) {
	t.Helper()
	// 12 smartphones (6 apex, 6 nimbus), 6 laptops (zenith), 1 soft-deleted.
	for i := 0; i < 12; i++ {
		brand := "apex"
		if i%2 == 1 {
			brand = "nimbus"
		}
		require.NoError(t, db.Create(&models.Product{
			Title:     fmt.Sprintf("Phone %02d", i),
			Description: "test phone",
			Price:     float64(100 + i*10),
			Brand:     brand,
			Category:  "smartphones",
			Thumbnail: "thumb.jpg",
		}).Error)
	}
	for i := 0; i < 6; i++ {
		require.NoError(t, db.Create(&models.Product{
			Title:     fmt.Sprintf("Laptop %02d", i),
			Description: "test laptop",
			Price:     float64(500 + i*100),
			Brand:     "zenith",
			Category:  "laptops",
			Thumbnail: "thumb.jpg",
		}).Error)
	}
	require.NoError(t, db.Create(&models.Product{
		Title:     "Ghost product",
		Description: "soft deleted",
		Price:     42,
		Brand:     "apex",
		Category:  "smartphones",
		Thumbnail: "thumb.jpg",
		Deleted:   true,
	}).Error)
}

func getList(t *testing.T, r *gin.Engine, query string) (*httptest.ResponseRecorder, listResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/products"+query, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp listResponse
	if w.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

func TestGetProductsPaginationAndCount(t *testing.T) {
	r, db := setupCatalogTest(t)
	seedProducts(t, db)

	w, resp := getList(t, r, "?category=smartphones,laptops&_page=2&_limit=10")
	require.Equal(t, http.StatusOK, w.Code)

	// 18 non-deleted products match; page 2 of 10 holds the remaining 8.
	assert.Equal(t, "18", w.Header().Get("X-Total-Count"))
	assert.Len(t, resp.Data, 8)
	for _, p := range resp.Data {
		assert.Contains(t, []string{"smartphones", "laptops"}, p.Category)
	}
}

func TestGetProductsExcludesDeletedForNonAdmin(t *testing.T) {
	r, db := setupCatalogTest(t)
	seedProducts(t, db)

	w, resp := getList(t, r, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "18", w.Header().Get("X-Total-Count"))
	for _, p := range resp.Data {
		assert.False(t, p.Deleted)
	}

	w, _ = getList(t, r, "?admin=true")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "19", w.Header().Get("X-Total-Count"))
}

func TestGetProductsBrandFacet(t *testing.T) {
	r, db := setupCatalogTest(t)
	seedProducts(t, db)

	// The facet respects the category filter but ignores the brand filter,
	// so the UI keeps showing sibling brands after one is checked.
	w, resp := getList(t, r, "?category=smartphones&brand=apex")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "6", w.Header().Get("X-Total-Count"))
	assert.Equal(t, []string{"apex", "nimbus"}, resp.Brands)
	for _, p := range resp.Data {
		assert.Equal(t, "apex", p.Brand)
	}
}

func TestGetProductsSorting(t *testing.T) {
	r, db := setupCatalogTest(t)
	seedProducts(t, db)

	w, resp := getList(t, r, "?_sort=price&_order=desc&_limit=5&_page=1")
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, resp.Data, 5)
	for i := 1; i < len(resp.Data); i++ {
		assert.GreaterOrEqual(t, resp.Data[i-1].Price, resp.Data[i].Price)
	}

	w, _ = getList(t, r, "?_sort=password")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetProductByIDNotFound(t *testing.T) {
	r, _ := setupCatalogTest(t)

	req := httptest.NewRequest(http.MethodGet, "/products/9999", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Product not found")
}
