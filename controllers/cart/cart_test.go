package cartControllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	authControllers "github.com/satenderkumar11/BuzzBasket/controllers/auth"
	cartControllers "github.com/satenderkumar11/BuzzBasket/controllers/cart"
	"github.com/satenderkumar11/BuzzBasket/middleware"
	"github.com/satenderkumar11/BuzzBasket/models"
)

type cartResponse struct {
	Cart        []models.CartItem `json:"cart"`
	UpdatedCart []models.CartItem `json:"updatedCart"`
}

func setupCartTest(t *testing.T) (*gin.Engine, *gorm.DB, *http.Cookie) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Product{}, &models.Cart{}, &models.CartItem{}))

	user := models.User{Name: "Alice", Email: "alice@example.com", Password: "x"}
	require.NoError(t, db.Create(&user).Error)

	token, err := authControllers.NewToken(user.ID)
	require.NoError(t, err)

	r := gin.New()
	cart := r.Group("/cart", middleware.VerifyToken)
	cart.GET("", cartControllers.GetUserCart(db))
	cart.POST("", cartControllers.HandleQuantityInCart(db))
	cart.DELETE("", cartControllers.DeleteFromCart(db))
	cart.DELETE("/delete", cartControllers.ClearUserCart(db))
	cart.PATCH("/:id", cartControllers.UpdateCart(db))

	return r, db, &http.Cookie{Name: "token", Value: token}
}

func seedProduct(t *testing.T, db *gorm.DB, title string) models.Product {
	t.Helper()
	p := models.Product{
		Title: title, Description: "d", Price: 100,
		Brand: "apex", Category: "smartphones", Thumbnail: "t.jpg",
	}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func cartJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGetCartLazilyCreates(t *testing.T) {
	r, db, cookie := setupCartTest(t)

	var count int64
	require.NoError(t, db.Model(&models.Cart{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)

	w := cartJSON(t, r, http.MethodGet, "/cart", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	var resp cartResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Cart)

	require.NoError(t, db.Model(&models.Cart{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	// A second fetch reuses the same cart.
	w = cartJSON(t, r, http.MethodGet, "/cart", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, db.Model(&models.Cart{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestQuantityMergeAndRemove(t *testing.T) {
	r, db, cookie := setupCartTest(t)
	p := seedProduct(t, db, "Phone")

	// Add 2.
	w := cartJSON(t, r, http.MethodPost, "/cart", gin.H{"productId": p.ID, "quantity": 2}, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	var resp cartResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.UpdatedCart, 1)
	assert.Equal(t, 2, resp.UpdatedCart[0].Quantity)

	// Merge +3 into the same line.
	w = cartJSON(t, r, http.MethodPost, "/cart", gin.H{"productId": p.ID, "quantity": 3}, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.UpdatedCart, 1)
	assert.Equal(t, 5, resp.UpdatedCart[0].Quantity)

	// Merging -5 drops the line entirely.
	w = cartJSON(t, r, http.MethodPost, "/cart", gin.H{"productId": p.ID, "quantity": -5}, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.UpdatedCart)

	var count int64
	require.NoError(t, db.Model(&models.CartItem{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestAddThenOverdraftRemovesLine(t *testing.T) {
	r, db, cookie := setupCartTest(t)
	p := seedProduct(t, db, "Phone")

	cartJSON(t, r, http.MethodPost, "/cart", gin.H{"productId": p.ID, "quantity": 2}, cookie)
	w := cartJSON(t, r, http.MethodPost, "/cart", gin.H{"productId": p.ID, "quantity": -3}, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	var resp cartResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.UpdatedCart)
}

func TestAddUnknownProduct(t *testing.T) {
	r, _, cookie := setupCartTest(t)

	w := cartJSON(t, r, http.MethodPost, "/cart", gin.H{"productId": 9999, "quantity": 1}, cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Product does not exist")
}

func TestDeleteFromCart(t *testing.T) {
	r, db, cookie := setupCartTest(t)
	p := seedProduct(t, db, "Phone")
	other := seedProduct(t, db, "Laptop")

	cartJSON(t, r, http.MethodPost, "/cart", gin.H{"productId": p.ID, "quantity": 1}, cookie)
	cartJSON(t, r, http.MethodPost, "/cart", gin.H{"productId": other.ID, "quantity": 1}, cookie)

	w := cartJSON(t, r, http.MethodDelete, "/cart", gin.H{"productId": p.ID}, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	var resp cartResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.UpdatedCart, 1)
	assert.Equal(t, other.ID, resp.UpdatedCart[0].Product.ID)

	// Deleting the same product again is a 404.
	w = cartJSON(t, r, http.MethodDelete, "/cart", gin.H{"productId": p.ID}, cookie)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestClearCartKeepsCartRow(t *testing.T) {
	r, db, cookie := setupCartTest(t)
	p := seedProduct(t, db, "Phone")

	cartJSON(t, r, http.MethodPost, "/cart", gin.H{"productId": p.ID, "quantity": 3}, cookie)

	w := cartJSON(t, r, http.MethodDelete, "/cart/delete", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	var itemCount, cartCount int64
	require.NoError(t, db.Model(&models.CartItem{}).Count(&itemCount).Error)
	require.NoError(t, db.Model(&models.Cart{}).Count(&cartCount).Error)
	assert.EqualValues(t, 0, itemCount)
	assert.EqualValues(t, 1, cartCount) // cleared, not deleted
}

func TestCartRequiresToken(t *testing.T) {
	r, _, _ := setupCartTest(t)

	w := cartJSON(t, r, http.MethodGet, "/cart", nil, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}
