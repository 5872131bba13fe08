package userControllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	authControllers "github.com/satenderkumar11/BuzzBasket/controllers/auth"
	userControllers "github.com/satenderkumar11/BuzzBasket/controllers/user"
	"github.com/satenderkumar11/BuzzBasket/middleware"
	"github.com/satenderkumar11/BuzzBasket/models"
)

func setupUserTest(t *testing.T) (*gin.Engine, *gorm.DB, models.User, *http.Cookie) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	user := models.User{Name: "Alice", Email: "alice@example.com", Password: "secret-hash"}
	require.NoError(t, db.Create(&user).Error)

	token, err := authControllers.NewToken(user.ID)
	require.NoError(t, err)

	r := gin.New()
	users := r.Group("/users", middleware.VerifyToken)
	users.GET("/:id", userControllers.GetUserByID(db))
	users.PATCH("/:id", userControllers.UpdateUser(db))

	return r, db, user, &http.Cookie{Name: "token", Value: token}
}

func userJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}, cookie *http.Cookie) *httptest.ResponseRecorder {
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

func userPath(id uint) string {
	return "/users/" + strconv.FormatUint(uint64(id), 10)
}

func TestGetUserByID(t *testing.T) {
	r, _, user, cookie := setupUserTest(t)

	w := userJSON(t, r, http.MethodGet, userPath(user.ID), nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	var got models.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Alice", got.Name)
	assert.Equal(t, "alice@example.com", got.Email)

	// The hash never serializes through the profile.
	assert.NotContains(t, w.Body.String(), `"password"`)
	assert.NotContains(t, w.Body.String(), "secret-hash")
}

func TestGetUserByIDNotFound(t *testing.T) {
	r, _, _, cookie := setupUserTest(t)

	w := userJSON(t, r, http.MethodGet, "/users/9999", nil, cookie)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetUserByIDRequiresToken(t *testing.T) {
	r, _, user, _ := setupUserTest(t)

	w := userJSON(t, r, http.MethodGet, userPath(user.ID), nil, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestUpdateUser(t *testing.T) {
	r, db, user, cookie := setupUserTest(t)

	w := userJSON(t, r, http.MethodPatch, userPath(user.ID), gin.H{
		"name": "Alice B",
		"addresses": []gin.H{
			{"street": "12 Baker St", "city": "Pune", "state": "MH", "postalCode": "411001", "country": "IN"},
		},
	}, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "secret-hash")

	var stored models.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	assert.Equal(t, "Alice B", stored.Name)
	require.Len(t, stored.Addresses, 1)
	assert.Equal(t, "Pune", stored.Addresses[0].City)
	assert.Equal(t, "alice@example.com", stored.Email) // untouched fields survive
}

func TestUpdateUserPartial(t *testing.T) {
	r, db, user, cookie := setupUserTest(t)

	user.Addresses = []models.Address{{Street: "1 Main St", City: "Mumbai"}}
	require.NoError(t, db.Save(&user).Error)

	w := userJSON(t, r, http.MethodPatch, userPath(user.ID), gin.H{"name": "Alice C"}, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	var stored models.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	assert.Equal(t, "Alice C", stored.Name)
	require.Len(t, stored.Addresses, 1) // addresses untouched when omitted
	assert.Equal(t, "Mumbai", stored.Addresses[0].City)
}

func TestUpdateUserNotFound(t *testing.T) {
	r, _, _, cookie := setupUserTest(t)

	w := userJSON(t, r, http.MethodPatch, "/users/9999", gin.H{"name": "Nobody"}, cookie)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
