package productcontroller

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/satenderkumar11/BuzzBasket/models"
	"gorm.io/gorm"
)

// sortColumns whitelists the fields a client may sort by; the keys are the
// JSON names the frontend sends in _sort.
var sortColumns = map[string]string{
	"price":              "price",
	"rating":             "rating",
	"title":              "title",
	"discountPercentage": "discount_percentage",
	"createdAt":          "created_at",
}

// GET /products
//
// Filters: ?category=a,b&brand=x,y   Sorting: ?_sort=price&_order=desc
// Pagination: ?_page=2&_limit=10     Admin view: ?admin=true (includes deleted)
//
// The response carries the page of products plus the distinct brand facet for
// the active category filter, and X-Total-Count holds the filtered count
// before pagination. Both are recomputed from the live table on every call.
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		admin := c.Query("admin") != ""

		var categories, brandFilter []string
		if v := c.Query("category"); v != "" {
			categories = strings.Split(v, ",")
		}
		if v := c.Query("brand"); v != "" {
			brandFilter = strings.Split(v, ",")
		}

		// Each caller gets a fresh query; withBrand controls whether the
		// brand filter applies. The brand facet leaves it off so unchecking
		// one brand in the UI does not hide the others.
		filtered := func(withBrand bool) *gorm.DB {
			q := db.Model(&models.Product{})
			if !admin {
				q = q.Where("deleted = ?", false)
			}
			if len(categories) > 0 {
				q = q.Where("category IN ?", categories)
			}
			if withBrand && len(brandFilter) > 0 {
				q = q.Where("brand IN ?", brandFilter)
			}
			return q
		}

		var total int64
		if err := filtered(true).Count(&total).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count products"})
			return
		}

		var brands []string
		if err := filtered(false).Distinct("brand").Order("brand").Pluck("brand", &brands).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch brand facet"})
			return
		}

		query := filtered(true)

		if sortField := c.Query("_sort"); sortField != "" {
			column, ok := sortColumns[sortField]
			if !ok {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid _sort field"})
				return
			}
			order := strings.ToLower(c.DefaultQuery("_order", "asc"))
			if order != "asc" && order != "desc" {
				order = "asc"
			}
			query = query.Order(column + " " + order)
		}

		if pageStr, limitStr := c.Query("_page"), c.Query("_limit"); pageStr != "" && limitStr != "" {
			page, err1 := strconv.Atoi(pageStr)
			limit, err2 := strconv.Atoi(limitStr)
			if err1 != nil || err2 != nil || page < 1 || limit < 1 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pagination params"})
				return
			}
			query = query.Offset((page - 1) * limit).Limit(limit)
		}

		var products []models.Product
		if err := query.Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}

		c.Header("X-Total-Count", strconv.FormatInt(total, 10))
		c.JSON(http.StatusOK, gin.H{
			"status":  "success",
			"message": "All products are successfully fetched",
			"data":    products,
			"brands":  brands,
		})
	}
}
