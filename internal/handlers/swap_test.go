package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"rewear/internal/db"
	"rewear/internal/middleware"
	"rewear/internal/models"
	"rewear/internal/services"
	"rewear/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.Migrate(gdb))
	db.DB = gdb
}

// setupRouter 注册真实路由，把 user 直接注入请求上下文代替会话中间件
func setupRouter(user *models.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if user != nil {
			c.Set(middleware.CheckUserKey, user)
		}
		c.Next()
	})

	itemHandler := NewItemHandler()
	swapHandler := NewSwapHandler()

	r.GET("/api/items/:pid", itemHandler.Detail)
	authorized := r.Group("/api", middleware.AuthRequired())
	{
		authorized.POST("/items", itemHandler.Create)
		authorized.POST("/swaps", swapHandler.Create)
		authorized.POST("/swaps/:sid/accept", swapHandler.Accept)
		authorized.POST("/swaps/:sid/cancel", swapHandler.Cancel)
	}
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

var seq int

func seedUser(t *testing.T, points int) *models.User {
	t.Helper()
	seq++
	user := models.User{
		Username: fmt.Sprintf("u%d", seq),
		Email:    fmt.Sprintf("u%d@example.com", seq),
		Password: "x",
		Points:   points,
	}
	require.NoError(t, db.DB.Create(&user).Error)
	return &user
}

func seedItem(t *testing.T, owner *models.User, points int, status models.ItemStatus) *models.Item {
	t.Helper()
	item := models.Item{
		Pid:       utils.RandStringBytesMaskImpr(8),
		UserID:    owner.ID,
		Title:     "风衣",
		Category:  "outerwear",
		Kind:      "casual",
		Size:      "L",
		Condition: "good",
		Points:    points,
		Status:    status,
	}
	require.NoError(t, db.DB.Create(&item).Error)
	return &item
}

func TestCreateSwapEndpointErrorMapping(t *testing.T) {
	setupTestDB(t)
	owner := seedUser(t, 0)
	requester := seedUser(t, 100)
	item := seedItem(t, owner, 150, models.ItemStatusAvailable)
	r := setupRouter(requester)

	t.Run("insufficient points -> 400 with amounts", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/swaps",
			services.CreateSwapInput{ItemID: item.ID, PointsOffered: 150})
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.EqualValues(t, 150, body["required"])
		assert.EqualValues(t, 100, body["available"])
	})

	t.Run("unknown item -> 404", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/swaps", services.CreateSwapInput{ItemID: 9999})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("duplicate pending -> 409", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/swaps", services.CreateSwapInput{ItemID: item.ID})
		require.Equal(t, http.StatusCreated, w.Code)

		w = doJSON(t, r, http.MethodPost, "/api/swaps", services.CreateSwapInput{ItemID: item.ID})
		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestAcceptSwapEndpointForbidden(t *testing.T) {
	setupTestDB(t)
	owner := seedUser(t, 0)
	requester := seedUser(t, 0)
	stranger := seedUser(t, 0)
	item := seedItem(t, owner, 100, models.ItemStatusAvailable)

	swap, err := services.CreateSwap(requester, services.CreateSwapInput{ItemID: item.ID})
	require.NoError(t, err)

	// 非物主接受 → 403
	w := doJSON(t, setupRouter(stranger), http.MethodPost, "/api/swaps/"+swap.Sid+"/accept", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// 物主接受 → 200
	w = doJSON(t, setupRouter(owner), http.MethodPost, "/api/swaps/"+swap.Sid+"/accept", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// 再接受 → 400（终态）
	w = doJSON(t, setupRouter(owner), http.MethodPost, "/api/swaps/"+swap.Sid+"/accept", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEndpointsRequireLogin(t *testing.T) {
	setupTestDB(t)
	r := setupRouter(nil)

	w := doJSON(t, r, http.MethodPost, "/api/swaps", services.CreateSwapInput{ItemID: 1})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateItemValidation(t *testing.T) {
	setupTestDB(t)
	user := seedUser(t, 0)
	r := setupRouter(user)

	t.Run("invalid enum -> 400", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/items", gin.H{
			"title": "测试", "category": "spaceship", "type": "casual", "size": "M", "condition": "good",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("points out of range -> 400", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/items", gin.H{
			"title": "测试", "category": "tops", "type": "casual", "size": "M", "condition": "good",
			"points": 10001,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("valid item created pending", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/items", gin.H{
			"title": "旧毛衣", "category": "tops", "type": "casual", "size": "M", "condition": "good",
			"points": 120,
		})
		require.Equal(t, http.StatusCreated, w.Code)

		var item models.Item
		require.NoError(t, db.DB.Where("user_id = ?", user.ID).First(&item).Error)
		assert.Equal(t, models.ItemStatusPending, item.Status)
	})
}

func TestItemDetailCountsViews(t *testing.T) {
	setupTestDB(t)
	owner := seedUser(t, 0)
	item := seedItem(t, owner, 100, models.ItemStatusAvailable)
	r := setupRouter(nil)

	w := doJSON(t, r, http.MethodGet, "/api/items/"+item.Pid, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, r, http.MethodGet, "/api/items/"+item.Pid, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got models.Item
	require.NoError(t, db.DB.First(&got, item.ID).Error)
	assert.Equal(t, 2, got.Views)
}
