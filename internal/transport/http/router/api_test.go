package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"sustainably-yours/internal/core/auth"
	"sustainably-yours/internal/core/config"
	"sustainably-yours/internal/domain"
)

func init() { gin.SetMode(gin.TestMode) }

type envelope struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

func newTestEngine(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// 内存库随连接销毁，池里只留一条连接
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&domain.User{}, &domain.Product{}, &domain.Business{}, &domain.Rating{},
	))

	jwter := &auth.JWTer{Secret: []byte("test-secret"), Issuer: "test", TTL: time.Hour}
	cfg := &config.Config{Upload: config.Upload{Dir: t.TempDir(), BaseURL: "/uploads"}}
	return NewAPIEngine(zap.NewNop(), db, jwter, nil, cfg), db
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) (int, envelope) {
	t.Helper()
	var rd *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), "body: %s", w.Body.String())
	return w.Code, env
}

func registerUser(t *testing.T, r *gin.Engine, name, email, role string) string {
	t.Helper()
	status, env := doJSON(t, r, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"name": name, "email": email, "password": "password1", "role": role,
	})
	require.Equal(t, http.StatusCreated, status)
	var out struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &out))
	require.NotEmpty(t, out.Token)
	return out.Token
}

func createProduct(t *testing.T, r *gin.Engine, token, name string) string {
	t.Helper()
	status, env := doJSON(t, r, http.MethodPost, "/api/v1/products", token, gin.H{
		"name": name, "brand": "EcoBrand", "category": "clothing",
		"description": "organic cotton shirt", "price": 29.9, "sustainabilityScore": 80,
	})
	require.Equal(t, http.StatusCreated, status)
	var p domain.Product
	require.NoError(t, json.Unmarshal(env.Data, &p))
	require.NotEmpty(t, p.ID)
	return p.ID
}

func TestProductDeleteCascadesRatings(t *testing.T) {
	r, db := newTestEngine(t)

	seller := registerUser(t, r, "Sel", "sel@example.com", "seller")
	buyer1 := registerUser(t, r, "Bea", "bea@example.com", "buyer")
	buyer2 := registerUser(t, r, "Ben", "ben@example.com", "buyer")

	pid := createProduct(t, r, seller, "Shirt")

	status, _ := doJSON(t, r, http.MethodPost, "/api/v1/ratings", buyer1,
		gin.H{"rating": 5, "productId": pid})
	require.Equal(t, http.StatusCreated, status)
	status, _ = doJSON(t, r, http.MethodPost, "/api/v1/ratings", buyer2,
		gin.H{"rating": 3, "comment": "ok", "productId": pid})
	require.Equal(t, http.StatusCreated, status)

	// 评分写入后详情里的平均分已重算
	status, env := doJSON(t, r, http.MethodGet, "/api/v1/products/"+pid, "", nil)
	require.Equal(t, http.StatusOK, status)
	var detail domain.Product
	require.NoError(t, json.Unmarshal(env.Data, &detail))
	assert.Equal(t, 4.0, detail.AverageRating)
	assert.Len(t, detail.Ratings, 2)

	// 非创建者删不掉
	status, _ = doJSON(t, r, http.MethodDelete, "/api/v1/products/"+pid, buyer1, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = doJSON(t, r, http.MethodDelete, "/api/v1/products/"+pid, seller, nil)
	require.Equal(t, http.StatusOK, status)

	status, _ = doJSON(t, r, http.MethodGet, "/api/v1/products/"+pid, "", nil)
	assert.Equal(t, http.StatusNotFound, status)

	// 评分不留孤儿
	var n int64
	require.NoError(t, db.Model(&domain.Rating{}).Where("product_id = ?", pid).Count(&n).Error)
	assert.Zero(t, n)

	status, env = doJSON(t, r, http.MethodGet, "/api/v1/ratings/product/"+pid, "", nil)
	require.Equal(t, http.StatusOK, status)
	var list []domain.Rating
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Empty(t, list)
}

func TestBusinessDeleteCascadesRatings(t *testing.T) {
	r, db := newTestEngine(t)

	seller := registerUser(t, r, "Sel", "sel@example.com", "seller")
	buyer := registerUser(t, r, "Bea", "bea@example.com", "buyer")

	status, env := doJSON(t, r, http.MethodPost, "/api/v1/businesses", seller, gin.H{
		"name": "Green Goods", "description": "zero waste store",
		"location": "Lisbon", "sustainabilityScore": 90,
	})
	require.Equal(t, http.StatusCreated, status)
	var b domain.Business
	require.NoError(t, json.Unmarshal(env.Data, &b))

	status, _ = doJSON(t, r, http.MethodPost, "/api/v1/ratings", buyer,
		gin.H{"rating": 4, "businessId": b.ID})
	require.Equal(t, http.StatusCreated, status)

	status, _ = doJSON(t, r, http.MethodDelete, "/api/v1/businesses/"+b.ID, seller, nil)
	require.Equal(t, http.StatusOK, status)

	var n int64
	require.NoError(t, db.Model(&domain.Rating{}).Where("business_id = ?", b.ID).Count(&n).Error)
	assert.Zero(t, n)
}

func TestProductListEnvelope(t *testing.T) {
	r, _ := newTestEngine(t)
	seller := registerUser(t, r, "Sel", "sel@example.com", "seller")

	type listResp struct {
		Items      []domain.Product `json:"items"`
		Pagination struct {
			Page  int   `json:"page"`
			Limit int   `json:"limit"`
			Total int64 `json:"total"`
			Pages int64 `json:"pages"`
		} `json:"pagination"`
	}

	// 空结果也保持完整信封：items 为 []，total/pages 为 0
	status, env := doJSON(t, r, http.MethodGet, "/api/v1/products?search=zzz", "", nil)
	require.Equal(t, http.StatusOK, status)
	var out listResp
	require.NoError(t, json.Unmarshal(env.Data, &out))
	assert.NotNil(t, out.Items)
	assert.Empty(t, out.Items)
	assert.Equal(t, 1, out.Pagination.Page)
	assert.Equal(t, 20, out.Pagination.Limit)
	assert.EqualValues(t, 0, out.Pagination.Total)
	assert.EqualValues(t, 0, out.Pagination.Pages)

	for i := 0; i < 3; i++ {
		createProduct(t, r, seller, fmt.Sprintf("Shirt %d", i))
	}

	status, env = doJSON(t, r, http.MethodGet, "/api/v1/products?limit=2", "", nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(env.Data, &out))
	assert.Len(t, out.Items, 2)
	assert.EqualValues(t, 3, out.Pagination.Total)
	assert.EqualValues(t, 2, out.Pagination.Pages)

	status, env = doJSON(t, r, http.MethodGet, "/api/v1/products?limit=2&page=2", "", nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(env.Data, &out))
	assert.Len(t, out.Items, 1)
	assert.Equal(t, 2, out.Pagination.Page)
}

func TestPublicDetailSeesOptionalIdentity(t *testing.T) {
	r, _ := newTestEngine(t)
	seller := registerUser(t, r, "Sel", "sel@example.com", "seller")
	pid := createProduct(t, r, seller, "Shirt")

	// 带 token 访问公共接口不报 401，未带也照常放行
	status, _ := doJSON(t, r, http.MethodGet, "/api/v1/products/"+pid, seller, nil)
	assert.Equal(t, http.StatusOK, status)
	status, _ = doJSON(t, r, http.MethodGet, "/api/v1/products/"+pid, "", nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestEngineBuildsTwice(t *testing.T) {
	// 每个引擎一份 Registry，重复构建不会因重复路由 panic
	assert.NotPanics(t, func() {
		newTestEngine(t)
		newTestEngine(t)
	})
}
