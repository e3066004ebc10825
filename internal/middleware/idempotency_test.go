package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

func TestIdempotency_ReplaysStoredStatusAndBody(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rdb, mock := redismock.NewClientMock()

	body := []byte(`{"ok":true,"data":{"id":"7f1c"}}`)
	stored, err := json.Marshal(StoredResponse{Status: http.StatusCreated, Body: body})
	assert.NoError(t, err)
	mock.ExpectGet("idemp:/api/bookings:emp-1:key-1").SetVal(string(stored))

	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("user_id", "emp-1") })
	r.Use(Idempotency(rdb))
	r.POST("/api/bookings", func(c *gin.Context) {
		t.Fatal("handler must not run on a replayed key")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", nil)
	req.Header.Set("Idempotency-Key", "key-1")
	r.ServeHTTP(w, req)

	// Same status and byte-identical envelope as the first response.
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, string(body), w.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotency_RejectsKeyStillInFlight(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rdb, mock := redismock.NewClientMock()
	mock.ExpectGet("idemp:/api/bookings:emp-1:key-1").RedisNil()
	mock.ExpectSetNX("idemp:/api/bookings:emp-1:key-1:lock", "locked", 30*time.Second).SetVal(false)

	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("user_id", "emp-1") })
	r.Use(Idempotency(rdb))
	r.POST("/api/bookings", func(c *gin.Context) {
		t.Fatal("handler must not run while the key is locked")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", nil)
	req.Header.Set("Idempotency-Key", "key-1")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "PROCESSING")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotency_FirstRequestPassesThroughWithKeys(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rdb, mock := redismock.NewClientMock()
	mock.ExpectGet("idemp:/api/bookings:emp-1:key-1").RedisNil()
	mock.ExpectSetNX("idemp:/api/bookings:emp-1:key-1:lock", "locked", 30*time.Second).SetVal(true)

	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("user_id", "emp-1") })
	r.Use(Idempotency(rdb))
	r.POST("/api/bookings", func(c *gin.Context) {
		assert.Equal(t, "idemp:/api/bookings:emp-1:key-1", c.GetString("idempotency_cache_key"))
		assert.Equal(t, "idemp:/api/bookings:emp-1:key-1:lock", c.GetString("idempotency_lock_key"))
		c.Status(http.StatusCreated)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", nil)
	req.Header.Set("Idempotency-Key", "key-1")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
