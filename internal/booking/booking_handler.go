package booking

import (
	"encoding/json"
	"net/http"
	"time"

	"worknest/internal/middleware"
	"worknest/internal/shared/apperror"
	"worknest/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const idempotencyCacheTTL = 24 * time.Hour

type Handler struct {
	service Service
	rdb     *redis.Client
}

// NewHandler wires the booking endpoints. rdb may be nil; idempotency replay
// is then disabled and every POST goes through.
func NewHandler(service Service, rdb *redis.Client) *Handler {
	return &Handler{service: service, rdb: rdb}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	resp, err := h.service.Create(c.Request.Context(), c.GetString("user_id"), req)
	if err != nil {
		h.releaseIdempotencyLock(c)
		writeServiceError(c, err)
		return
	}

	h.storeIdempotentResponse(c, http.StatusCreated, resp)
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) Cancel(c *gin.Context) {
	resp, err := h.service.Cancel(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) CheckIn(c *gin.Context) {
	resp, err := h.service.CheckIn(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) CheckOut(c *gin.Context) {
	resp, err := h.service.CheckOut(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ListMine(c *gin.Context) {
	resp, err := h.service.ListMine(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Sweep(c *gin.Context) {
	expired, err := h.service.ExpireSweep(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, SweepResponse{Expired: expired}, nil)
}

// storeIdempotentResponse caches the status and the same envelope bytes the
// client just received, so a replayed Idempotency-Key gets a byte-identical
// answer.
func (h *Handler) storeIdempotentResponse(c *gin.Context, status int, resp BookingResponse) {
	cacheKey := c.GetString("idempotency_cache_key")
	if h.rdb == nil || cacheKey == "" {
		return
	}
	if body, err := json.Marshal(response.ApiEnvelope{Ok: true, Data: resp}); err == nil {
		if stored, err := json.Marshal(middleware.StoredResponse{Status: status, Body: body}); err == nil {
			h.rdb.Set(c.Request.Context(), cacheKey, stored, idempotencyCacheTTL)
		}
	}
	if lockKey := c.GetString("idempotency_lock_key"); lockKey != "" {
		h.rdb.Del(c.Request.Context(), lockKey)
	}
}

// releaseIdempotencyLock frees the key after a failed create so the client
// can retry with the same Idempotency-Key.
func (h *Handler) releaseIdempotencyLock(c *gin.Context) {
	lockKey := c.GetString("idempotency_lock_key")
	if h.rdb == nil || lockKey == "" {
		return
	}
	h.rdb.Del(c.Request.Context(), lockKey)
}
