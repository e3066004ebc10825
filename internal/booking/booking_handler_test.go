package booking_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"worknest/internal/booking"
	bookingerrors "worknest/internal/booking/errors"
	"worknest/internal/middleware"
	"worknest/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	createFn   func(ctx context.Context, userID string, req booking.CreateBookingRequest) (booking.BookingResponse, error)
	cancelFn   func(ctx context.Context, id string) (booking.BookingResponse, error)
	checkInFn  func(ctx context.Context, id string) (booking.BookingResponse, error)
	checkOutFn func(ctx context.Context, id string) (booking.BookingResponse, error)
	listMineFn func(ctx context.Context, userID string) (booking.MyBookingsResponse, error)
	sweepFn    func(ctx context.Context) (int, error)
}

func (f *fakeService) Create(ctx context.Context, userID string, req booking.CreateBookingRequest) (booking.BookingResponse, error) {
	return f.createFn(ctx, userID, req)
}
func (f *fakeService) Cancel(ctx context.Context, id string) (booking.BookingResponse, error) {
	return f.cancelFn(ctx, id)
}
func (f *fakeService) CheckIn(ctx context.Context, id string) (booking.BookingResponse, error) {
	return f.checkInFn(ctx, id)
}
func (f *fakeService) CheckOut(ctx context.Context, id string) (booking.BookingResponse, error) {
	return f.checkOutFn(ctx, id)
}
func (f *fakeService) ListMine(ctx context.Context, userID string) (booking.MyBookingsResponse, error) {
	return f.listMineFn(ctx, userID)
}
func (f *fakeService) ExpireSweep(ctx context.Context) (int, error) {
	return f.sweepFn(ctx)
}

func TestHandler_Create(t *testing.T) {
	gin.SetMode(gin.TestMode)

	userID := uuid.New().String()
	svc := &fakeService{
		createFn: func(ctx context.Context, gotUser string, req booking.CreateBookingRequest) (booking.BookingResponse, error) {
			assert.Equal(t, userID, gotUser)
			return booking.BookingResponse{ID: uuid.New().String(), Status: booking.StatusConfirmed}, nil
		},
	}
	h := booking.NewHandler(svc, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("user_id", userID)
	body := `{"workspace_id":"` + uuid.New().String() + `","start_at":"2026-09-01T09:00:00Z","end_at":"2026-09-01T11:00:00Z"}`
	c.Request = httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"ok":true`)
	assert.Contains(t, w.Body.String(), booking.StatusConfirmed)
}

func TestHandler_Create_StoresReplayEntry(t *testing.T) {
	gin.SetMode(gin.TestMode)

	resp := booking.BookingResponse{ID: uuid.New().String(), Status: booking.StatusConfirmed}
	svc := &fakeService{
		createFn: func(ctx context.Context, userID string, req booking.CreateBookingRequest) (booking.BookingResponse, error) {
			return resp, nil
		},
	}

	rdb, mock := redismock.NewClientMock()
	h := booking.NewHandler(svc, rdb)

	// The replay entry holds the original status plus the exact envelope
	// bytes, so a later replay is byte-identical to this response.
	envelope, err := json.Marshal(response.ApiEnvelope{Ok: true, Data: resp})
	assert.NoError(t, err)
	stored, err := json.Marshal(middleware.StoredResponse{Status: http.StatusCreated, Body: envelope})
	assert.NoError(t, err)
	mock.ExpectSet("idemp:/api/bookings:u1:key-1", stored, 24*time.Hour).SetVal("OK")
	mock.ExpectDel("idemp:/api/bookings:u1:key-1:lock").SetVal(1)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("user_id", uuid.New().String())
	c.Set("idempotency_cache_key", "idemp:/api/bookings:u1:key-1")
	c.Set("idempotency_lock_key", "idemp:/api/bookings:u1:key-1:lock")
	body := `{"workspace_id":"` + uuid.New().String() + `","start_at":"2026-09-01T09:00:00Z","end_at":"2026-09-01T11:00:00Z"}`
	c.Request = httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, string(envelope), w.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Create_ReleasesLockOnFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		createFn: func(ctx context.Context, userID string, req booking.CreateBookingRequest) (booking.BookingResponse, error) {
			return booking.BookingResponse{}, bookingerrors.ErrWorkspaceUnavailable
		},
	}

	rdb, mock := redismock.NewClientMock()
	h := booking.NewHandler(svc, rdb)

	mock.ExpectDel("idemp:/api/bookings:u1:key-1:lock").SetVal(1)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("user_id", uuid.New().String())
	c.Set("idempotency_cache_key", "idemp:/api/bookings:u1:key-1")
	c.Set("idempotency_lock_key", "idemp:/api/bookings:u1:key-1:lock")
	body := `{"workspace_id":"` + uuid.New().String() + `","start_at":"2026-09-01T09:00:00Z","end_at":"2026-09-01T11:00:00Z"}`
	c.Request = httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_STATE")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Create_MissingWindow(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		createFn: func(ctx context.Context, userID string, req booking.CreateBookingRequest) (booking.BookingResponse, error) {
			t.Fatal("service must not be reached")
			return booking.BookingResponse{}, nil
		},
	}
	h := booking.NewHandler(svc, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(`{"workspace_id":"x"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_CheckIn_OutsideWindow(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		checkInFn: func(ctx context.Context, id string) (booking.BookingResponse, error) {
			return booking.BookingResponse{}, bookingerrors.ErrOutsideBookingWindow
		},
	}
	h := booking.NewHandler(svc, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: uuid.New().String()}}
	c.Request = httptest.NewRequest(http.MethodPatch, "/api/bookings/x/check-in", nil)

	h.CheckIn(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_STATE")
}

func TestHandler_Cancel_NotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		cancelFn: func(ctx context.Context, id string) (booking.BookingResponse, error) {
			return booking.BookingResponse{}, bookingerrors.ErrBookingNotFound
		},
	}
	h := booking.NewHandler(svc, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: uuid.New().String()}}
	c.Request = httptest.NewRequest(http.MethodPatch, "/api/bookings/x/cancel", nil)

	h.Cancel(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "NOT_FOUND")
}

func TestHandler_Sweep(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		sweepFn: func(ctx context.Context) (int, error) { return 3, nil },
	}
	h := booking.NewHandler(svc, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/bookings/sweep", nil)

	h.Sweep(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"expired":3`)
}

func TestHandler_ListMine(t *testing.T) {
	gin.SetMode(gin.TestMode)

	userID := uuid.New().String()
	svc := &fakeService{
		listMineFn: func(ctx context.Context, gotUser string) (booking.MyBookingsResponse, error) {
			assert.Equal(t, userID, gotUser)
			return booking.MyBookingsResponse{
				Upcoming: []booking.BookingResponse{{ID: uuid.New().String()}},
				Past:     []booking.BookingResponse{},
			}, nil
		},
	}
	h := booking.NewHandler(svc, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("user_id", userID)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/bookings/my", nil)

	h.ListMine(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"upcoming"`)
}
