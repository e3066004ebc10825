package attendance_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"worknest/internal/attendance"
	attendanceerrors "worknest/internal/attendance/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	checkInFn  func(ctx context.Context, employeeID, employeeName string, req attendance.CheckInRequest) (attendance.AttendanceResponse, error)
	checkOutFn func(ctx context.Context, employeeID string) (attendance.AttendanceResponse, error)
	getMineFn  func(ctx context.Context, employeeID string, page, limit int) ([]attendance.AttendanceResponse, int64, error)
}

func (f *fakeService) CheckIn(ctx context.Context, employeeID, employeeName string, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
	return f.checkInFn(ctx, employeeID, employeeName, req)
}
func (f *fakeService) CheckOut(ctx context.Context, employeeID string) (attendance.AttendanceResponse, error) {
	return f.checkOutFn(ctx, employeeID)
}
func (f *fakeService) GetMine(ctx context.Context, employeeID string, page, limit int) ([]attendance.AttendanceResponse, int64, error) {
	return f.getMineFn(ctx, employeeID, page, limit)
}

func TestHandler_CheckIn(t *testing.T) {
	gin.SetMode(gin.TestMode)

	userID := uuid.New().String()
	svc := &fakeService{
		checkInFn: func(ctx context.Context, employeeID, employeeName string, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
			assert.Equal(t, userID, employeeID)
			assert.Equal(t, "Alex Riley", employeeName)
			assert.Equal(t, attendance.WorkModeRemote, req.WorkMode)
			return attendance.AttendanceResponse{ID: uuid.New().String(), WorkMode: req.WorkMode}, nil
		},
	}
	h := attendance.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("user_id", userID)
	c.Set("user_name", "Alex Riley")
	c.Request = httptest.NewRequest(http.MethodPost, "/api/attendance/checkin", strings.NewReader(`{"work_mode":"remote"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	h.CheckIn(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"ok":true`)
}

func TestHandler_CheckIn_Duplicate(t *testing.T) {
	gin.SetMode(gin.TestMode)

	existingID := uuid.New().String()
	svc := &fakeService{
		checkInFn: func(ctx context.Context, employeeID, employeeName string, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
			return attendance.AttendanceResponse{ID: existingID}, attendanceerrors.ErrAlreadyCheckedIn
		},
	}
	h := attendance.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/attendance/checkin", strings.NewReader(`{"work_mode":"office"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	h.CheckIn(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "CONFLICT")
	assert.Contains(t, w.Body.String(), existingID)
}

func TestHandler_GetMine_Paginates(t *testing.T) {
	gin.SetMode(gin.TestMode)

	userID := uuid.New().String()
	svc := &fakeService{
		getMineFn: func(ctx context.Context, employeeID string, page, limit int) ([]attendance.AttendanceResponse, int64, error) {
			assert.Equal(t, userID, employeeID)
			assert.Equal(t, 2, page)
			assert.Equal(t, 10, limit)
			return []attendance.AttendanceResponse{{ID: uuid.New().String()}}, 25, nil
		},
	}
	h := attendance.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("user_id", userID)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/attendance/my?page=2&limit=10", nil)

	h.GetMine(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":25`)
	assert.Contains(t, w.Body.String(), `"totalPages":3`)
	assert.Contains(t, w.Body.String(), `"page":2`)
}

func TestHandler_CheckOut_NoCheckIn(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		checkOutFn: func(ctx context.Context, employeeID string) (attendance.AttendanceResponse, error) {
			return attendance.AttendanceResponse{}, attendanceerrors.ErrNoCheckInFound
		},
	}
	h := attendance.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPut, "/api/attendance/checkout", nil)

	h.CheckOut(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "NOT_FOUND")
}
