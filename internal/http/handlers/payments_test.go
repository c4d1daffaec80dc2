package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	intconfig "backoffice/internal/config"
	"backoffice/internal/http/middleware"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPaymentRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	intconfig.DB = db
	mock.MatchExpectationsInOrder(false)

	r := gin.New()
	r.Use(middleware.RequestID())
	api := r.Group("/api")
	{
		api.POST("/bookings/:id/payments", CreateBookingPayment)
		api.GET("/bookings/:id/payments", GetBookingPayments)
		api.DELETE("/payments/:id", DeletePayment)
	}
	return r, mock, func() { db.Close() }
}

func TestCreatePaymentRejectsZeroAmount(t *testing.T) {
	r, _, done := newPaymentRouter(t)
	defer done()

	body := `{"amount": 0, "payment_method": "CASH"}`
	req := httptest.NewRequest(http.MethodPost, "/api/bookings/5/payments", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "jumlah harus lebih dari nol")
}

func TestCreatePaymentRequiresMethod(t *testing.T) {
	r, _, done := newPaymentRouter(t)
	defer done()

	body := `{"amount": 100000}`
	req := httptest.NewRequest(http.MethodPost, "/api/bookings/5/payments", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "metode pembayaran")
}

func TestDeletePaymentNotFoundMapsTo404(t *testing.T) {
	r, mock, done := newPaymentRouter(t)
	defer done()

	mock.ExpectQuery("FROM payments WHERE id=").WithArgs(int64(12)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	req := httptest.NewRequest(http.MethodDelete, "/api/payments/12", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetBookingPayments(t *testing.T) {
	r, mock, done := newPaymentRouter(t)
	defer done()

	rows := sqlmock.NewRows([]string{
		"id", "booking_id", "amount", "currency_code", "payment_method",
		"payment_date", "reference_number", "notes", "recorded_by", "created_at",
	}).AddRow(1, 5, 200000, "SAR", "TRANSFER", "2026-08-01", "TRX-1", "", 2, "")

	mock.ExpectQuery("FROM payments WHERE booking_id=").WithArgs(int64(5)).
		WillReturnRows(rows)

	req := httptest.NewRequest(http.MethodGet, "/api/bookings/5/payments", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":1`)
	assert.Contains(t, w.Body.String(), "TRX-1")
}
