package handlers

import (
	"net/http"

	"backoffice/internal/domain/models"
	"backoffice/internal/http/middleware"
	"backoffice/internal/services"

	"github.com/gin-gonic/gin"
)

func paymentService(c *gin.Context) services.PaymentService {
	return services.PaymentService{RequestID: middleware.GetRequestID(c)}
}

// POST /api/bookings/:id/payments
func CreateBookingPayment(c *gin.Context) {
	bookingID, ok := PathID(c, "id")
	if !ok {
		return
	}
	var req models.PaymentInput
	if !BindJSONOrError(c, &req) {
		return
	}

	recordedBy := int64(middleware.GetAuthUser(c).UserID)
	p, err := paymentService(c).AddPayment(bookingID, req, recordedBy)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"payment": p})
}

// GET /api/bookings/:id/payments
func GetBookingPayments(c *gin.Context) {
	bookingID, ok := PathID(c, "id")
	if !ok {
		return
	}
	list, err := paymentService(c).PaymentRepo.ListByBooking(bookingID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payments": list, "count": len(list)})
}

// DELETE /api/payments/:id
func DeletePayment(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	if err := paymentService(c).RemovePayment(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "payment dihapus"})
}

// GET /api/payments/:id/receipt
func GetPaymentReceiptPDF(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	svc := services.DocsService{RequestID: middleware.GetRequestID(c)}
	pdf, filename, err := svc.GenerateReceipt(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
