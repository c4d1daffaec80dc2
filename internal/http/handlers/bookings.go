package handlers

import (
	"net/http"
	"strconv"

	"backoffice/internal/domain/models"
	"backoffice/internal/http/middleware"
	"backoffice/internal/services"

	"github.com/gin-gonic/gin"
)

func bookingService(c *gin.Context) services.BookingService {
	return services.BookingService{RequestID: middleware.GetRequestID(c)}
}

type createBookingRequest struct {
	PilgrimID int64  `json:"pilgrim_id"`
	PackageID int64  `json:"package_id"`
	Status    string `json:"status"`
}

// POST /api/bookings
func CreateBooking(c *gin.Context) {
	var req createBookingRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	b, err := bookingService(c).Create(req.PilgrimID, req.PackageID, req.Status, actorName(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"booking": b})
}

// GET /api/bookings?pilgrim_id=&package_id=&status=
func GetBookings(c *gin.Context) {
	pilgrimID, _ := strconv.ParseInt(c.Query("pilgrim_id"), 10, 64)
	packageID, _ := strconv.ParseInt(c.Query("package_id"), 10, 64)

	list, err := bookingService(c).List(pilgrimID, packageID, c.Query("status"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": list, "count": len(list)})
}

// GET /api/bookings/:id
func GetBookingByID(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	svc := bookingService(c)
	b, err := svc.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	payments, _ := paymentService(c).PaymentRepo.ListByBooking(id)
	history, _ := svc.History(id)
	c.JSON(http.StatusOK, gin.H{
		"booking":  b,
		"payments": payments,
		"history":  history,
	})
}

type updateBookingRequest struct {
	TicketNumber   *string `json:"ticket_number"`
	RoomAssignment *string `json:"room_assignment"`
	Notes          *string `json:"notes"`
	PaymentStatus  *string `json:"payment_status"`
}

// PUT /api/bookings/:id
func UpdateBooking(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	var req updateBookingRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	b, err := bookingService(c).Update(id, models.BookingUpdate{
		TicketNumber:   req.TicketNumber,
		RoomAssignment: req.RoomAssignment,
		Notes:          req.Notes,
		PaymentStatus:  req.PaymentStatus,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": b})
}

// DELETE /api/bookings/:id
func DeleteBooking(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	if err := bookingService(c).Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "booking dihapus"})
}

type setStatusRequest struct {
	Status string `json:"status"`
}

// POST /api/bookings/:id/status
func SetBookingStatus(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	var req setStatusRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	b, err := bookingService(c).SetStatus(id, req.Status, actorName(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": b})
}

type bulkStatusRequest struct {
	IDs    []int64 `json:"ids"`
	IDsCSV string  `json:"ids_csv"`
	Status string  `json:"status"`
}

// POST /api/bookings/bulk-status
func BulkBookingStatus(c *gin.Context) {
	var req bulkStatusRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	ids := services.ParseIDList(req.IDs, req.IDsCSV)
	result, err := bookingService(c).BulkSetStatus(ids, req.Status, actorName(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GET /api/bookings/:id/voucher
func GetBookingVoucherPDF(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	svc := services.DocsService{RequestID: middleware.GetRequestID(c)}
	pdf, filename, err := svc.GenerateVoucher(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// POST /api/bookings/:id/reconcile
func ReconcileBooking(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	b, err := paymentService(c).Reconcile(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": b})
}
