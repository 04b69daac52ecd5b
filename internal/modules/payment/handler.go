package payment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/farhanak624/kshetra-backend/internal/pkg/response"
	"github.com/farhanak624/kshetra-backend/internal/repository"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts payment endpoints. Order creation and verification
// are public so guest bookings can pay; refunds are admin-only.
func (h *Handler) RegisterRoutes(public, admin *gin.RouterGroup) {
	public.POST("/payments/orders", h.CreateOrder)
	public.POST("/payments/verify", h.Verify)
	public.POST("/payments/fail", h.Fail)
	public.GET("/payments/bookings/:booking_id", h.Status)

	admin.POST("/payments/orders/:order_id/refund", h.Refund)
}

func (h *Handler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	order, err := h.service.CreateOrder(c.Request.Context(), req.BookingID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, order)
}

func (h *Handler) Verify(c *gin.Context) {
	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	b, err := h.service.Verify(c.Request.Context(), &req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, VerifyResponse{Booking: b})
}

func (h *Handler) Status(c *gin.Context) {
	bookingID, err := strconv.ParseInt(c.Param("booking_id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "booking_id must be an integer")
		return
	}

	status, err := h.service.Status(c.Request.Context(), bookingID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, status)
}

func (h *Handler) Fail(c *gin.Context) {
	var req FailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	if err := h.service.Fail(c.Request.Context(), &req); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"recorded": true})
}

func (h *Handler) Refund(c *gin.Context) {
	var req RefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	order, err := h.service.Refund(c.Request.Context(), c.Param("order_id"), req.Amount)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, order)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrOrderNotFound),
		errors.Is(err, ErrBookingNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, ErrInvalidSignature):
		response.Error(c, http.StatusBadRequest, "INVALID_SIGNATURE", err.Error())
	case errors.Is(err, ErrAlreadyPaid),
		errors.Is(err, ErrAlreadyRefunded),
		errors.Is(err, ErrBookingNotOpen),
		errors.Is(err, ErrNotPaid):
		response.Error(c, http.StatusUnprocessableEntity, "INVALID_STATE", err.Error())
	case errors.Is(err, repository.ErrSeatCapacity),
		errors.Is(err, repository.ErrNoSlots):
		response.Error(c, http.StatusConflict, "CAPACITY_EXHAUSTED", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}
