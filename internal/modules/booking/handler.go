package booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/farhanak624/kshetra-backend/internal/domain"
	"github.com/farhanak624/kshetra-backend/internal/modules/coupon"
	"github.com/farhanak624/kshetra-backend/internal/pkg/response"
	"github.com/farhanak624/kshetra-backend/internal/repository"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the booking endpoints. The public group takes
// anonymous guest bookings; the private group requires a token.
func (h *Handler) RegisterRoutes(public, private *gin.RouterGroup) {
	public.POST("/bookings/public", h.CreatePublic)

	private.POST("/bookings", h.Create)
	private.GET("/bookings", h.List)
	private.GET("/bookings/:id", h.Get)
	private.POST("/bookings/:id/cancel", h.Cancel)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	userID := currentUserID(c)
	b, err := h.service.Create(c.Request.Context(), userID, &req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, b)
}

func (h *Handler) CreatePublic(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	b, err := h.service.Create(c.Request.Context(), nil, &req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, b)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid booking id")
		return
	}

	b, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	if !canAccess(c, b) {
		h.writeError(c, ErrNotOwner)
		return
	}
	response.Success(c, http.StatusOK, b)
}

func (h *Handler) List(c *gin.Context) {
	var q ListBookingsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 || q.Limit > 100 {
		q.Limit = 20
	}

	f := repository.BookingFilter{
		Status: domain.BookingStatus(q.Status),
		RoomID: q.RoomID,
		Limit:  q.Limit,
		Offset: (q.Page - 1) * q.Limit,
	}
	if isAdmin(c) {
		f.UserID = q.UserID
		f.GuestEmail = q.Email
	} else {
		// Non-admin callers only ever see their own bookings.
		f.UserID = currentUserID(c)
		f.GuestEmail = ""
	}

	bookings, total, err := h.service.List(c.Request.Context(), f)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, ListBookingsResponse{
		Bookings: bookings,
		Total:    total,
		Page:     q.Page,
		Limit:    q.Limit,
	})
}

func (h *Handler) Cancel(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid booking id")
		return
	}

	b, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	if !canAccess(c, b) {
		h.writeError(c, ErrNotOwner)
		return
	}

	cancelled, err := h.service.Cancel(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, cancelled)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	var capErr *CapacityError
	var seatsErr *SeatsError
	var ageErr *AgeRestrictionError

	switch {
	case errors.Is(err, ErrBookingNotFound),
		errors.Is(err, ErrRoomNotFound),
		errors.Is(err, ErrSessionNotFound),
		errors.Is(err, ErrServiceNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())

	case errors.Is(err, ErrRoomConflict):
		response.Error(c, http.StatusConflict, "ROOM_CONFLICT", err.Error())
	case errors.Is(err, ErrCouponExhausted),
		errors.Is(err, coupon.ErrAlreadyUsed),
		errors.Is(err, coupon.ErrLimitReached):
		response.Error(c, http.StatusConflict, "COUPON_UNAVAILABLE", err.Error())
	case errors.Is(err, coupon.ErrNotFound),
		errors.Is(err, coupon.ErrInactive),
		errors.Is(err, coupon.ErrNotYetValid),
		errors.Is(err, coupon.ErrExpired),
		errors.Is(err, coupon.ErrNotApplicable),
		errors.Is(err, coupon.ErrMinOrderValue),
		errors.Is(err, coupon.ErrIdentity):
		response.Error(c, http.StatusBadRequest, "COUPON_INVALID", err.Error())
	case errors.As(err, &seatsErr):
		response.ErrorWithDetails(c, http.StatusConflict, "NOT_ENOUGH_SEATS", err.Error(), gin.H{
			"available_seats": seatsErr.Available,
			"required_seats":  seatsErr.Required,
		})
	case errors.Is(err, ErrServiceSlots):
		response.Error(c, http.StatusConflict, "NOT_ENOUGH_SLOTS", err.Error())

	case errors.Is(err, ErrNotOwner):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", err.Error())

	case errors.Is(err, ErrCancelNotAllowed):
		response.Error(c, http.StatusUnprocessableEntity, "CANCEL_NOT_ALLOWED", err.Error())

	case errors.Is(err, ErrInvalidDates),
		errors.Is(err, ErrPastCheckIn),
		errors.Is(err, ErrTooFarAhead),
		errors.Is(err, ErrNoGuests),
		errors.Is(err, ErrNoAdult),
		errors.Is(err, ErrGuestName),
		errors.Is(err, ErrGuestAge),
		errors.Is(err, ErrBookerMissing),
		errors.Is(err, ErrRoomUnavailable),
		errors.Is(err, ErrSessionInactive),
		errors.Is(err, ErrSessionStarted),
		errors.Is(err, ErrServiceInactive),
		errors.Is(err, ErrServiceQuantity),
		errors.As(err, &capErr),
		errors.As(err, &ageErr):
		response.Error(c, http.StatusBadRequest, "VALIDATION_FAILED", err.Error())

	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}

func currentUserID(c *gin.Context) *int64 {
	v, ok := c.Get("user_id")
	if !ok {
		return nil
	}
	id, ok := v.(int64)
	if !ok {
		return nil
	}
	return &id
}

func isAdmin(c *gin.Context) bool {
	role, ok := c.Get("role")
	return ok && role == domain.RoleAdmin
}

// canAccess allows admins and the owning user to see a booking. Guest
// bookings have no owner and are reachable through admins only.
func canAccess(c *gin.Context, b *domain.Booking) bool {
	if isAdmin(c) {
		return true
	}
	if uid := currentUserID(c); uid != nil && b.UserID != nil && *uid == *b.UserID {
		return true
	}
	return false
}
