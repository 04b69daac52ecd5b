package coupon

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/farhanak624/kshetra-backend/internal/domain"
	"github.com/farhanak624/kshetra-backend/internal/pkg/response"
	"github.com/farhanak624/kshetra-backend/internal/repository"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts coupon endpoints: validation for customers, CRUD
// for admins. Validation is public so guest bookers, identified by phone
// number, can check a code before checkout.
func (h *Handler) RegisterRoutes(public, admin *gin.RouterGroup) {
	public.POST("/coupons/validate", h.Validate)

	admin.POST("/coupons", h.Create)
	admin.GET("/coupons", h.List)
	admin.GET("/coupons/:id", h.Get)
	admin.PUT("/coupons/:id", h.Update)
	admin.DELETE("/coupons/:id", h.Delete)
	admin.GET("/coupons/:id/usages", h.Usages)
}

func (h *Handler) Validate(c *gin.Context) {
	var req ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	var userID *int64
	if v, ok := c.Get("user_id"); ok {
		if id, ok := v.(int64); ok {
			userID = &id
		}
	}

	coupon, discount, err := h.service.Validate(
		c.Request.Context(),
		req.Code,
		req.OrderValue,
		domain.ServiceType(req.ServiceType),
		userID,
		req.PhoneNumber,
	)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, ValidateResponse{
		Code:          coupon.Code,
		DiscountType:  string(coupon.DiscountType),
		DiscountValue: coupon.DiscountValue,
		Discount:      discount,
		FinalAmount:   req.OrderValue - discount,
	})
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	if !req.ValidFrom.Before(req.ValidUntil) {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "valid_from must be before valid_until")
		return
	}

	adminID, _ := c.Get("user_id")
	createdBy, _ := adminID.(int64)

	coupon, err := h.service.Create(c.Request.Context(), createdBy, &req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, coupon)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid coupon id")
		return
	}

	coupon, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, coupon)
}

func (h *Handler) List(c *gin.Context) {
	var q ListCouponsQuery
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

	f := repository.CouponFilter{
		IsActive:    q.IsActive,
		ServiceType: domain.ServiceType(q.ServiceType),
		Limit:       q.Limit,
		Offset:      (q.Page - 1) * q.Limit,
	}

	coupons, total, err := h.service.List(c.Request.Context(), f)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, ListCouponsResponse{
		Coupons: coupons,
		Total:   total,
		Page:    q.Page,
		Limit:   q.Limit,
	})
}

func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid coupon id")
		return
	}

	var req UpdateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	coupon, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, coupon)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid coupon id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) Usages(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid coupon id")
		return
	}

	usages, err := h.service.Usages(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, usages)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "COUPON_NOT_FOUND", err.Error())
	case errors.Is(err, ErrCodeTaken):
		response.Error(c, http.StatusConflict, "COUPON_CODE_TAKEN", err.Error())
	case errors.Is(err, ErrAlreadyUsed),
		errors.Is(err, ErrLimitReached):
		response.Error(c, http.StatusConflict, "COUPON_UNAVAILABLE", err.Error())
	case errors.Is(err, ErrInactive),
		errors.Is(err, ErrNotYetValid),
		errors.Is(err, ErrExpired),
		errors.Is(err, ErrNotApplicable),
		errors.Is(err, ErrMinOrderValue),
		errors.Is(err, ErrIdentity):
		response.Error(c, http.StatusBadRequest, "COUPON_INVALID", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}
