package doctor

import (
	"io"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/carelink/booking-api/internal/middleware"
	"github.com/carelink/booking-api/internal/model"
	authsvc "github.com/carelink/booking-api/internal/service/auth"
	bookingsvc "github.com/carelink/booking-api/internal/service/booking"
	doctorsvc "github.com/carelink/booking-api/internal/service/doctor"
	"github.com/carelink/booking-api/pkg/errors"
	"github.com/carelink/booking-api/pkg/httputil"
)

// Handler exposes the doctor-facing API surface.
type Handler struct {
	auth     *authsvc.Service
	doctors  *doctorsvc.Service
	bookings *bookingsvc.Service
}

func NewHandler(auth *authsvc.Service, doctors *doctorsvc.Service, bookings *bookingsvc.Service) *Handler {
	return &Handler{auth: auth, doctors: doctors, bookings: bookings}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW *middleware.AuthMiddleware) {
	rg.POST("/register", h.Register)
	rg.POST("/login", h.Login)

	protected := rg.Group("")
	protected.Use(authMW.Authenticate(), authMW.RequireRole(model.RoleDoctor))
	{
		protected.GET("/profile", h.GetProfile)
		protected.PUT("/profile", h.UpdateProfile)
		protected.GET("/bookings", h.ListBookings)
		protected.PUT("/booking-status", h.UpdateBookingStatus)
		protected.PUT("/cancel-appointment/:bookingId", h.CancelBooking)
	}
}

func (h *Handler) Register(c *gin.Context) {
	var req model.RegisterDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.NewValidation("invalid request payload", err))
		return
	}

	doctor, err := h.auth.RegisterDoctor(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithCreated(c, doctor)
}

func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.NewValidation("invalid request payload", err))
		return
	}

	token, err := h.auth.LoginDoctor(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, token)
}

func (h *Handler) GetProfile(c *gin.Context) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		httputil.RespondWithError(c, errors.NewUnauthorized("authentication required", nil))
		return
	}

	profile, err := h.doctors.GetProfile(c.Request.Context(), identity.SubjectID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, profile)
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		httputil.RespondWithError(c, errors.NewUnauthorized("authentication required", nil))
		return
	}

	var req model.UpdateDoctorProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.NewValidation("invalid request payload", err))
		return
	}

	profile, err := h.doctors.UpdateProfile(c.Request.Context(), identity.SubjectID, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, profile)
}

func (h *Handler) ListBookings(c *gin.Context) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		httputil.RespondWithError(c, errors.NewUnauthorized("authentication required", nil))
		return
	}

	filters := &model.BookingFilters{}
	if status := c.Query("status"); status != "" {
		filters.Status = model.BookingStatus(status)
	}

	bookings, err := h.bookings.ListBookings(c.Request.Context(), identity, filters)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, bookings)
}

func (h *Handler) UpdateBookingStatus(c *gin.Context) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		httputil.RespondWithError(c, errors.NewUnauthorized("authentication required", nil))
		return
	}

	var req model.UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.NewValidation("invalid request payload", err))
		return
	}

	booking, err := h.bookings.RequestTransition(c.Request.Context(), identity, req.BookingID, req.Status, "")
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, booking)
}

func (h *Handler) CancelBooking(c *gin.Context) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		httputil.RespondWithError(c, errors.NewUnauthorized("authentication required", nil))
		return
	}

	bookingID, err := uuid.Parse(c.Param("bookingId"))
	if err != nil {
		httputil.RespondWithError(c, errors.NewValidation("invalid booking ID", err))
		return
	}

	// An empty body is allowed; the service substitutes a default reason.
	var req model.CancelBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil && err != io.EOF {
		httputil.RespondWithError(c, errors.NewValidation("invalid request payload", err))
		return
	}

	booking, err := h.bookings.RequestTransition(c.Request.Context(), identity, bookingID, model.BookingStatusCancelled, req.Reason)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, booking)
}
