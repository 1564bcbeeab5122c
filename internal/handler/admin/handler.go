package admin

import (
	"io"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/carelink/booking-api/internal/middleware"
	"github.com/carelink/booking-api/internal/model"
	adminsvc "github.com/carelink/booking-api/internal/service/admin"
	authsvc "github.com/carelink/booking-api/internal/service/auth"
	bookingsvc "github.com/carelink/booking-api/internal/service/booking"
	"github.com/carelink/booking-api/pkg/errors"
	"github.com/carelink/booking-api/pkg/httputil"
)

// Handler exposes the administrative API surface.
type Handler struct {
	auth     *authsvc.Service
	admins   *adminsvc.Service
	bookings *bookingsvc.Service
}

func NewHandler(auth *authsvc.Service, admins *adminsvc.Service, bookings *bookingsvc.Service) *Handler {
	return &Handler{auth: auth, admins: admins, bookings: bookings}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW *middleware.AuthMiddleware) {
	rg.POST("/register", h.Register)
	rg.POST("/login", h.Login)

	protected := rg.Group("")
	protected.Use(authMW.Authenticate(), authMW.RequireRole(model.RoleAdmin))
	{
		protected.GET("/patients", h.ListPatients)
		protected.GET("/doctors", h.ListDoctors)
		protected.DELETE("/delete-patient/:patientId", h.DeletePatient)
		protected.DELETE("/delete-doctor/:doctorId", h.DeleteDoctor)
		protected.POST("/register-doctor", h.RegisterDoctor)
		protected.GET("/doctor-bookings/:doctorId", h.ListDoctorBookings)
		protected.PUT("/appointment-status", h.UpdateBookingStatus)
		protected.DELETE("/cancel-appointment/:bookingId", h.CancelBooking)
		protected.GET("/analytics", h.Analytics)
	}
}

func (h *Handler) Register(c *gin.Context) {
	var req model.RegisterAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.NewValidation("invalid request payload", err))
		return
	}

	token, err := h.auth.RegisterAdmin(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithCreated(c, token)
}

func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.NewValidation("invalid request payload", err))
		return
	}

	token, err := h.auth.LoginAdmin(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, token)
}

func (h *Handler) ListPatients(c *gin.Context) {
	patients, err := h.admins.ListPatients(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, patients)
}

func (h *Handler) ListDoctors(c *gin.Context) {
	doctors, err := h.admins.ListDoctors(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, doctors)
}

func (h *Handler) DeletePatient(c *gin.Context) {
	patientID, err := uuid.Parse(c.Param("patientId"))
	if err != nil {
		httputil.RespondWithError(c, errors.NewValidation("invalid patient ID", err))
		return
	}

	if err := h.admins.DeletePatient(c.Request.Context(), patientID); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithMessage(c, "patient deleted")
}

func (h *Handler) DeleteDoctor(c *gin.Context) {
	doctorID, err := uuid.Parse(c.Param("doctorId"))
	if err != nil {
		httputil.RespondWithError(c, errors.NewValidation("invalid doctor ID", err))
		return
	}

	if err := h.admins.DeleteDoctor(c.Request.Context(), doctorID); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithMessage(c, "doctor deleted")
}

func (h *Handler) RegisterDoctor(c *gin.Context) {
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

func (h *Handler) ListDoctorBookings(c *gin.Context) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		httputil.RespondWithError(c, errors.NewUnauthorized("authentication required", nil))
		return
	}

	doctorID, err := uuid.Parse(c.Param("doctorId"))
	if err != nil {
		httputil.RespondWithError(c, errors.NewValidation("invalid doctor ID", err))
		return
	}

	bookings, err := h.bookings.ListBookingsForDoctor(c.Request.Context(), identity, doctorID)
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

func (h *Handler) Analytics(c *gin.Context) {
	analytics, err := h.admins.Analytics(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, analytics)
}
