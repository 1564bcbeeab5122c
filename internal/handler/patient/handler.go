package patient

import (
	"io"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/carelink/booking-api/internal/middleware"
	"github.com/carelink/booking-api/internal/model"
	authsvc "github.com/carelink/booking-api/internal/service/auth"
	bookingsvc "github.com/carelink/booking-api/internal/service/booking"
	patientsvc "github.com/carelink/booking-api/internal/service/patient"
	"github.com/carelink/booking-api/pkg/errors"
	"github.com/carelink/booking-api/pkg/httputil"
)

// Handler exposes the patient-facing API surface.
type Handler struct {
	auth     *authsvc.Service
	patients *patientsvc.Service
	bookings *bookingsvc.Service
}

func NewHandler(auth *authsvc.Service, patients *patientsvc.Service, bookings *bookingsvc.Service) *Handler {
	return &Handler{auth: auth, patients: patients, bookings: bookings}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW *middleware.AuthMiddleware) {
	rg.POST("/register", h.Register)
	rg.POST("/login", h.Login)

	protected := rg.Group("")
	protected.Use(authMW.Authenticate(), authMW.RequireRole(model.RolePatient))
	{
		protected.GET("/profile", h.GetProfile)
		protected.PUT("/profile", h.UpdateProfile)
		protected.GET("/doctors", h.ListDoctors)
		protected.GET("/doctors/:doctorId", h.GetDoctor)
		protected.GET("/bookings", h.ListBookings)
		protected.POST("/book-session", h.BookSession)
		protected.PUT("/cancel/:bookingId", h.CancelBooking)
	}
}

func (h *Handler) Register(c *gin.Context) {
	var req model.RegisterPatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.NewValidation("invalid request payload", err))
		return
	}

	patient, err := h.auth.RegisterPatient(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithCreated(c, patient)
}

func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.NewValidation("invalid request payload", err))
		return
	}

	token, err := h.auth.LoginPatient(c.Request.Context(), &req)
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

	profile, err := h.patients.GetProfile(c.Request.Context(), identity.SubjectID)
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

	var req model.UpdatePatientProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.NewValidation("invalid request payload", err))
		return
	}

	profile, err := h.patients.UpdateProfile(c.Request.Context(), identity.SubjectID, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, profile)
}

func (h *Handler) ListDoctors(c *gin.Context) {
	doctors, err := h.patients.ListDoctors(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, doctors)
}

func (h *Handler) GetDoctor(c *gin.Context) {
	doctorID, err := uuid.Parse(c.Param("doctorId"))
	if err != nil {
		httputil.RespondWithError(c, errors.NewValidation("invalid doctor ID", err))
		return
	}

	doctor, err := h.patients.GetDoctor(c.Request.Context(), doctorID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, doctor)
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

func (h *Handler) BookSession(c *gin.Context) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		httputil.RespondWithError(c, errors.NewUnauthorized("authentication required", nil))
		return
	}

	var req model.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.NewValidation("invalid request payload", err))
		return
	}

	booking, err := h.bookings.CreateBooking(c.Request.Context(), identity, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithCreated(c, booking)
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
