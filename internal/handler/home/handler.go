package home

import (
	"github.com/gin-gonic/gin"

	"github.com/carelink/booking-api/internal/middleware"
	"github.com/carelink/booking-api/internal/model"
	contactsvc "github.com/carelink/booking-api/internal/service/contact"
	doctorsvc "github.com/carelink/booking-api/internal/service/doctor"
	"github.com/carelink/booking-api/pkg/errors"
	"github.com/carelink/booking-api/pkg/httputil"
)

// Handler exposes the unauthenticated public surface.
type Handler struct {
	doctors  *doctorsvc.Service
	contacts *contactsvc.Service
}

func NewHandler(doctors *doctorsvc.Service, contacts *contactsvc.Service) *Handler {
	return &Handler{doctors: doctors, contacts: contacts}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW *middleware.AuthMiddleware) {
	rg.GET("/doctorsdata", h.ListDoctors)
	rg.POST("/contact", h.CreateContact)

	// Reading submissions is an administrative concern.
	rg.GET("/contact", authMW.Authenticate(), authMW.RequireRole(model.RoleAdmin), h.ListContacts)
}

func (h *Handler) ListDoctors(c *gin.Context) {
	doctors, err := h.doctors.List(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, doctors)
}

func (h *Handler) CreateContact(c *gin.Context) {
	var req model.CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.NewValidation("invalid request payload", err))
		return
	}

	contact, err := h.contacts.Create(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithCreated(c, contact)
}

func (h *Handler) ListContacts(c *gin.Context) {
	contacts, err := h.contacts.List(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, contacts)
}
