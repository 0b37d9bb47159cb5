package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sharespot/service-sharing/internal/application"
	"github.com/sharespot/service-sharing/internal/response"
)

// sharerHeader carries the identity of the calling user. The gateway in
// front of this service is trusted to have authenticated it.
const sharerHeader = "X-Sharer-User-Id"

const (
	defaultListState = "ALL"
	defaultListFrom  = 0
	defaultListSize  = 10
)

// sharerID extracts the calling user's id from the request headers. It
// writes a 400 response and returns false when the header is missing or not
// a number.
func sharerID(c *gin.Context) (int64, bool) {
	raw := c.GetHeader(sharerHeader)
	if raw == "" {
		response.BadRequest(c, "missing "+sharerHeader+" header")
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid "+sharerHeader+" header")
		return 0, false
	}
	return id, true
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid "+name)
		return 0, false
	}
	return id, true
}

func queryInt(c *gin.Context, name string, def int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		response.BadRequest(c, "invalid "+name)
		return 0, false
	}
	return v, true
}

// BookingHandler handles HTTP requests for booking operations.
type BookingHandler struct {
	service *application.BookingService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(service *application.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

// RegisterRoutes registers all booking routes on the given router group.
func (h *BookingHandler) RegisterRoutes(r *gin.RouterGroup) {
	bookings := r.Group("/bookings")
	{
		bookings.POST("", h.CreateBooking)
		bookings.PATCH("/:bookingId", h.SetApproval)
		bookings.GET("/:bookingId", h.GetBooking)
		bookings.GET("", h.ListByBooker)
		bookings.GET("/owner", h.ListByOwner)
	}
}

// CreateBooking handles POST /bookings.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	userID, ok := sharerID(c)
	if !ok {
		return
	}

	var req application.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// SetApproval handles PATCH /bookings/:bookingId?approved={true|false}.
func (h *BookingHandler) SetApproval(c *gin.Context) {
	userID, ok := sharerID(c)
	if !ok {
		return
	}

	bookingID, ok := pathID(c, "bookingId")
	if !ok {
		return
	}

	approved, err := strconv.ParseBool(c.Query("approved"))
	if err != nil {
		response.BadRequest(c, "invalid approved parameter")
		return
	}

	result, err := h.service.SetApproval(c.Request.Context(), bookingID, approved, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// GetBooking handles GET /bookings/:bookingId.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	userID, ok := sharerID(c)
	if !ok {
		return
	}

	bookingID, ok := pathID(c, "bookingId")
	if !ok {
		return
	}

	result, err := h.service.GetByID(c.Request.Context(), bookingID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ListByBooker handles GET /bookings?state=&from=&size=.
func (h *BookingHandler) ListByBooker(c *gin.Context) {
	userID, ok := sharerID(c)
	if !ok {
		return
	}

	state := c.DefaultQuery("state", defaultListState)
	from, ok := queryInt(c, "from", defaultListFrom)
	if !ok {
		return
	}
	size, ok := queryInt(c, "size", defaultListSize)
	if !ok {
		return
	}

	result, err := h.service.ListByBooker(c.Request.Context(), userID, state, from, size)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ListByOwner handles GET /bookings/owner?state=&from=&size=.
func (h *BookingHandler) ListByOwner(c *gin.Context) {
	userID, ok := sharerID(c)
	if !ok {
		return
	}

	state := c.DefaultQuery("state", defaultListState)
	from, ok := queryInt(c, "from", defaultListFrom)
	if !ok {
		return
	}
	size, ok := queryInt(c, "size", defaultListSize)
	if !ok {
		return
	}

	result, err := h.service.ListByOwner(c.Request.Context(), userID, state, from, size)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
