package server

import (
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"

	"github.com/monasabatlabs/monasabat/internal/auth"
	bookingdomain "github.com/monasabatlabs/monasabat/internal/booking/domain"
)

func (s *Server) CreateBooking(c *gin.Context) {
	var req bookingdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.abortWithError(c, invalidRequestError())
		return
	}
	req.ClientID = auth.CallerID(c)

	booking, err := s.bookingSvc.Create(c.Request.Context(), req)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	respondData(c, booking)
}

func (s *Server) GetBooking(c *gin.Context) {
	id, err := snowflake.ParseString(strings.TrimSpace(c.Param("id")))
	if err != nil {
		s.abortWithError(c, newValidationError("id", "invalid_id", "invalid id"))
		return
	}

	booking, err := s.bookingSvc.Get(c.Request.Context(), id)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	respondData(c, booking)
}

func (s *Server) ListMyBookings(c *gin.Context) {
	bookings, err := s.bookingSvc.ListByClient(c.Request.Context(), auth.CallerID(c))
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	respondList(c, bookings, nil)
}

func (s *Server) ListSupplierBookings(c *gin.Context) {
	bookings, err := s.bookingSvc.ListBySupplier(c.Request.Context(), auth.CallerID(c))
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	respondList(c, bookings, nil)
}

func (s *Server) ListAllBookings(c *gin.Context) {
	bookings, err := s.bookingSvc.ListAll(c.Request.Context())
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	respondList(c, bookings, nil)
}

type updateBookingStatusRequest struct {
	Status bookingdomain.Status `json:"status"`
}

func (s *Server) UpdateBookingStatus(c *gin.Context) {
	id, err := snowflake.ParseString(strings.TrimSpace(c.Param("id")))
	if err != nil {
		s.abortWithError(c, newValidationError("id", "invalid_id", "invalid id"))
		return
	}

	var req updateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.abortWithError(c, invalidRequestError())
		return
	}

	booking, err := s.bookingSvc.UpdateStatus(c.Request.Context(), id, auth.CallerID(c), req.Status)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	respondData(c, booking)
}

func (s *Server) CancelBooking(c *gin.Context) {
	id, err := snowflake.ParseString(strings.TrimSpace(c.Param("id")))
	if err != nil {
		s.abortWithError(c, newValidationError("id", "invalid_id", "invalid id"))
		return
	}

	if err := s.bookingSvc.CancelByClient(c.Request.Context(), id, auth.CallerID(c)); err != nil {
		s.abortWithError(c, err)
		return
	}
	respondData(c, gin.H{"cancelled": true})
}
