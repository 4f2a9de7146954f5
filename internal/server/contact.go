package server

import (
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"

	"github.com/monasabatlabs/monasabat/internal/auth"
	contactdomain "github.com/monasabatlabs/monasabat/internal/contact/domain"
)

func (s *Server) SendContactRequest(c *gin.Context) {
	var req contactdomain.SendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.abortWithError(c, invalidRequestError())
		return
	}
	req.ClientID = auth.CallerID(c)

	cr, err := s.contactSvc.Send(c.Request.Context(), req)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	respondData(c, cr)
}

func (s *Server) ListMyContactRequests(c *gin.Context) {
	requests, err := s.contactSvc.ListByClient(c.Request.Context(), auth.CallerID(c))
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	respondList(c, requests, nil)
}

func (s *Server) ListSupplierContactRequests(c *gin.Context) {
	requests, err := s.contactSvc.ListBySupplier(c.Request.Context(), auth.CallerID(c))
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	respondList(c, requests, nil)
}

type updateContactStatusRequest struct {
	Status contactdomain.Status `json:"status"`
}

func (s *Server) UpdateContactRequestStatus(c *gin.Context) {
	id, err := snowflake.ParseString(strings.TrimSpace(c.Param("id")))
	if err != nil {
		s.abortWithError(c, newValidationError("id", "invalid_id", "invalid id"))
		return
	}

	var req updateContactStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.abortWithError(c, invalidRequestError())
		return
	}

	cr, err := s.contactSvc.UpdateStatus(c.Request.Context(), id, auth.CallerID(c), req.Status)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	respondData(c, cr)
}

func (s *Server) ContactRequestStatus(c *gin.Context) {
	supplierID, err := snowflake.ParseString(strings.TrimSpace(c.Query("supplier_id")))
	if err != nil {
		s.abortWithError(c, newValidationError("supplier_id", "invalid_id", "invalid supplier id"))
		return
	}
	serviceID, err := snowflake.ParseString(strings.TrimSpace(c.Query("service_id")))
	if err != nil {
		s.abortWithError(c, newValidationError("service_id", "invalid_id", "invalid service id"))
		return
	}

	status, err := s.contactSvc.StatusBetween(c.Request.Context(), auth.CallerID(c), supplierID, serviceID)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	respondData(c, gin.H{"status": status})
}
