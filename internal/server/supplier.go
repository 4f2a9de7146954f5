package server

import (
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"

	"github.com/monasabatlabs/monasabat/internal/auth"
	supplierdomain "github.com/monasabatlabs/monasabat/internal/supplier/domain"
)

func (s *Server) Me(c *gin.Context) {
	account, err := s.supplierSvc.Get(c.Request.Context(), auth.CallerID(c))
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	respondData(c, account)
}

func (s *Server) QuotaStatus(c *gin.Context) {
	status, err := s.supplierSvc.QuotaStatus(c.Request.Context(), auth.CallerID(c))
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	respondData(c, status)
}

func (s *Server) ListSuppliers(c *gin.Context) {
	filter := supplierdomain.ListFilter{
		Role: supplierdomain.Role(strings.TrimSpace(c.Query("role"))),
	}
	if v := strings.TrimSpace(c.Query("locked")); v != "" {
		locked := v == "true"
		filter.Locked = &locked
	}

	suppliers, err := s.supplierSvc.List(c.Request.Context(), filter)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	respondList(c, suppliers, nil)
}

func (s *Server) SupplierQuotaStatus(c *gin.Context) {
	id, err := snowflake.ParseString(strings.TrimSpace(c.Param("id")))
	if err != nil {
		s.abortWithError(c, newValidationError("id", "invalid_id", "invalid id"))
		return
	}

	status, err := s.supplierSvc.QuotaStatus(c.Request.Context(), id)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	respondData(c, status)
}

func (s *Server) UnlockSupplier(c *gin.Context) {
	id, err := snowflake.ParseString(strings.TrimSpace(c.Param("id")))
	if err != nil {
		s.abortWithError(c, newValidationError("id", "invalid_id", "invalid id"))
		return
	}

	if err := s.supplierSvc.Unlock(c.Request.Context(), id); err != nil {
		s.abortWithError(c, err)
		return
	}
	respondData(c, gin.H{"unlocked": true})
}
