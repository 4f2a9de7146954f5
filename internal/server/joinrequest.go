package server

import (
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"

	joinrequestdomain "github.com/monasabatlabs/monasabat/internal/joinrequest/domain"
	"github.com/monasabatlabs/monasabat/pkg/db/pagination"
)

func (s *Server) SubmitJoinRequest(c *gin.Context) {
	var req joinrequestdomain.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.abortWithError(c, invalidRequestError())
		return
	}

	jr, err := s.joinRequestSvc.Submit(c.Request.Context(), req)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	respondData(c, jr)
}

func (s *Server) ListJoinRequests(c *gin.Context) {
	filter := joinrequestdomain.ListFilter{
		Status: joinrequestdomain.Status(strings.TrimSpace(c.Query("status"))),
	}

	var page pagination.Pagination
	if err := c.ShouldBindQuery(&page); err != nil {
		s.abortWithError(c, invalidRequestError())
		return
	}

	requests, err := s.joinRequestSvc.List(c.Request.Context(), filter, page)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	respondList(c, requests, nil)
}

type updateJoinRequestStatusRequest struct {
	Status joinrequestdomain.Status `json:"status"`
}

func (s *Server) UpdateJoinRequestStatus(c *gin.Context) {
	id, err := snowflake.ParseString(strings.TrimSpace(c.Param("id")))
	if err != nil {
		s.abortWithError(c, newValidationError("id", "invalid_id", "invalid id"))
		return
	}

	var req updateJoinRequestStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.abortWithError(c, invalidRequestError())
		return
	}

	jr, err := s.joinRequestSvc.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	respondData(c, jr)
}
