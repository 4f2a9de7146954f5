package server

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/monasabatlabs/monasabat/internal/auth"
)

type createSubscriptionRequest struct {
	Plan string `json:"plan"`
}

func (s *Server) CreateSubscription(c *gin.Context) {
	var req createSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.abortWithError(c, invalidRequestError())
		return
	}

	sub, err := s.subscriptionSvc.CreateOrRenew(c.Request.Context(),
		auth.CallerID(c), strings.TrimSpace(req.Plan))
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	respondData(c, sub)
}

func (s *Server) ActiveSubscription(c *gin.Context) {
	sub, err := s.subscriptionSvc.Active(c.Request.Context(), auth.CallerID(c))
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	if sub == nil {
		respondData(c, gin.H{"plan": "", "active": false})
		return
	}
	respondData(c, sub)
}

func (s *Server) CancelSubscription(c *gin.Context) {
	if err := s.subscriptionSvc.Cancel(c.Request.Context(), auth.CallerID(c)); err != nil {
		s.abortWithError(c, err)
		return
	}
	respondData(c, gin.H{"cancelled": true})
}
