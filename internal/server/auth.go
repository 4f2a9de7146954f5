package server

import (
	"strings"

	"github.com/gin-gonic/gin"
)

type sendOTPRequest struct {
	Phone string `json:"phone"`
}

func (s *Server) SendOTP(c *gin.Context) {
	var req sendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.abortWithError(c, invalidRequestError())
		return
	}

	phone := strings.TrimSpace(req.Phone)
	if phone == "" {
		s.abortWithError(c, newValidationError("phone", "missing_phone", "phone is required"))
		return
	}

	if err := s.otpSvc.Request(c.Request.Context(), phone); err != nil {
		s.abortWithError(c, err)
		return
	}
	respondData(c, gin.H{"sent": true})
}

type verifyOTPRequest struct {
	Phone string `json:"phone"`
	Code  string `json:"code"`
}

func (s *Server) VerifyOTP(c *gin.Context) {
	var req verifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.abortWithError(c, invalidRequestError())
		return
	}

	token, err := s.otpSvc.Verify(c.Request.Context(),
		strings.TrimSpace(req.Phone), strings.TrimSpace(req.Code))
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	respondData(c, gin.H{"access_token": token})
}
