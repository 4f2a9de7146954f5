package server

import "github.com/gin-gonic/gin"

func (s *Server) AdminStats(c *gin.Context) {
	stats, err := s.adminSvc.Stats(c.Request.Context())
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	respondData(c, stats)
}
