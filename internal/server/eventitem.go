package server

import (
	"strconv"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"

	"github.com/monasabatlabs/monasabat/internal/auth"
	eventitemdomain "github.com/monasabatlabs/monasabat/internal/eventitem/domain"
	"github.com/monasabatlabs/monasabat/pkg/db/pagination"
)

func (s *Server) CreateEventItem(c *gin.Context) {
	var req eventitemdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.abortWithError(c, invalidRequestError())
		return
	}
	req.SupplierID = auth.CallerID(c)

	item, err := s.eventItemSvc.Create(c.Request.Context(), req)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	respondData(c, item)
}

func (s *Server) GetEventItem(c *gin.Context) {
	id, err := snowflake.ParseString(strings.TrimSpace(c.Param("id")))
	if err != nil {
		s.abortWithError(c, newValidationError("id", "invalid_id", "invalid id"))
		return
	}

	item, err := s.eventItemSvc.Get(c.Request.Context(), id)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	respondData(c, item)
}

func (s *Server) UpdateEventItem(c *gin.Context) {
	id, err := snowflake.ParseString(strings.TrimSpace(c.Param("id")))
	if err != nil {
		s.abortWithError(c, newValidationError("id", "invalid_id", "invalid id"))
		return
	}

	var req eventitemdomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.abortWithError(c, invalidRequestError())
		return
	}

	item, err := s.eventItemSvc.Update(c.Request.Context(), id, auth.CallerID(c), req)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	respondData(c, item)
}

func (s *Server) DeleteEventItem(c *gin.Context) {
	id, err := snowflake.ParseString(strings.TrimSpace(c.Param("id")))
	if err != nil {
		s.abortWithError(c, newValidationError("id", "invalid_id", "invalid id"))
		return
	}

	if err := s.eventItemSvc.Delete(c.Request.Context(), id, auth.CallerID(c)); err != nil {
		s.abortWithError(c, err)
		return
	}
	respondData(c, gin.H{"deleted": true})
}

func (s *Server) ListEventItems(c *gin.Context) {
	filter := eventitemdomain.ListFilter{
		Category:    strings.TrimSpace(c.Query("category")),
		Subcategory: strings.TrimSpace(c.Query("subcategory")),
		City:        strings.TrimSpace(c.Query("city")),
		Area:        strings.TrimSpace(c.Query("area")),
	}
	if raw := strings.TrimSpace(c.Query("supplier_id")); raw != "" {
		id, err := snowflake.ParseString(raw)
		if err != nil {
			s.abortWithError(c, newValidationError("supplier_id", "invalid_id", "invalid supplier id"))
			return
		}
		filter.SupplierID = id
	}
	if raw := strings.TrimSpace(c.Query("min_price")); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || v < 0 {
			s.abortWithError(c, newValidationError("min_price", "invalid_price", "invalid minimum price"))
			return
		}
		filter.MinPrice = v
	}
	if raw := strings.TrimSpace(c.Query("max_price")); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || v < 0 {
			s.abortWithError(c, newValidationError("max_price", "invalid_price", "invalid maximum price"))
			return
		}
		filter.MaxPrice = v
	}
	if raw := strings.TrimSpace(c.Query("people")); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			s.abortWithError(c, newValidationError("people", "invalid_people", "invalid head count"))
			return
		}
		filter.People = v
	}

	var page pagination.Pagination
	if err := c.ShouldBindQuery(&page); err != nil {
		s.abortWithError(c, invalidRequestError())
		return
	}

	items, err := s.eventItemSvc.List(c.Request.Context(), filter, page)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	respondList(c, items, nil)
}
