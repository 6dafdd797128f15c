package ui

import (
	"net/http"

	"fairmind/app"
	"fairmind/domain/core"
	"fairmind/ports"

	"github.com/gin-gonic/gin"
)

type registerDatasetRequest struct {
	Name        string         `json:"name" binding:"required"`
	Description string         `json:"description"`
	GroupColumn string         `json:"group_column"`
	Source      string         `json:"source"`
	Samples     samplesPayload `json:"samples" binding:"required"`
}

// registerDataset records a dataset in the registry
func (s *Server) registerDataset(c *gin.Context) {
	var req registerDatasetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := s.datasetService.Register(c.Request.Context(), app.RegisterDatasetRequest{
		Name:        req.Name,
		Description: req.Description,
		GroupColumn: req.GroupColumn,
		Source:      req.Source,
		Samples:     req.Samples.toDomain(),
	})
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

// getDataset returns a dataset registration
func (s *Server) getDataset(c *gin.Context) {
	id, err := core.ParseDatasetID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := s.datasetService.Get(c.Request.Context(), id)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// listDatasets returns dataset registrations, newest first
func (s *Server) listDatasets(c *gin.Context) {
	records, err := s.datasetService.List(c.Request.Context(), intQuery(c, "limit", 50), intQuery(c, "offset", 0))
	if err != nil {
		s.writeError(c, err)
		return
	}
	if records == nil {
		records = []*ports.DatasetRecord{}
	}
	c.JSON(http.StatusOK, gin.H{"datasets": records, "count": len(records)})
}

// deleteDataset removes a dataset registration
func (s *Server) deleteDataset(c *gin.Context) {
	id, err := core.ParseDatasetID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.datasetService.Delete(c.Request.Context(), id); err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
