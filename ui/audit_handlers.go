package ui

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"fairmind/app"
	"fairmind/domain/core"
	"fairmind/domain/fairness"
	"fairmind/domain/remediation"
	"fairmind/domain/report"
	"fairmind/ports"

	"github.com/gin-gonic/gin"
)

// samplesPayload carries parallel prediction arrays over the wire
type samplesPayload struct {
	Predictions []float64 `json:"predictions" binding:"required"`
	GroundTruth []float64 `json:"ground_truth"`
	Groups      []string  `json:"groups" binding:"required"`
}

func (p samplesPayload) toDomain() fairness.Samples {
	return fairness.Samples{
		Predictions: p.Predictions,
		GroundTruth: p.GroundTruth,
		Groups:      p.Groups,
	}
}

type createAuditRequest struct {
	ModelID       string         `json:"model_id" binding:"required"`
	DatasetID     string         `json:"dataset_id"`
	PositiveLabel *float64       `json:"positive_label"`
	Strategies    []string       `json:"strategies"`
	Samples       samplesPayload `json:"samples" binding:"required"`
}

// createAudit runs a full bias audit and persists the result
func (s *Server) createAudit(c *gin.Context) {
	var req createAuditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	modelID, err := core.ParseModelID(req.ModelID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	strategies, err := parseStrategies(req.Strategies)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := s.auditService.RunAudit(c.Request.Context(), app.AuditRequest{
		ModelID:       modelID,
		DatasetID:     core.DatasetID(req.DatasetID),
		Samples:       req.Samples.toDomain(),
		PositiveLabel: req.PositiveLabel,
		Strategies:    strategies,
	})
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"audit":      result.Audit,
		"runtime_ms": result.RuntimeMs,
	})
}

// getAudit returns a persisted audit
func (s *Server) getAudit(c *gin.Context) {
	id, err := core.ParseAuditID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	audit, err := s.auditService.GetAudit(c.Request.Context(), id)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, audit)
}

// listAudits returns audits matching the query filters
func (s *Server) listAudits(c *gin.Context) {
	filters := ports.AuditFilters{
		Limit:  intQuery(c, "limit", 50),
		Offset: intQuery(c, "offset", 0),
	}
	if modelStr := c.Query("model_id"); modelStr != "" {
		modelID, err := core.ParseModelID(modelStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		filters.ModelID = &modelID
	}
	if passedStr := c.Query("passed"); passedStr != "" {
		passed, err := strconv.ParseBool(passedStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "passed must be a boolean"})
			return
		}
		filters.Passed = &passed
	}

	audits, err := s.auditService.ListAudits(c.Request.Context(), filters)
	if err != nil {
		s.writeError(c, err)
		return
	}
	if audits == nil {
		audits = []*fairness.BiasAudit{}
	}
	c.JSON(http.StatusOK, gin.H{"audits": audits, "count": len(audits)})
}

// deleteAudit removes a persisted audit
func (s *Server) deleteAudit(c *gin.Context) {
	id, err := core.ParseAuditID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.auditService.DeleteAudit(c.Request.Context(), id); err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// getAuditReport renders the audit as markdown, HTML, or an xlsx
// workbook depending on the format query parameter
func (s *Server) getAuditReport(c *gin.Context) {
	id, err := core.ParseAuditID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	switch report.Format(c.DefaultQuery("format", string(report.FormatMarkdown))) {
	case report.FormatMarkdown:
		rep, err := s.reportService.GenerateReport(c.Request.Context(), id)
		if err != nil {
			s.writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, rep)
	case report.FormatHTML:
		page, err := s.reportService.GenerateHTML(c.Request.Context(), id)
		if err != nil {
			s.writeError(c, err)
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", page)
	case report.FormatExcel:
		// Render to a buffer first so a failure can still become an
		// error status instead of a truncated attachment.
		var workbook bytes.Buffer
		if err := s.reportService.WriteExcel(c.Request.Context(), id, &workbook); err != nil {
			s.writeError(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=audit_%s.xlsx", id))
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", workbook.Bytes())
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be markdown, html, or xlsx"})
	}
}

func parseStrategies(raw []string) ([]remediation.Strategy, error) {
	if raw == nil {
		return nil, nil
	}
	strategies := make([]remediation.Strategy, 0, len(raw))
	for _, s := range raw {
		strategy, err := remediation.ParseStrategy(s)
		if err != nil {
			return nil, err
		}
		strategies = append(strategies, strategy)
	}
	return strategies, nil
}

func intQuery(c *gin.Context, key string, fallback int) int {
	if value := c.Query(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n >= 0 {
			return n
		}
	}
	return fallback
}

// writeError maps domain errors onto HTTP status codes
func (s *Server) writeError(c *gin.Context, err error) {
	switch {
	case core.IsNotFoundError(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case core.IsValidationError(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		s.logger.Error("[API] request failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
