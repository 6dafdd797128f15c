package ui

import (
	"net/http"

	"fairmind/domain/fairness"

	"github.com/gin-gonic/gin"
)

type computeMetricRequest struct {
	PositiveLabel *float64       `json:"positive_label"`
	Samples       samplesPayload `json:"samples" binding:"required"`
}

// resolvePositiveLabel applies the default only when the payload omitted
// the field. A label of 0 is valid and must pass through unchanged.
func resolvePositiveLabel(label *float64) float64 {
	if label == nil {
		return fairness.DefaultPositiveLabel
	}
	return *label
}

// computeMetric computes a single fairness metric without persisting
// anything. The metric name comes from the URL, or "all" for the full
// applicable set.
func (s *Server) computeMetric(c *gin.Context) {
	var req computeMetricRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	positiveLabel := resolvePositiveLabel(req.PositiveLabel)
	samples := req.Samples.toDomain()

	if c.Param("metric") == "all" {
		results, err := s.fairnessEngine.AllMetrics(c.Request.Context(), samples, positiveLabel)
		if err != nil {
			s.writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"results": results})
		return
	}

	metric, err := fairness.ParseMetricName(c.Param("metric"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var result fairness.FairnessResult
	switch metric {
	case fairness.MetricDemographicParity:
		result, err = s.fairnessEngine.DemographicParity(c.Request.Context(), samples, positiveLabel)
	case fairness.MetricEqualizedOdds:
		result, err = s.fairnessEngine.EqualizedOdds(c.Request.Context(), samples, positiveLabel)
	case fairness.MetricEqualOpportunity:
		result, err = s.fairnessEngine.EqualOpportunity(c.Request.Context(), samples, positiveLabel)
	case fairness.MetricPredictiveParity:
		result, err = s.fairnessEngine.PredictiveParity(c.Request.Context(), samples, positiveLabel)
	}
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type remediationRequest struct {
	PositiveLabel *float64       `json:"positive_label"`
	Strategies    []string       `json:"strategies"`
	Samples       samplesPayload `json:"samples" binding:"required"`
}

// analyzeRemediation evaluates remediation strategies without running a
// full persisted audit
func (s *Server) analyzeRemediation(c *gin.Context) {
	var req remediationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	strategies, err := parseStrategies(req.Strategies)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	results, err := s.remediationEngine.AnalyzeAndRemediate(c.Request.Context(), req.Samples.toDomain(), resolvePositiveLabel(req.PositiveLabel), strategies)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results, "count": len(results)})
}
