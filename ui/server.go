package ui

import (
	"fairmind/app"
	"fairmind/internal"
	"fairmind/ports"

	"github.com/gin-gonic/gin"
)

// Server is the JSON API server for the fairness audit backend
type Server struct {
	router            *gin.Engine
	auditService      *app.AuditService
	datasetService    *app.DatasetService
	reportService     *app.ReportService
	fairnessEngine    ports.FairnessEngine
	remediationEngine ports.RemediationEngine
	logger            *internal.Logger
}

// NewServer creates a new API server instance
func NewServer(auditService *app.AuditService, datasetService *app.DatasetService,
	reportService *app.ReportService, fairnessEngine ports.FairnessEngine,
	remediationEngine ports.RemediationEngine) *Server {

	s := &Server{
		router:            gin.Default(),
		auditService:      auditService,
		datasetService:    datasetService,
		reportService:     reportService,
		fairnessEngine:    fairnessEngine,
		remediationEngine: remediationEngine,
		logger:            internal.DefaultLogger,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	v1 := s.router.Group("/api/v1")
	{
		v1.POST("/audits", s.createAudit)
		v1.GET("/audits", s.listAudits)
		v1.GET("/audits/:id", s.getAudit)
		v1.DELETE("/audits/:id", s.deleteAudit)
		v1.GET("/audits/:id/report", s.getAuditReport)

		v1.POST("/metrics/:metric", s.computeMetric)
		v1.POST("/remediation", s.analyzeRemediation)

		v1.POST("/datasets", s.registerDataset)
		v1.GET("/datasets", s.listDatasets)
		v1.GET("/datasets/:id", s.getDataset)
		v1.DELETE("/datasets/:id", s.deleteDataset)
	}
}

// Router exposes the underlying gin engine for tests
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Run starts the server on the given port
func (s *Server) Run(port string) error {
	s.logger.Info("[Server] listening on :%s", port)
	return s.router.Run(":" + port)
}
