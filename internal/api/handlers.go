package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/neurolab-analysis-server/internal/domain"
	"github.com/neurolab-analysis-server/internal/repository"
	"github.com/neurolab-analysis-server/internal/store"
)

const maxUploadBytes = 10 << 20

// tokenRequest is the password grant payload. Both form encoding and
// JSON are accepted.
type tokenRequest struct {
	Username string `form:"username" json:"username" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

// registerRequest creates a new account.
type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

// handleHealth handles health check requests
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"cache":     s.cache.Stats(),
	})
}

// handleToken authenticates a user and issues a bearer token.
func (s *Server) handleToken(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBind(&req); err != nil {
		s.writeError(c, http.StatusBadRequest, domain.NewAPIError(
			domain.ErrInvalidInput, "username and password are required", err.Error(),
			c.GetString("correlation_id")))
		return
	}

	user, err := s.auth.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		s.mapError(c, err)
		return
	}

	token, err := s.auth.IssueToken(user)
	if err != nil {
		s.writeError(c, http.StatusInternalServerError, domain.NewAPIError(
			domain.ErrInternalServer, "failed to issue token", "",
			c.GetString("correlation_id")))
		return
	}

	c.JSON(http.StatusOK, token)
}

// handleRegister creates a new user account.
func (s *Server) handleRegister(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.writeError(c, http.StatusBadRequest, domain.NewAPIError(
			domain.ErrInvalidInput, "username, email and password are required", err.Error(),
			c.GetString("correlation_id")))
		return
	}

	user, err := s.auth.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			s.writeError(c, http.StatusConflict, domain.NewAPIError(
				domain.ErrInvalidInput, "username or email already registered", "",
				c.GetString("correlation_id")))
			return
		}
		s.mapError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
	})
}

// requireAuth validates the bearer token and stores the username in
// the request context.
func (s *Server) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.Header("WWW-Authenticate", "Bearer")
			s.writeError(c, http.StatusUnauthorized, domain.NewAPIError(
				domain.ErrAuthentication, "not authenticated", "",
				c.GetString("correlation_id")))
			c.Abort()
			return
		}

		username, err := s.auth.VerifyToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			s.writeError(c, http.StatusUnauthorized, domain.NewAPIError(
				domain.ErrAuthentication, "could not validate credentials", "",
				c.GetString("correlation_id")))
			c.Abort()
			return
		}

		user, err := s.auth.ResolveUser(c.Request.Context(), username)
		if err != nil {
			s.writeError(c, http.StatusUnauthorized, domain.NewAPIError(
				domain.ErrAuthentication, "could not validate credentials", "",
				c.GetString("correlation_id")))
			c.Abort()
			return
		}

		c.Set("username", user.Username)
		c.Next()
	}
}

// handleAnalyzeTestResults interprets a laboratory result payload.
// The request body is the observed panel map itself.
func (s *Server) handleAnalyzeTestResults(c *gin.Context) {
	var raw map[string]map[string]interface{}
	if err := c.ShouldBindJSON(&raw); err != nil {
		s.writeError(c, http.StatusBadRequest, domain.NewAPIError(
			domain.ErrInvalidInput, "request body must map panels to parameter values", err.Error(),
			c.GetString("correlation_id")))
		return
	}

	observed, err := domain.ParseObserved(raw)
	if err != nil {
		s.mapError(c, err)
		return
	}

	key := repository.RequestHash(observed)
	if cached, ok := s.cache.Get(c.Request.Context(), key); ok {
		c.JSON(http.StatusOK, cached)
		return
	}

	response, err := s.analysis.Analyze(c.Request.Context(), observed)
	if err != nil {
		s.mapError(c, err)
		return
	}

	s.cache.Put(c.Request.Context(), key, *response)

	if s.reports != nil {
		username := c.GetString("username")
		if _, err := s.reports.Save(c.Request.Context(), username, key, *response); err != nil {
			s.log.WithFields(logrus.Fields{
				"username": username,
				"error":    err,
			}).Warn("Failed to persist analysis report")
		}
	}

	c.JSON(http.StatusOK, response)
}

// handleAnalyzeImaging runs the per-modality image classifier on an
// uploaded scan.
func (s *Server) handleAnalyzeImaging(c *gin.Context) {
	modality := c.Param("modality")
	svc, ok := s.imaging[modality]
	if !ok {
		s.writeError(c, http.StatusNotFound, domain.NewAPIError(
			domain.ErrInvalidInput, "unsupported imaging modality: "+modality, "",
			c.GetString("correlation_id")))
		return
	}

	file, _, err := c.Request.FormFile("file")
	if err != nil {
		s.writeError(c, http.StatusBadRequest, domain.NewAPIError(
			domain.ErrInvalidInput, "multipart field 'file' is required", err.Error(),
			c.GetString("correlation_id")))
		return
	}
	defer file.Close()

	response, err := svc.Analyze(c.Request.Context(), http.MaxBytesReader(c.Writer, file, maxUploadBytes))
	if err != nil {
		s.mapError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// handleListReports returns the authenticated user's stored reports.
func (s *Server) handleListReports(c *gin.Context) {
	if s.reports == nil {
		s.writeError(c, http.StatusNotFound, domain.NewAPIError(
			domain.ErrInvalidInput, "report persistence is disabled", "",
			c.GetString("correlation_id")))
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	username := c.GetString("username")
	reports, err := s.reports.ListByUser(c.Request.Context(), username, limit, offset)
	if err != nil {
		s.writeError(c, http.StatusInternalServerError, domain.NewAPIError(
			domain.ErrDatabaseError, "failed to list reports", "",
			c.GetString("correlation_id")))
		return
	}

	total, err := s.reports.CountByUser(c.Request.Context(), username)
	if err != nil {
		s.writeError(c, http.StatusInternalServerError, domain.NewAPIError(
			domain.ErrDatabaseError, "failed to count reports", "",
			c.GetString("correlation_id")))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reports": reports,
		"total":   total,
		"limit":   limit,
		"offset":  offset,
	})
}

// handleGetReport returns a single stored report by ID.
func (s *Server) handleGetReport(c *gin.Context) {
	if s.reports == nil {
		s.writeError(c, http.StatusNotFound, domain.NewAPIError(
			domain.ErrInvalidInput, "report persistence is disabled", "",
			c.GetString("correlation_id")))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		s.writeError(c, http.StatusBadRequest, domain.NewAPIError(
			domain.ErrInvalidInput, "report id must be a UUID", "",
			c.GetString("correlation_id")))
		return
	}

	report, err := s.reports.GetByID(c.Request.Context(), id)
	if err != nil {
		s.writeError(c, http.StatusNotFound, domain.NewAPIError(
			domain.ErrInvalidInput, "report not found", "",
			c.GetString("correlation_id")))
		return
	}

	if report.Username != c.GetString("username") {
		s.writeError(c, http.StatusNotFound, domain.NewAPIError(
			domain.ErrInvalidInput, "report not found", "",
			c.GetString("correlation_id")))
		return
	}

	c.JSON(http.StatusOK, report)
}

// mapError translates engine and auth errors into HTTP responses.
func (s *Server) mapError(c *gin.Context, err error) {
	correlationID := c.GetString("correlation_id")

	var invalid *domain.InvalidInputError
	if errors.As(err, &invalid) {
		s.writeError(c, http.StatusBadRequest, domain.NewAPIError(
			domain.ErrInvalidInput, invalid.Message, invalid.Field, correlationID))
		return
	}

	var apiErr *domain.APIError
	if errors.As(err, &apiErr) {
		apiErr.CorrelationID = correlationID
		status := http.StatusInternalServerError
		switch apiErr.Code {
		case domain.ErrAuthentication:
			status = http.StatusUnauthorized
		case domain.ErrInvalidInput:
			status = http.StatusBadRequest
		case domain.ErrRateLimit:
			status = http.StatusTooManyRequests
		}
		s.writeError(c, status, apiErr)
		return
	}

	var analysisErr *domain.AnalysisError
	if errors.As(err, &analysisErr) {
		s.writeError(c, http.StatusInternalServerError, domain.NewAPIError(
			domain.ErrAnalysis, analysisErr.Error(), "", correlationID))
		return
	}

	s.log.WithField("error", err).Error("Unhandled request error")
	s.writeError(c, http.StatusInternalServerError, domain.NewAPIError(
		domain.ErrInternalServer, "internal server error", "", correlationID))
}

func (s *Server) writeError(c *gin.Context, status int, apiErr *domain.APIError) {
	c.JSON(status, gin.H{"error": apiErr})
}
