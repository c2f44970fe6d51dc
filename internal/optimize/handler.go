package optimize

import (
	"encoding/base64"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"resume-optimizer/internal/resumeapi"
	"resume-optimizer/internal/shared/metrics"
	"resume-optimizer/internal/shared/server/middleware"
	"resume-optimizer/internal/shared/server/respond"
	"resume-optimizer/internal/shared/telemetry"
	"resume-optimizer/internal/shared/util"
)

// maxResumeBytes is the largest accepted upload: 5 MiB exactly.
const maxResumeBytes = 5 << 20

var renderStyle = resumeapi.Style{
	Template: "horizon",
	Color:    "amber",
	Font:     "inter",
}

// Handler wires the resume optimization route to the remote service client.
type Handler struct {
	Client *resumeapi.Client
}

// NewHandler constructs a Handler. A nil client marks the service as not
// configured; requests then fail without reaching the remote API.
func NewHandler(client *resumeapi.Client) *Handler {
	return &Handler{Client: client}
}

// RegisterRoutes attaches optimization routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/resume/optimize", h.optimize)
}

func (h *Handler) optimize(c *gin.Context) {
	start := time.Now()
	metrics.IncOptimizeStarted()
	completed := false
	defer func() {
		metrics.ObserveOptimizeDurationMs(float64(time.Since(start).Microseconds()) / 1000.0)
		if completed {
			metrics.IncOptimizeCompleted()
		} else {
			metrics.IncOptimizeFailed()
		}
	}()

	userID := middleware.UserIDFromContext(c)

	if h.Client == nil {
		telemetry.Error("optimize.not_configured", map[string]any{
			"request_id": middleware.RequestIDFromContext(c),
			"detail":     "RESUME_API_KEY is not set",
		})
		respond.Error(c, http.StatusInternalServerError, "misconfigured", "Resume service not configured")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "No file provided")
		return
	}
	if !strings.EqualFold(filepath.Ext(fileHeader.Filename), ".pdf") {
		respond.Error(c, http.StatusBadRequest, "validation_error", "Only PDF files are supported")
		return
	}
	if fileHeader.Size > maxResumeBytes {
		respond.Error(c, http.StatusBadRequest, "validation_error", "File size exceeds 5MB limit")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "No file provided")
		return
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		h.internalFailure(c, err)
		return
	}
	encoded := base64.StdEncoding.EncodeToString(raw)

	parsed, err := h.Client.Parse(c.Request.Context(), encoded, "json")
	if err != nil {
		h.remoteFailure(c, err)
		return
	}
	if len(parsed) == 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "Failed to parse resume. Please ensure the PDF contains readable text.")
		return
	}

	content := normalizeContent(parsed)

	created, err := h.Client.Create(c.Request.Context(), content, renderStyle)
	if err != nil {
		h.remoteFailure(c, err)
		return
	}
	if created == nil || created.FileURL == "" {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to generate optimized resume")
		return
	}

	fileName, _ := util.SanitizeFileName(fileHeader.Filename)
	logFields := map[string]any{
		"request_id": middleware.RequestIDFromContext(c),
		"user_id":    userID,
		"file_name":  fileName,
		"size_bytes": fileHeader.Size,
		"expires_at": created.FileURLExpiresAt,
	}
	if email := middleware.UserEmailFromContext(c); email != "" {
		logFields["user_email"] = email
	}
	telemetry.Info("optimize.complete", logFields)

	resp := gin.H{
		"success":      true,
		"download_url": created.FileURL,
		"expires_at":   created.FileURLExpiresAt,
	}
	if created.CreditsUsed != nil {
		resp["credits_used"] = *created.CreditsUsed
	}
	if created.CreditsRemaining != nil {
		resp["credits_remaining"] = *created.CreditsRemaining
	}

	completed = true
	respond.JSON(c, http.StatusOK, resp)
}

// remoteFailure maps a failed remote call to a response. Errors carrying the
// service's HTTP status surface status and message; anything else stays
// generic so transport details never leak to the caller.
func (h *Handler) remoteFailure(c *gin.Context, err error) {
	var apiErr *resumeapi.APIError
	if errors.As(err, &apiErr) {
		status := apiErr.Status
		if status == 0 {
			status = http.StatusInternalServerError
		}
		respond.Error(c, status, "resume_api_error", "Resume API error: "+apiErr.Message)
		return
	}
	h.internalFailure(c, err)
}

func (h *Handler) internalFailure(c *gin.Context, err error) {
	telemetry.Error("optimize.failed", map[string]any{
		"request_id": middleware.RequestIDFromContext(c),
		"err":        err.Error(),
	})
	respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to optimize resume. Please try again.")
}
