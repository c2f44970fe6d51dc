package sections

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-optimizer/internal/extract"
	"resume-optimizer/internal/shared/server/middleware"
	"resume-optimizer/internal/shared/server/respond"
	"resume-optimizer/internal/shared/telemetry"
	"resume-optimizer/internal/shared/util"
)

const maxResumeBytes = 5 << 20 // 5MB, same limit as optimize

// Handler exposes local resume inspection routes. No remote calls are made;
// extraction runs entirely in-process.
type Handler struct{}

// NewHandler constructs a Handler.
func NewHandler() *Handler {
	return &Handler{}
}

// RegisterRoutes attaches section routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/resume/sections", h.sections)
}

func (h *Handler) sections(c *gin.Context) {
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
		respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to read uploaded file")
		return
	}

	text, err := extract.Text(raw)
	if err != nil || strings.TrimSpace(text) == "" {
		if err != nil {
			fileName, _ := util.SanitizeFileName(fileHeader.Filename)
			telemetry.Error("sections.extract_failed", map[string]any{
				"request_id": middleware.RequestIDFromContext(c),
				"file_name":  fileName,
				"err":        err.Error(),
			})
		}
		respond.Error(c, http.StatusBadRequest, "validation_error", "Could not extract text from PDF. The file may be image-based or corrupted.")
		return
	}

	found := extract.IdentifySections(text)

	respond.JSON(c, http.StatusOK, gin.H{
		"success":    true,
		"sections":   found,
		"characters": len(text),
	})
}
