package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/student-records-api/internal/config"
	"github.com/student-records-api/internal/service"
	"github.com/student-records-api/internal/tabular"
)

// ImportHandler handles the tabular upload endpoint
type ImportHandler struct {
	services *service.Services
	cfg      *config.Config
	log      zerolog.Logger
}

// NewImportHandler creates a new ImportHandler
func NewImportHandler(services *service.Services, cfg *config.Config, log zerolog.Logger) *ImportHandler {
	return &ImportHandler{
		services: services,
		cfg:      cfg,
		log:      log.With().Str("handler", "import").Logger(),
	}
}

// Upload handles POST /upload-xls/:table. The file is staged under the
// upload directory; the import service deletes it whether the import
// succeeds or fails.
func (h *ImportHandler) Upload(c *gin.Context) {
	table := c.Param("table")

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}
	defer file.Close()

	if header.Size > h.cfg.Upload.MaxUploadSize {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("file too large, max size is %d MB", h.cfg.Upload.MaxUploadSize/(1024*1024)),
		})
		return
	}

	filePath, err := h.saveUpload(file, header.Filename)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to save uploaded file")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save file"})
		return
	}

	summary, err := h.services.Import.Import(c.Request.Context(), filePath, table)
	switch {
	case errors.Is(err, tabular.ErrUnknownTable):
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown destination table %q", table)})
	case errors.Is(err, tabular.ErrUnknownColumn):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, tabular.ErrUnsupportedFormat):
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported file format, upload CSV or XLSX"})
	case errors.Is(err, service.ErrEmptyDataset):
		c.JSON(http.StatusBadRequest, gin.H{"error": "No data in uploaded file"})
	case err != nil:
		var importErr *service.ImportError
		if errors.As(err, &importErr) {
			h.log.Error().Err(importErr.Err).Int("row", importErr.Row).Str("table", table).Msg("Import aborted")
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": fmt.Sprintf("import failed at row %d", importErr.Row),
			})
			return
		}
		h.log.Error().Err(err).Str("table", table).Msg("Import failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error processing uploaded file"})
	default:
		h.log.Info().
			Str("table", table).
			Str("file", header.Filename).
			Int("inserted", summary.Inserted).
			Msg("Import succeeded")
		c.JSON(http.StatusOK, gin.H{
			"message":         fmt.Sprintf("File uploaded and data inserted successfully into %s", table),
			"inserted":        summary.Inserted,
			"mismatched_rows": summary.MismatchedRows,
		})
	}
}

// saveUpload stages the multipart file on disk and returns its path.
func (h *ImportHandler) saveUpload(src io.Reader, originalName string) (string, error) {
	uploadDir := h.cfg.Upload.UploadDir
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		return "", err
	}

	ext := filepath.Ext(originalName)
	filePath := filepath.Join(uploadDir, fmt.Sprintf("import_%s%s", uuid.New().String()[:8], ext))

	dst, err := os.Create(filePath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(filePath)
		return "", err
	}
	return filePath, nil
}
