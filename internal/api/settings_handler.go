package api

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/student-records-api/internal/config"
	"github.com/student-records-api/internal/models"
	"github.com/student-records-api/internal/repository"
)

// SettingsHandler handles the company branding endpoints
type SettingsHandler struct {
	repos *repository.Repositories
	cfg   *config.Config
	log   zerolog.Logger
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(repos *repository.Repositories, cfg *config.Config, log zerolog.Logger) *SettingsHandler {
	return &SettingsHandler{
		repos: repos,
		cfg:   cfg,
		log:   log.With().Str("handler", "settings").Logger(),
	}
}

// Get handles GET /api/settings
func (h *SettingsHandler) Get(c *gin.Context) {
	settings, err := h.repos.Settings.Get(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to fetch settings")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching settings"})
		return
	}
	if settings == nil {
		c.JSON(http.StatusOK, gin.H{})
		return
	}
	c.JSON(http.StatusOK, settings)
}

// Save handles POST /api/settings. The body is multipart form data with
// an optional logo file; a newly stored logo supersedes and deletes the
// previous one.
func (h *SettingsHandler) Save(c *gin.Context) {
	settings := &models.Settings{
		CompanyName:         c.PostForm("company_name"),
		HeaderColor:         postFormDefault(c, "header_color", "#ffffff"),
		FooterText:          c.PostForm("footer_text"),
		FooterColor:         postFormDefault(c, "footer_color", "#ffffff"),
		ActiveNavIndexColor: postFormDefault(c, "active_nav_index_color", "#000000"),
		CompanyNameColor:    postFormDefault(c, "company_name_color", "#000000"),
		FooterTextColor:     postFormDefault(c, "footer_text_color", "#000000"),
	}

	existing, err := h.repos.Settings.Get(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to fetch settings")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update company settings"})
		return
	}

	updateLogo := false
	if file, header, err := c.Request.FormFile("logo"); err == nil {
		defer file.Close()
		logoURL, err := h.saveLogo(file, header.Filename)
		if err != nil {
			h.log.Error().Err(err).Msg("Failed to save logo")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update company settings"})
			return
		}
		settings.LogoURL = logoURL
		updateLogo = true
	}

	if err := h.repos.Settings.Save(c.Request.Context(), settings, updateLogo); err != nil {
		h.log.Error().Err(err).Msg("Failed to update company settings")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update company settings"})
		return
	}

	if updateLogo && existing != nil && existing.LogoURL != "" {
		h.deleteOldLogo(existing.LogoURL)
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *SettingsHandler) saveLogo(src io.Reader, originalName string) (string, error) {
	if err := os.MkdirAll(h.cfg.Upload.UploadDir, 0755); err != nil {
		return "", err
	}

	name := fmt.Sprintf("logo_%s%s", uuid.New().String()[:8], filepath.Ext(originalName))
	dst, err := os.Create(filepath.Join(h.cfg.Upload.UploadDir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return "/uploads/" + name, nil
}

// deleteOldLogo removes a superseded logo file. Failures are logged only;
// a stale file never blocks the settings update.
func (h *SettingsHandler) deleteOldLogo(logoURL string) {
	name := strings.TrimPrefix(logoURL, "/uploads/")
	if name == "" || strings.Contains(name, "..") || strings.ContainsRune(name, os.PathSeparator) {
		return
	}
	path := filepath.Join(h.cfg.Upload.UploadDir, name)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		h.log.Error().Err(err).Str("path", path).Msg("Failed to delete old logo")
	}
}

func postFormDefault(c *gin.Context, key, fallback string) string {
	if v := c.PostForm(key); v != "" {
		return v
	}
	return fallback
}
