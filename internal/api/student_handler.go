package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/student-records-api/internal/models"
	"github.com/student-records-api/internal/repository"
)

// StudentHandler handles student profile CRUD and dashboard stats
type StudentHandler struct {
	repos *repository.Repositories
	log   zerolog.Logger
}

// NewStudentHandler creates a new StudentHandler
func NewStudentHandler(repos *repository.Repositories, log zerolog.Logger) *StudentHandler {
	return &StudentHandler{
		repos: repos,
		log:   log.With().Str("handler", "student").Logger(),
	}
}

// List handles GET /students
func (h *StudentHandler) List(c *gin.Context) {
	students, err := h.repos.Student.GetAll(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to fetch student profiles")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch student profiles"})
		return
	}
	if students == nil {
		students = []*models.Student{}
	}
	c.JSON(http.StatusOK, students)
}

// Create handles POST /students
func (h *StudentHandler) Create(c *gin.Context) {
	var s models.Student
	if err := c.ShouldBindJSON(&s); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}
	if !s.RequiredFieldsPresent() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	if _, err := h.repos.Student.Create(c.Request.Context(), &s); err != nil {
		h.log.Error().Err(err).Msg("Failed to add student profile")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add student profile"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Student profile added successfully"})
}

// Update handles PUT /students/:id
func (h *StudentHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var s models.Student
	if err := c.ShouldBindJSON(&s); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}
	if !s.RequiredFieldsPresent() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	found, err := h.repos.Student.Update(c.Request.Context(), id, &s)
	if err != nil {
		h.log.Error().Err(err).Int64("id", id).Msg("Failed to update student profile")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update student profile"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Student profile not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Student profile updated successfully"})
}

// Delete handles DELETE /students/:id
func (h *StudentHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	found, err := h.repos.Student.Delete(c.Request.Context(), id)
	if err != nil {
		h.log.Error().Err(err).Int64("id", id).Msg("Failed to delete student profile")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete student profile"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Student profile not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Student profile deleted successfully"})
}

// Count handles GET /api/students/count
func (h *StudentHandler) Count(c *gin.Context) {
	count, err := h.repos.Student.Count(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to fetch student count")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch student count"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": count})
}

// DistributionBySection handles GET /api/students/distribution/section
func (h *StudentHandler) DistributionBySection(c *gin.Context) {
	dist, err := h.repos.Student.DistributionBySection(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to fetch section distribution")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch section distribution"})
		return
	}
	c.JSON(http.StatusOK, dist)
}

// DistributionByCourse handles GET /api/students/distribution/course
func (h *StudentHandler) DistributionByCourse(c *gin.Context) {
	dist, err := h.repos.Student.DistributionByCourse(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to fetch course distribution")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch course distribution"})
		return
	}
	c.JSON(http.StatusOK, dist)
}
