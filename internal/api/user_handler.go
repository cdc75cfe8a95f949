package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/student-records-api/internal/models"
	"github.com/student-records-api/internal/repository"
)

// UserHandler handles administrative user account endpoints
type UserHandler struct {
	repos *repository.Repositories
	log   zerolog.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(repos *repository.Repositories, log zerolog.Logger) *UserHandler {
	return &UserHandler{
		repos: repos,
		log:   log.With().Str("handler", "user").Logger(),
	}
}

// List handles GET /users. Password hashes never leave the repository.
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.repos.User.GetAll(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to fetch users")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}
	if users == nil {
		users = []*models.User{}
	}
	c.JSON(http.StatusOK, users)
}

// Update handles PUT /users/:id
func (h *UserHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var upd models.UserUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}
	if upd.Email == "" || upd.Username == "" || upd.FirstName == "" || upd.LastName == "" || upd.Role == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}
	if !upd.Role.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid role"})
		return
	}

	found, err := h.repos.User.Update(c.Request.Context(), id, &upd)
	if err != nil {
		h.log.Error().Err(err).Int64("id", id).Msg("Failed to update user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User updated successfully"})
}

// Delete handles DELETE /users/:id. Deletion is irreversible.
func (h *UserHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := h.repos.User.Delete(c.Request.Context(), id); err != nil {
		h.log.Error().Err(err).Int64("id", id).Msg("Failed to delete user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}
	c.Status(http.StatusNoContent)
}
