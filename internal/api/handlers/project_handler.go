package handlers

import (
	"net/http"

	"github.com/Marga-Ghale/creativa-crm/internal/api/middleware"
	"github.com/Marga-Ghale/creativa-crm/internal/models"
	"github.com/Marga-Ghale/creativa-crm/internal/repository"
	"github.com/Marga-Ghale/creativa-crm/internal/service"
	"github.com/Marga-Ghale/creativa-crm/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ============================================
// Project Handler
// ============================================

type ProjectHandler struct {
	projectService service.ProjectService
}

const msgProjectNotFound = "Proyecto no encontrado"

// List - Board cards, optionally filtered
// GET /projects?status=&clientId=
func (h *ProjectHandler) List(c *gin.Context) {
	filter := repository.ProjectFilter{}

	if status := c.Query("status"); status != "" {
		s := types.ProjectStatus(status)
		if !s.IsValid() {
			respondError(c, &service.ValidationError{Field: "status", Message: "Estado inválido"})
			return
		}
		filter.Status = s
	}
	if clientID := c.Query("clientId"); clientID != "" {
		if _, err := uuid.Parse(clientID); err != nil {
			// No client can match a malformed id.
			c.JSON(http.StatusOK, []models.ProjectListItem{})
			return
		}
		filter.ClientID = clientID
	}

	projects, err := h.projectService.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]models.ProjectListItem, len(projects))
	for i, p := range projects {
		response[i] = toProjectListItem(p)
	}
	c.JSON(http.StatusOK, response)
}

// Get - GET /projects/:id
func (h *ProjectHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id", msgProjectNotFound)
	if !ok {
		return
	}

	project, err := h.projectService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProjectDetail(project))
}

// Create - POST /projects
func (h *ProjectHandler) Create(c *gin.Context) {
	var req models.CreateProjectRequest
	if !bindJSON(c, &req) {
		return
	}

	project, err := h.projectService.Create(c.Request.Context(), middleware.GetUserID(c), service.ProjectInput{
		ClientID:    req.ClientID,
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
		DueDate:     req.DueDate.Ptr(),
		Notes:       req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toProjectDetail(project))
}

// Update - Partial update, also used by the board to move cards
// PATCH /projects/:id
func (h *ProjectHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id", msgProjectNotFound)
	if !ok {
		return
	}

	var req models.UpdateProjectRequest
	if !bindJSON(c, &req) {
		return
	}

	project, err := h.projectService.Update(c.Request.Context(), middleware.GetUserID(c), id, service.ProjectPatch{
		ClientID:    req.ClientID,
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
		DueDateSet:  req.DueDate.Set,
		DueDate:     req.DueDate.Ptr(),
		Notes:       req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProjectDetail(project))
}

// Delete - DELETE /projects/:id (admin)
func (h *ProjectHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id", msgProjectNotFound)
	if !ok {
		return
	}

	if err := h.projectService.Delete(c.Request.Context(), middleware.GetUserID(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AddTask - POST /projects/:id/tasks
func (h *ProjectHandler) AddTask(c *gin.Context) {
	id, ok := pathID(c, "id", msgProjectNotFound)
	if !ok {
		return
	}

	var req models.CreateTaskRequest
	if !bindJSON(c, &req) {
		return
	}

	task, err := h.projectService.AddTask(c.Request.Context(), id, req.Title)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

// AddLink - POST /projects/:id/links
func (h *ProjectHandler) AddLink(c *gin.Context) {
	id, ok := pathID(c, "id", msgProjectNotFound)
	if !ok {
		return
	}

	var req models.CreateLinkRequest
	if !bindJSON(c, &req) {
		return
	}

	link, err := h.projectService.AddLink(c.Request.Context(), id, req.Label, req.URL)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, link)
}

// Notify - Email the delivery links to the client
// POST /projects/:id/notify
func (h *ProjectHandler) Notify(c *gin.Context) {
	id, ok := pathID(c, "id", msgProjectNotFound)
	if !ok {
		return
	}

	result, err := h.projectService.Notify(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: result.Message})
}
