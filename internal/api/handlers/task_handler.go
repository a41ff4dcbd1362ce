package handlers

import (
	"net/http"

	"github.com/Marga-Ghale/creativa-crm/internal/models"
	"github.com/Marga-Ghale/creativa-crm/internal/service"
	"github.com/gin-gonic/gin"
)

type TaskHandler struct {
	taskService service.TaskService
}

const msgTaskNotFound = "Tarea no encontrada"

// Update - Rename or toggle a checklist item
// PATCH /tasks/:id
func (h *TaskHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id", msgTaskNotFound)
	if !ok {
		return
	}

	var req models.UpdateTaskRequest
	if !bindJSON(c, &req) {
		return
	}

	task, err := h.taskService.Update(c.Request.Context(), id, req.Title, req.Done)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// Delete - DELETE /tasks/:id
func (h *TaskHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id", msgTaskNotFound)
	if !ok {
		return
	}

	if err := h.taskService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type LinkHandler struct {
	linkService service.LinkService
}

// Delete - DELETE /links/:id
func (h *LinkHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id", "Link no encontrado")
	if !ok {
		return
	}

	if err := h.linkService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
