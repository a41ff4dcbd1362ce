package handlers

import (
	"net/http"

	"github.com/Marga-Ghale/creativa-crm/internal/models"
	"github.com/Marga-Ghale/creativa-crm/internal/service"
	"github.com/gin-gonic/gin"
)

// ============================================
// Client Handler
// ============================================

type ClientHandler struct {
	clientService service.ClientService
}

const msgClientNotFound = "Cliente no encontrado"

// List - Clients with a summary of their projects
// GET /clients
func (h *ClientHandler) List(c *gin.Context) {
	clients, err := h.clientService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]models.ClientListItem, len(clients))
	for i, cl := range clients {
		item := models.ClientListItem{
			ClientResponse: toClientResponse(cl.Client),
			Projects:       make([]models.ProjectSummary, len(cl.Projects)),
		}
		for j, p := range cl.Projects {
			item.Projects[j] = models.ProjectSummary{ID: p.ID, Name: p.Name, Status: p.Status}
		}
		response[i] = item
	}
	c.JSON(http.StatusOK, response)
}

// Get - GET /clients/:id
func (h *ClientHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id", msgClientNotFound)
	if !ok {
		return
	}

	client, err := h.clientService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	response := models.ClientDetailResponse{
		ClientResponse: toClientResponse(client.Client),
		Projects:       make([]models.ProjectResponse, len(client.Projects)),
	}
	for i, p := range client.Projects {
		response.Projects[i] = toProjectResponse(p)
	}
	c.JSON(http.StatusOK, response)
}

// Create - POST /clients
func (h *ClientHandler) Create(c *gin.Context) {
	var req models.CreateClientRequest
	if !bindJSON(c, &req) {
		return
	}

	client, err := h.clientService.Create(c.Request.Context(), service.ClientInput{
		Name:    req.Name,
		Company: req.Company,
		Email:   req.Email,
		Phone:   req.Phone,
		Notes:   req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toClientResponse(client))
}

// Update - PATCH /clients/:id
func (h *ClientHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id", msgClientNotFound)
	if !ok {
		return
	}

	var req models.UpdateClientRequest
	if !bindJSON(c, &req) {
		return
	}

	client, err := h.clientService.Update(c.Request.Context(), id, service.ClientPatch{
		Name:    req.Name,
		Company: req.Company,
		Email:   req.Email,
		Phone:   req.Phone,
		Notes:   req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toClientResponse(client))
}

// Delete - DELETE /clients/:id (admin)
func (h *ClientHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id", msgClientNotFound)
	if !ok {
		return
	}

	if err := h.clientService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
