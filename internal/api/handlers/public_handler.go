package handlers

import (
	"net/http"

	"github.com/Marga-Ghale/creativa-crm/internal/models"
	"github.com/Marga-Ghale/creativa-crm/internal/service"
	"github.com/gin-gonic/gin"
)

// PublicHandler serves unauthenticated endpoints.
type PublicHandler struct {
	clientService service.ClientService
}

// CreateLead - Register a prospect from the website form
// POST /public/leads
func (h *PublicHandler) CreateLead(c *gin.Context) {
	var req models.CreateLeadRequest
	if !bindJSON(c, &req) {
		return
	}

	client, err := h.clientService.CreateLead(c.Request.Context(), service.ClientInput{
		Name:    req.Name,
		Company: &req.Company,
		Email:   &req.Email,
		Phone:   req.Phone,
		Notes:   req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toClientResponse(client))
}
