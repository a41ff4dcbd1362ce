package handlers

import (
	"net/http"

	"github.com/Marga-Ghale/creativa-crm/internal/models"
	"github.com/Marga-Ghale/creativa-crm/internal/service"
	"github.com/gin-gonic/gin"
)

type SurveyHandler struct {
	surveyService service.SurveyService
}

// Create - Public satisfaction survey
// POST /surveys
func (h *SurveyHandler) Create(c *gin.Context) {
	var req models.CreateSurveyRequest
	if !bindJSON(c, &req) {
		return
	}

	survey, err := h.surveyService.Create(c.Request.Context(), service.SurveyInput{
		Name:               req.Name,
		Email:              req.Email,
		SatisfactionRating: req.SatisfactionRating,
		EaseOfUseRating:    req.EaseOfUseRating,
		WouldRecommend:     *req.WouldRecommend,
		Comments:           req.Comments,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.SurveyCreatedResponse{
		Message: "¡Gracias por tu feedback!",
		Survey:  toSurveyResponse(survey),
	})
}

// List - GET /surveys (admin)
func (h *SurveyHandler) List(c *gin.Context) {
	surveys, err := h.surveyService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]models.SurveyResponse, len(surveys))
	for i, s := range surveys {
		response[i] = toSurveyResponse(s)
	}
	c.JSON(http.StatusOK, response)
}

// Stats - GET /surveys/stats (admin)
func (h *SurveyHandler) Stats(c *gin.Context) {
	stats, err := h.surveyService.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
