package handlers

import (
	"github.com/Marga-Ghale/creativa-crm/internal/models"
	"github.com/Marga-Ghale/creativa-crm/internal/repository"
	"github.com/Marga-Ghale/creativa-crm/internal/service"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	Auth    *AuthHandler
	User    *UserHandler
	Client  *ClientHandler
	Project *ProjectHandler
	Task    *TaskHandler
	Link    *LinkHandler
	Public  *PublicHandler
	Survey  *SurveyHandler
	Health  *HealthHandler
}

// NewHandlers creates all handlers
func NewHandlers(services *service.Services, health *HealthHandler) *Handlers {
	registerJSONFieldNames()

	return &Handlers{
		Auth:    &AuthHandler{authService: services.Auth},
		User:    &UserHandler{userService: services.User},
		Client:  &ClientHandler{clientService: services.Client},
		Project: &ProjectHandler{projectService: services.Project},
		Task:    &TaskHandler{taskService: services.Task},
		Link:    &LinkHandler{linkService: services.Link},
		Public:  &PublicHandler{clientService: services.Client},
		Survey:  &SurveyHandler{surveyService: services.Survey},
		Health:  health,
	}
}

// ============================================
// Response Mappers
// ============================================

func toUserResponse(u *repository.User) models.UserResponse {
	return models.UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

func toClientResponse(c *repository.Client) models.ClientResponse {
	return models.ClientResponse{
		ID:        c.ID,
		Name:      c.Name,
		Company:   c.Company,
		Email:     c.Email,
		Phone:     c.Phone,
		Notes:     c.Notes,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toProjectResponse(p *repository.Project) models.ProjectResponse {
	return models.ProjectResponse{
		ID:          p.ID,
		ClientID:    p.ClientID,
		Name:        p.Name,
		Description: p.Description,
		Status:      p.Status,
		DueDate:     models.FormatDate(p.DueDate),
		Notes:       p.Notes,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toProjectListItem(p *repository.Project) models.ProjectListItem {
	item := models.ProjectListItem{
		ProjectResponse: toProjectResponse(p),
		Tasks:           make([]models.TaskSummary, len(p.Tasks)),
		Links:           nonNilLinks(p.Links),
	}
	if p.Client != nil {
		item.Client = &models.ClientRef{ID: p.Client.ID, Name: p.Client.Name, Company: p.Client.Company}
	}
	for i, t := range p.Tasks {
		item.Tasks[i] = models.TaskSummary{ID: t.ID, Title: t.Title, Done: t.Done}
	}
	return item
}

func toProjectDetail(p *repository.Project) models.ProjectDetailResponse {
	detail := models.ProjectDetailResponse{
		ProjectResponse: toProjectResponse(p),
		Tasks:           p.Tasks,
		Links:           nonNilLinks(p.Links),
	}
	if detail.Tasks == nil {
		detail.Tasks = []*repository.Task{}
	}
	if p.Client != nil {
		c := toClientResponse(p.Client)
		detail.Client = &c
	}
	return detail
}

func nonNilLinks(links []*repository.DeliverableLink) []*repository.DeliverableLink {
	if links == nil {
		return []*repository.DeliverableLink{}
	}
	return links
}

func toSurveyResponse(s *repository.Survey) models.SurveyResponse {
	return models.SurveyResponse{
		ID:                 s.ID,
		Name:               s.Name,
		Email:              s.Email,
		SatisfactionRating: s.SatisfactionRating,
		EaseOfUseRating:    s.EaseOfUseRating,
		WouldRecommend:     s.WouldRecommend,
		Comments:           s.Comments,
		CreatedAt:          s.CreatedAt,
	}
}
