package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Marga-Ghale/creativa-crm/internal/notification"
	"github.com/Marga-Ghale/creativa-crm/internal/repository"
	"github.com/Marga-Ghale/creativa-crm/internal/socket"
	"github.com/Marga-Ghale/creativa-crm/internal/types"
)

// ============================================
// Project Service
// ============================================

// ProjectInput creates a project.
type ProjectInput struct {
	ClientID    string
	Name        string
	Description *string
	Status      types.ProjectStatus
	DueDate     *time.Time
	Notes       *string
}

// ProjectPatch updates only the fields that are set. DueDate is applied
// when DueDateSet is true; a nil DueDate then clears it.
type ProjectPatch struct {
	ClientID    *string
	Name        *string
	Description *string
	Status      *types.ProjectStatus
	DueDateSet  bool
	DueDate     *time.Time
	Notes       *string
}

// Status transitions are not validated: any write may set any of the four
// stages. The board is the only place that presents them in order.
type ProjectService interface {
	List(ctx context.Context, filter repository.ProjectFilter) ([]*repository.Project, error)
	Get(ctx context.Context, id string) (*repository.Project, error)
	Create(ctx context.Context, actorID string, in ProjectInput) (*repository.Project, error)
	Update(ctx context.Context, actorID, id string, patch ProjectPatch) (*repository.Project, error)
	Delete(ctx context.Context, actorID, id string) error
	AddTask(ctx context.Context, projectID, title string) (*repository.Task, error)
	AddLink(ctx context.Context, projectID string, label *string, url string) (*repository.DeliverableLink, error)
	Notify(ctx context.Context, projectID string) (*notification.Result, error)
}

type projectService struct {
	projectRepo repository.ProjectRepository
	clientRepo  repository.ClientRepository
	taskRepo    repository.TaskRepository
	linkRepo    repository.LinkRepository
	notifier    *notification.Service
	broadcaster *socket.Broadcaster
}

func NewProjectService(
	projectRepo repository.ProjectRepository,
	clientRepo repository.ClientRepository,
	taskRepo repository.TaskRepository,
	linkRepo repository.LinkRepository,
	notifier *notification.Service,
	broadcaster *socket.Broadcaster,
) ProjectService {
	return &projectService{
		projectRepo: projectRepo,
		clientRepo:  clientRepo,
		taskRepo:    taskRepo,
		linkRepo:    linkRepo,
		notifier:    notifier,
		broadcaster: broadcaster,
	}
}

const msgProjectNotFound = "Proyecto no encontrado"

var (
	errUnknownClient = &ValidationError{Field: "clientId", Message: "El cliente no existe"}
	errNameRequired  = &ValidationError{Field: "name", Message: "El nombre es requerido"}
)

func (s *projectService) List(ctx context.Context, filter repository.ProjectFilter) ([]*repository.Project, error) {
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, &ValidationError{Field: "status", Message: "Estado inválido"}
	}

	projects, err := s.projectRepo.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	if err := s.attachChildren(ctx, projects); err != nil {
		return nil, err
	}
	return projects, nil
}

func (s *projectService) Get(ctx context.Context, id string) (*repository.Project, error) {
	project, err := s.projectRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, notFound(msgProjectNotFound)
	}
	if err := s.attachChildren(ctx, []*repository.Project{project}); err != nil {
		return nil, err
	}
	return project, nil
}

// attachChildren loads tasks and links for every project in two queries.
func (s *projectService) attachChildren(ctx context.Context, projects []*repository.Project) error {
	if len(projects) == 0 {
		return nil
	}

	ids := make([]string, len(projects))
	byID := make(map[string]*repository.Project, len(projects))
	for i, p := range projects {
		ids[i] = p.ID
		byID[p.ID] = p
		p.Tasks = []*repository.Task{}
		p.Links = []*repository.DeliverableLink{}
	}

	tasks, err := s.taskRepo.FindByProjectIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to load tasks: %w", err)
	}
	for _, t := range tasks {
		if p, ok := byID[t.ProjectID]; ok {
			p.Tasks = append(p.Tasks, t)
		}
	}

	links, err := s.linkRepo.FindByProjectIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to load links: %w", err)
	}
	for _, l := range links {
		if p, ok := byID[l.ProjectID]; ok {
			p.Links = append(p.Links, l)
		}
	}
	return nil
}

func (s *projectService) requireClient(ctx context.Context, clientID string) error {
	client, err := s.clientRepo.FindByID(ctx, clientID)
	if err != nil {
		return err
	}
	if client == nil {
		return errUnknownClient
	}
	return nil
}

func (s *projectService) Create(ctx context.Context, actorID string, in ProjectInput) (*repository.Project, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, errNameRequired
	}
	if !in.Status.IsValid() {
		return nil, &ValidationError{Field: "status", Message: "Estado inválido"}
	}
	if err := s.requireClient(ctx, in.ClientID); err != nil {
		return nil, err
	}

	project := &repository.Project{
		ClientID:    in.ClientID,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Status:      in.Status,
		DueDate:     in.DueDate,
		Notes:       in.Notes,
	}
	if err := s.projectRepo.Create(ctx, project); err != nil {
		if errors.Is(err, repository.ErrForeignKey) {
			return nil, errUnknownClient
		}
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	created, err := s.Get(ctx, project.ID)
	if err != nil {
		return nil, err
	}
	s.broadcaster.BroadcastProjectCreated(projectEvent(created), actorID)
	return created, nil
}

func (s *projectService) Update(ctx context.Context, actorID, id string, patch ProjectPatch) (*repository.Project, error) {
	project, err := s.projectRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, notFound(msgProjectNotFound)
	}

	oldStatus := project.Status
	var changes []string

	if patch.ClientID != nil && *patch.ClientID != project.ClientID {
		if err := s.requireClient(ctx, *patch.ClientID); err != nil {
			return nil, err
		}
		project.ClientID = *patch.ClientID
		changes = append(changes, "clientId")
	}
	if patch.Name != nil {
		if strings.TrimSpace(*patch.Name) == "" {
			return nil, errNameRequired
		}
		project.Name = strings.TrimSpace(*patch.Name)
		changes = append(changes, "name")
	}
	if patch.Description != nil {
		project.Description = patch.Description
		changes = append(changes, "description")
	}
	if patch.Status != nil {
		if !patch.Status.IsValid() {
			return nil, &ValidationError{Field: "status", Message: "Estado inválido"}
		}
		project.Status = *patch.Status
	}
	if patch.DueDateSet {
		project.DueDate = patch.DueDate
		changes = append(changes, "dueDate")
	}
	if patch.Notes != nil {
		project.Notes = patch.Notes
		changes = append(changes, "notes")
	}

	if err := s.projectRepo.Update(ctx, project); err != nil {
		if errors.Is(err, repository.ErrForeignKey) {
			return nil, errUnknownClient
		}
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound(msgProjectNotFound)
		}
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	updated, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if updated.Status != oldStatus {
		s.broadcaster.BroadcastProjectStatusChanged(id, string(oldStatus), string(updated.Status), actorID)
	}
	if len(changes) > 0 {
		s.broadcaster.BroadcastProjectUpdated(projectEvent(updated), changes, actorID)
	}
	return updated, nil
}

// Delete removes the project together with its tasks and links.
func (s *projectService) Delete(ctx context.Context, actorID, id string) error {
	project, err := s.projectRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if project == nil {
		return notFound(msgProjectNotFound)
	}

	if err := s.projectRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	s.broadcaster.BroadcastProjectDeleted(id, actorID)
	return nil
}

func (s *projectService) requireProject(ctx context.Context, id string) error {
	project, err := s.projectRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if project == nil {
		return notFound(msgProjectNotFound)
	}
	return nil
}

func (s *projectService) AddTask(ctx context.Context, projectID, title string) (*repository.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, &ValidationError{Field: "title", Message: "El título es requerido"}
	}
	if err := s.requireProject(ctx, projectID); err != nil {
		return nil, err
	}

	task := &repository.Task{ProjectID: projectID, Title: title}
	if err := s.taskRepo.Create(ctx, task); err != nil {
		if errors.Is(err, repository.ErrForeignKey) {
			return nil, notFound(msgProjectNotFound)
		}
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return task, nil
}

func (s *projectService) AddLink(ctx context.Context, projectID string, label *string, url string) (*repository.DeliverableLink, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, &ValidationError{Field: "url", Message: "La URL es requerida"}
	}
	if err := s.requireProject(ctx, projectID); err != nil {
		return nil, err
	}

	if label != nil && strings.TrimSpace(*label) == "" {
		label = nil
	}
	link := &repository.DeliverableLink{ProjectID: projectID, Label: label, URL: url}
	if err := s.linkRepo.Create(ctx, link); err != nil {
		if errors.Is(err, repository.ErrForeignKey) {
			return nil, notFound(msgProjectNotFound)
		}
		return nil, fmt.Errorf("failed to create link: %w", err)
	}
	return link, nil
}

func (s *projectService) Notify(ctx context.Context, projectID string) (*notification.Result, error) {
	res, err := s.notifier.NotifyProjectDelivered(ctx, projectID)
	if errors.Is(err, notification.ErrProjectNotFound) {
		return nil, notFound(msgProjectNotFound)
	}
	return res, err
}

// projectEvent is the board card carried by websocket events.
func projectEvent(p *repository.Project) map[string]interface{} {
	event := map[string]interface{}{
		"id":       p.ID,
		"clientId": p.ClientID,
		"name":     p.Name,
		"status":   string(p.Status),
	}
	if p.Client != nil {
		event["clientName"] = p.Client.Name
	}
	if p.DueDate != nil {
		event["dueDate"] = p.DueDate.Format(time.DateOnly)
	}
	return event
}
