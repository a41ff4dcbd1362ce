// Package notification delivers the project completion email to a client.
package notification

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Marga-Ghale/creativa-crm/internal/email"
	"github.com/Marga-Ghale/creativa-crm/internal/logger"
	"github.com/Marga-Ghale/creativa-crm/internal/repository"
	"github.com/rs/zerolog"
)

var (
	ErrProjectNotFound    = errors.New("project not found")
	ErrClientEmailMissing = errors.New("client has no email")
	ErrEmailNotConfigured = errors.New("email transport not configured")
	ErrDeliveryFailed     = errors.New("delivery email failed")
)

const (
	MessageSent      = "Correo enviado correctamente al cliente"
	MessageSimulated = "Simulación: Correo enviado correctamente (Configura .env para envío real)"

	defaultLinkLabel = "Link"
)

// Mailer is the part of email.Service the dispatcher needs.
type Mailer interface {
	Configured() bool
	SendProjectDelivered(ctx context.Context, to string, data email.ProjectDeliveredData) error
}

// Result describes what a notification did.
type Result struct {
	Message   string
	Simulated bool
}

// Service sends one delivery email per call. There is no retry or queue:
// a transport failure is returned to the caller.
type Service struct {
	projectRepo repository.ProjectRepository
	linkRepo    repository.LinkRepository
	mailer      Mailer
	production  bool
	log         zerolog.Logger
}

// NewService creates a dispatcher. Outside production an unconfigured
// transport simulates success; in production it fails with
// ErrEmailNotConfigured.
func NewService(
	projectRepo repository.ProjectRepository,
	linkRepo repository.LinkRepository,
	mailer Mailer,
	production bool,
) *Service {
	return &Service{
		projectRepo: projectRepo,
		linkRepo:    linkRepo,
		mailer:      mailer,
		production:  production,
		log:         logger.With("notification"),
	}
}

// NotifyProjectDelivered emails the project's client every deliverable link.
func (s *Service) NotifyProjectDelivered(ctx context.Context, projectID string) (*Result, error) {
	project, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("load project: %w", err)
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}
	if project.Client == nil || project.Client.Email == nil || strings.TrimSpace(*project.Client.Email) == "" {
		return nil, ErrClientEmailMissing
	}

	if s.mailer == nil || !s.mailer.Configured() {
		if s.production {
			s.log.Error().Str("project", projectID).Msg("email transport not configured")
			return nil, ErrEmailNotConfigured
		}
		s.log.Warn().Str("project", projectID).Msg("email transport not configured, simulating send")
		return &Result{Message: MessageSimulated, Simulated: true}, nil
	}

	links, err := s.linkRepo.FindByProjectIDs(ctx, []string{project.ID})
	if err != nil {
		return nil, fmt.Errorf("load links: %w", err)
	}

	data := email.ProjectDeliveredData{
		ClientName:  project.Client.Name,
		ProjectName: project.Name,
		Links:       make([]email.DeliveryLink, 0, len(links)),
	}
	for _, l := range links {
		label := defaultLinkLabel
		if l.Label != nil && *l.Label != "" {
			label = *l.Label
		}
		data.Links = append(data.Links, email.DeliveryLink{Label: label, URL: l.URL})
	}

	if err := s.mailer.SendProjectDelivered(ctx, *project.Client.Email, data); err != nil {
		s.log.Error().Err(err).Str("project", projectID).Msg("delivery email failed")
		return nil, fmt.Errorf("%w: %w", ErrDeliveryFailed, err)
	}
	return &Result{Message: MessageSent}, nil
}
