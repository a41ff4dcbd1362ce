package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Marga-Ghale/creativa-crm/internal/repository"
)

// LeadNotePrefix marks clients that registered through the public form.
const LeadNotePrefix = "[Registro Web] "

// ============================================
// Client Service
// ============================================

// ClientInput creates a client. Empty strings are stored as absent.
type ClientInput struct {
	Name    string
	Company *string
	Email   *string
	Phone   *string
	Notes   *string
}

// ClientPatch updates only the non-nil fields. An empty Email clears it.
type ClientPatch struct {
	Name    *string
	Company *string
	Email   *string
	Phone   *string
	Notes   *string
}

// ClientWithProjects is a client and its projects, newest first.
type ClientWithProjects struct {
	*repository.Client
	Projects []*repository.Project
}

type ClientService interface {
	List(ctx context.Context) ([]*ClientWithProjects, error)
	Get(ctx context.Context, id string) (*ClientWithProjects, error)
	Create(ctx context.Context, in ClientInput) (*repository.Client, error)
	CreateLead(ctx context.Context, in ClientInput) (*repository.Client, error)
	Update(ctx context.Context, id string, patch ClientPatch) (*repository.Client, error)
	Delete(ctx context.Context, id string) error
}

type clientService struct {
	clientRepo  repository.ClientRepository
	projectRepo repository.ProjectRepository
}

func NewClientService(clientRepo repository.ClientRepository, projectRepo repository.ProjectRepository) ClientService {
	return &clientService{clientRepo: clientRepo, projectRepo: projectRepo}
}

const (
	msgClientNotFound  = "Cliente no encontrado"
	msgClientDuplicate = "Ya existe un cliente con ese email"
	msgLeadDuplicate   = "Este correo ya está registrado en nuestra base de datos."
)

// normalizeEmail trims and maps "" to nil.
func normalizeEmail(email *string) *string {
	if email == nil {
		return nil
	}
	e := strings.TrimSpace(*email)
	if e == "" {
		return nil
	}
	return &e
}

func (s *clientService) List(ctx context.Context) ([]*ClientWithProjects, error) {
	clients, err := s.clientRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	projects, err := s.projectRepo.Find(ctx, repository.ProjectFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	byClient := make(map[string][]*repository.Project)
	for _, p := range projects {
		byClient[p.ClientID] = append(byClient[p.ClientID], p)
	}

	out := make([]*ClientWithProjects, len(clients))
	for i, c := range clients {
		out[i] = &ClientWithProjects{Client: c, Projects: byClient[c.ID]}
	}
	return out, nil
}

func (s *clientService) Get(ctx context.Context, id string) (*ClientWithProjects, error) {
	client, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, notFound(msgClientNotFound)
	}

	projects, err := s.projectRepo.Find(ctx, repository.ProjectFilter{ClientID: id})
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return &ClientWithProjects{Client: client, Projects: projects}, nil
}

func (s *clientService) Create(ctx context.Context, in ClientInput) (*repository.Client, error) {
	return s.create(ctx, in, msgClientDuplicate)
}

// CreateLead registers a prospect from the public form. Notes are tagged so
// staff can tell web registrations apart.
func (s *clientService) CreateLead(ctx context.Context, in ClientInput) (*repository.Client, error) {
	notes := LeadNotePrefix
	if in.Notes != nil {
		notes += *in.Notes
	}
	in.Notes = &notes
	return s.create(ctx, in, msgLeadDuplicate)
}

func (s *clientService) create(ctx context.Context, in ClientInput, duplicateMsg string) (*repository.Client, error) {
	client := &repository.Client{
		Name:    strings.TrimSpace(in.Name),
		Company: in.Company,
		Email:   normalizeEmail(in.Email),
		Phone:   in.Phone,
		Notes:   in.Notes,
	}

	if client.Email != nil {
		existing, err := s.clientRepo.FindByEmail(ctx, *client.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, conflict(duplicateMsg)
		}
	}

	if err := s.clientRepo.Create(ctx, client); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, conflict(duplicateMsg)
		}
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return client, nil
}

func (s *clientService) Update(ctx context.Context, id string, patch ClientPatch) (*repository.Client, error) {
	client, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, notFound(msgClientNotFound)
	}

	if patch.Email != nil {
		client.Email = normalizeEmail(patch.Email)
		if client.Email != nil {
			other, err := s.clientRepo.FindByEmail(ctx, *client.Email)
			if err != nil {
				return nil, err
			}
			if other != nil && other.ID != id {
				return nil, conflict(msgClientDuplicate)
			}
		}
	}
	if patch.Name != nil {
		client.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Company != nil {
		client.Company = patch.Company
	}
	if patch.Phone != nil {
		client.Phone = patch.Phone
	}
	if patch.Notes != nil {
		client.Notes = patch.Notes
	}

	if err := s.clientRepo.Update(ctx, client); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, conflict(msgClientDuplicate)
		}
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound(msgClientNotFound)
		}
		return nil, fmt.Errorf("failed to update client: %w", err)
	}
	return client, nil
}

// Delete removes the client and, by cascade, its projects.
func (s *clientService) Delete(ctx context.Context, id string) error {
	client, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if client == nil {
		return notFound(msgClientNotFound)
	}
	return s.clientRepo.Delete(ctx, id)
}
