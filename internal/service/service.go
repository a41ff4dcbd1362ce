package service

import (
	"errors"

	"github.com/Marga-Ghale/creativa-crm/internal/config"
	"github.com/Marga-Ghale/creativa-crm/internal/notification"
	"github.com/Marga-Ghale/creativa-crm/internal/repository"
	"github.com/Marga-Ghale/creativa-crm/internal/socket"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrNotFound           = errors.New("resource not found")
	ErrForbidden          = errors.New("forbidden")
	ErrConflict           = errors.New("resource already exists")
	ErrCannotDeleteSelf   = errors.New("cannot delete own account")

	ErrClientEmailMissing = notification.ErrClientEmailMissing
	ErrEmailNotConfigured = notification.ErrEmailNotConfigured
	ErrDeliveryFailed     = notification.ErrDeliveryFailed
)

// ValidationError rejects a single request field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// NotFoundError carries a user facing message and matches ErrNotFound.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string        { return e.Message }
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// ConflictError carries a user facing message and matches ErrConflict.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string        { return e.Message }
func (e *ConflictError) Is(target error) bool { return target == ErrConflict }

func notFound(msg string) error { return &NotFoundError{Message: msg} }
func conflict(msg string) error { return &ConflictError{Message: msg} }

// ============================================
// Services Container
// ============================================

type Services struct {
	Auth    AuthService
	User    UserService
	Client  ClientService
	Project ProjectService
	Task    TaskService
	Link    LinkService
	Survey  SurveyService
}

// ServiceDeps contains all dependencies needed to create services
type ServiceDeps struct {
	Config      *config.Config
	Repos       *repository.Repositories
	Notifier    *notification.Service
	Broadcaster *socket.Broadcaster
	StatsCache  StatsCache
}

func NewServices(deps *ServiceDeps) *Services {
	return &Services{
		Auth:   NewAuthService(deps.Config, deps.Repos.UserRepo),
		User:   NewUserService(deps.Repos.UserRepo),
		Client: NewClientService(deps.Repos.ClientRepo, deps.Repos.ProjectRepo),
		Project: NewProjectService(
			deps.Repos.ProjectRepo,
			deps.Repos.ClientRepo,
			deps.Repos.TaskRepo,
			deps.Repos.LinkRepo,
			deps.Notifier,
			deps.Broadcaster,
		),
		Task:   NewTaskService(deps.Repos.TaskRepo),
		Link:   NewLinkService(deps.Repos.LinkRepo),
		Survey: NewSurveyService(deps.Repos.SurveyRepo, deps.StatsCache),
	}
}
