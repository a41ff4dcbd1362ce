package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Marga-Ghale/creativa-crm/internal/repository"
	"github.com/Marga-Ghale/creativa-crm/internal/types"
	"golang.org/x/crypto/bcrypt"
)

// ============================================
// User Service
// ============================================

type UserService interface {
	List(ctx context.Context) ([]*repository.User, error)
	Create(ctx context.Context, name, email, password, role string) (*repository.User, error)
	Update(ctx context.Context, id string, name, email, password, role *string) (*repository.User, error)
	Delete(ctx context.Context, actorID, id string) error
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

// HashPassword hashes with bcrypt at the default cost.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func (s *userService) List(ctx context.Context) ([]*repository.User, error) {
	return s.userRepo.FindAll(ctx)
}

func (s *userService) Create(ctx context.Context, name, email, password, role string) (*repository.User, error) {
	if !types.IsValidRole(role) {
		return nil, &ValidationError{Field: "role", Message: "Rol inválido"}
	}

	email = strings.TrimSpace(email)
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, conflict("El email ya está registrado")
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &repository.User{
		Name:     strings.TrimSpace(name),
		Email:    email,
		Password: hash,
		Role:     role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, conflict("El email ya está registrado")
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func (s *userService) Update(ctx context.Context, id string, name, email, password, role *string) (*repository.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, notFound("Usuario no encontrado")
	}

	if email != nil {
		e := strings.TrimSpace(*email)
		other, err := s.userRepo.FindByEmail(ctx, e)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != id {
			return nil, conflict("El email ya está en uso")
		}
		user.Email = e
	}
	if name != nil {
		user.Name = strings.TrimSpace(*name)
	}
	if role != nil {
		if !types.IsValidRole(*role) {
			return nil, &ValidationError{Field: "role", Message: "Rol inválido"}
		}
		user.Role = *role
	}
	if password != nil {
		hash, err := HashPassword(*password)
		if err != nil {
			return nil, err
		}
		user.Password = hash
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, conflict("El email ya está en uso")
		}
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("Usuario no encontrado")
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

func (s *userService) Delete(ctx context.Context, actorID, id string) error {
	if actorID == id {
		return ErrCannotDeleteSelf
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return notFound("Usuario no encontrado")
	}
	return s.userRepo.Delete(ctx, id)
}
