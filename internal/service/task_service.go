package service

import (
	"context"
	"errors"
	"strings"

	"github.com/Marga-Ghale/creativa-crm/internal/repository"
)

// ============================================
// Task Service
// ============================================

type TaskService interface {
	Update(ctx context.Context, id string, title *string, done *bool) (*repository.Task, error)
	Delete(ctx context.Context, id string) error
}

type taskService struct {
	taskRepo repository.TaskRepository
}

func NewTaskService(taskRepo repository.TaskRepository) TaskService {
	return &taskService{taskRepo: taskRepo}
}

const msgTaskNotFound = "Tarea no encontrada"

func (s *taskService) Update(ctx context.Context, id string, title *string, done *bool) (*repository.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, notFound(msgTaskNotFound)
	}

	if title != nil {
		t := strings.TrimSpace(*title)
		if t == "" {
			return nil, &ValidationError{Field: "title", Message: "El título es requerido"}
		}
		task.Title = t
	}
	if done != nil {
		task.Done = *done
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound(msgTaskNotFound)
		}
		return nil, err
	}
	return task, nil
}

func (s *taskService) Delete(ctx context.Context, id string) error {
	task, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if task == nil {
		return notFound(msgTaskNotFound)
	}
	return s.taskRepo.Delete(ctx, id)
}

// ============================================
// Link Service
// ============================================

type LinkService interface {
	Delete(ctx context.Context, id string) error
}

type linkService struct {
	linkRepo repository.LinkRepository
}

func NewLinkService(linkRepo repository.LinkRepository) LinkService {
	return &linkService{linkRepo: linkRepo}
}

func (s *linkService) Delete(ctx context.Context, id string) error {
	link, err := s.linkRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if link == nil {
		return notFound("Link no encontrado")
	}
	return s.linkRepo.Delete(ctx, id)
}
