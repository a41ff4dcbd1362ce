package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Marga-Ghale/creativa-crm/internal/repository"
	"github.com/Marga-Ghale/creativa-crm/internal/types"
)

// NullableDate decodes an optional calendar date. Set records whether the
// key was present at all; a present null or "" leaves Valid false.
// Accepts "2006-01-02" and RFC 3339 timestamps.
type NullableDate struct {
	Set   bool
	Valid bool
	Time  time.Time
}

func (d *NullableDate) UnmarshalJSON(data []byte) error {
	d.Set = true
	d.Valid = false
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("dueDate must be a date string: %w", err)
	}
	if s == "" {
		return nil
	}

	t, err := ParseDate(s)
	if err != nil {
		return err
	}
	d.Valid = true
	d.Time = t
	return nil
}

// Ptr returns the date or nil.
func (d NullableDate) Ptr() *time.Time {
	if !d.Valid {
		return nil
	}
	t := d.Time
	return &t
}

// ParseDate accepts a date or an RFC 3339 timestamp and keeps the calendar
// day only.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// FormatDate renders a due date as YYYY-MM-DD.
func FormatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.DateOnly)
	return &s
}

// Request models
type CreateProjectRequest struct {
	ClientID    string              `json:"clientId" binding:"required,uuid"`
	Name        string              `json:"name" binding:"required"`
	Description *string             `json:"description"`
	Status      types.ProjectStatus `json:"status" binding:"required,oneof=Lead Cotizacion EnProduccion Entregado"`
	DueDate     NullableDate        `json:"dueDate"`
	Notes       *string             `json:"notes"`
}

type UpdateProjectRequest struct {
	ClientID    *string              `json:"clientId" binding:"omitempty,uuid"`
	Name        *string              `json:"name" binding:"omitempty,min=1"`
	Description *string              `json:"description"`
	Status      *types.ProjectStatus `json:"status" binding:"omitempty,oneof=Lead Cotizacion EnProduccion Entregado"`
	DueDate     NullableDate         `json:"dueDate"`
	Notes       *string              `json:"notes"`
}

type CreateTaskRequest struct {
	Title string `json:"title" binding:"required"`
}

type UpdateTaskRequest struct {
	Title *string `json:"title" binding:"omitempty,min=1"`
	Done  *bool   `json:"done"`
}

type CreateLinkRequest struct {
	Label *string `json:"label"`
	URL   string  `json:"url" binding:"required"`
}

// Response models
type ProjectResponse struct {
	ID          string              `json:"id"`
	ClientID    string              `json:"clientId"`
	Name        string              `json:"name"`
	Description *string             `json:"description"`
	Status      types.ProjectStatus `json:"status"`
	DueDate     *string             `json:"dueDate"`
	Notes       *string             `json:"notes"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
}

// ProjectSummary is the project view nested in client lists.
type ProjectSummary struct {
	ID     string              `json:"id"`
	Name   string              `json:"name"`
	Status types.ProjectStatus `json:"status"`
}

type TaskSummary struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Done  bool   `json:"done"`
}

// ProjectListItem is one card of GET /projects.
type ProjectListItem struct {
	ProjectResponse
	Client *ClientRef                    `json:"client"`
	Tasks  []TaskSummary                 `json:"tasks"`
	Links  []*repository.DeliverableLink `json:"links"`
}

type ProjectDetailResponse struct {
	ProjectResponse
	Client *ClientResponse               `json:"client"`
	Tasks  []*repository.Task            `json:"tasks"`
	Links  []*repository.DeliverableLink `json:"links"`
}
