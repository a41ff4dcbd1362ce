package models

import "time"

type CreateClientRequest struct {
	Name    string  `json:"name" binding:"required"`
	Company *string `json:"company"`
	Email   *string `json:"email" binding:"omitempty,len=0|email"`
	Phone   *string `json:"phone"`
	Notes   *string `json:"notes"`
}

// UpdateClientRequest applies only the keys present in the body. An empty
// email clears it.
type UpdateClientRequest struct {
	Name    *string `json:"name" binding:"omitempty,min=1"`
	Company *string `json:"company"`
	Email   *string `json:"email" binding:"omitempty,len=0|email"`
	Phone   *string `json:"phone"`
	Notes   *string `json:"notes"`
}

// CreateLeadRequest is the public registration form.
type CreateLeadRequest struct {
	Name    string  `json:"name" binding:"required"`
	Company string  `json:"company" binding:"required"`
	Email   string  `json:"email" binding:"required,email"`
	Phone   *string `json:"phone"`
	Notes   *string `json:"notes"`
}

type ClientResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Company   *string   `json:"company"`
	Email     *string   `json:"email"`
	Phone     *string   `json:"phone"`
	Notes     *string   `json:"notes"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ClientRef is the client summary nested in project lists.
type ClientRef struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Company *string `json:"company"`
}

type ClientListItem struct {
	ClientResponse
	Projects []ProjectSummary `json:"projects"`
}

type ClientDetailResponse struct {
	ClientResponse
	Projects []ProjectResponse `json:"projects"`
}
