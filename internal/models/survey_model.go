package models

import "time"

type CreateSurveyRequest struct {
	Name               *string `json:"name"`
	Email              *string `json:"email" binding:"omitempty,len=0|email"`
	SatisfactionRating int     `json:"satisfactionRating" binding:"required,min=1,max=5"`
	EaseOfUseRating    int     `json:"easeOfUseRating" binding:"required,min=1,max=5"`
	WouldRecommend     *bool   `json:"wouldRecommend" binding:"required"`
	Comments           *string `json:"comments"`
}

type SurveyResponse struct {
	ID                 string    `json:"id"`
	Name               *string   `json:"name"`
	Email              *string   `json:"email"`
	SatisfactionRating int       `json:"satisfactionRating"`
	EaseOfUseRating    int       `json:"easeOfUseRating"`
	WouldRecommend     bool      `json:"wouldRecommend"`
	Comments           *string   `json:"comments"`
	CreatedAt          time.Time `json:"createdAt"`
}

type SurveyCreatedResponse struct {
	Message string         `json:"message"`
	Survey  SurveyResponse `json:"survey"`
}
