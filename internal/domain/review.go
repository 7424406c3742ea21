package domain

import "time"

const (
	// MinRating and MaxRating bound a review rating.
	MinRating = 1
	MaxRating = 5
)

// Review represents user feedback attached to a facility.
type Review struct {
	ID         string    `json:"id"`
	FacilityID string    `json:"facility_id"`
	Author     string    `json:"author"`
	Rating     int       `json:"rating"` // 1..5
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"created_at"`
}
