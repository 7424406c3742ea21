package dto

// AddReviewRequest represents the request body for POST /facilities/:id/reviews.
type AddReviewRequest struct {
	Author  string `json:"author,omitempty"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment,omitempty"`
}
