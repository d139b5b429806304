package dto

// ===== Request =====

// PostRequest is the body for create and update. The postId is never taken
// from the body; on update it comes from the route parameter.
type PostRequest struct {
	Username string `json:"username" validate:"required"`
	Content  string `json:"content"  validate:"required"`
}

// ===== Error Response =====

type ErrorResponse struct {
	Message string `json:"message" example:"invalid body"`
}
