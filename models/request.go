package models

// QueryTextRequest carries the user's question. GET requests bind it from the
// query string, POST requests from a JSON body or a submitted form.
type QueryTextRequest struct {
	Question string `json:"question" form:"question" binding:"required"`
}
