package dto

type UserOutput struct {
	ID       int    `json:"id"`
	UserName string `json:"user_name"`
	Email    string `json:"email,omitempty"`
}
