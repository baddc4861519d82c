package dto

type CreateRoleInput struct {
	Name string `json:"name"`
}

type RoleOutput struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type AssignRoleInput struct {
	Role string `json:"role"`
}
