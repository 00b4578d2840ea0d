package domain

// Project groups tasks. Tasks reference it by ID.
type Project struct {
	ID          int64   `json:"project_id"`
	Name        string  `json:"project_name"`
	Description *string `json:"project_description"`
}
