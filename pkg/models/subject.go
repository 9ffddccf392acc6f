package models

// Subject groups topics by name
type Subject struct {
	Name string `json:"name" db:"name"`
}
