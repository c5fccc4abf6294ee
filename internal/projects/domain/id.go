package domain

import "github.com/google/uuid"

// NewProductID generates the identifier assigned to a project on creation.
func NewProductID() string {
	return uuid.NewString()
}
