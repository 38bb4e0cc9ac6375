package util

import (
	"github.com/google/uuid"
)

// NewIdentity returns a new opaque caller identity
func NewIdentity() string {
	return uuid.New().String()
}
