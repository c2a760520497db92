package analytics

import "github.com/google/uuid"

// NewDistinctID returns a fresh anonymous visitor identifier
func NewDistinctID() string {
	return uuid.NewString()
}
