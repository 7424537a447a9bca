// Package property provides the property domain model and the in-memory store.
package property

import (
	"strconv"
	"time"
)

// Status represents where a listing is in the sales workflow.
type Status string

const (
	StatusAvailable Status = "available"
	StatusSold      Status = "sold"
	StatusPending   Status = "pending"
)

// Statuses lists every known status in display order.
var Statuses = []Status{StatusAvailable, StatusSold, StatusPending}

// ValidStatus returns true if s is a known status.
func ValidStatus(s string) bool {
	switch Status(s) {
	case StatusAvailable, StatusSold, StatusPending:
		return true
	}
	return false
}

// Property represents a listing record.
type Property struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Address     string    `json:"address"`
	Price       float64   `json:"price"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewProperty holds the caller-supplied fields for Create.
// An empty Status defaults to StatusAvailable.
type NewProperty struct {
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Address     string  `json:"address"`
	Price       float64 `json:"price"`
	Status      Status  `json:"status,omitempty"`
}

// Patch is a partial update. Nil fields are left untouched.
type Patch struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Address     *string  `json:"address,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Status      *Status  `json:"status,omitempty"`
}

// IsEmpty reports whether the patch carries no fields.
func (p Patch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Address == nil &&
		p.Price == nil && p.Status == nil
}

// apply copies every present field onto dst.
func (p Patch) apply(dst *Property) {
	if p.Title != nil {
		dst.Title = *p.Title
	}
	if p.Description != nil {
		dst.Description = *p.Description
	}
	if p.Address != nil {
		dst.Address = *p.Address
	}
	if p.Price != nil {
		dst.Price = *p.Price
	}
	if p.Status != nil {
		dst.Status = *p.Status
	}
}

// ParseID parses a path identifier. Anything that is not a base-10
// integer matches no record.
func ParseID(s string) (int64, bool) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
