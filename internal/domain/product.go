package domain

import "time"

// Product is the domain model for shop items.
type Product struct {
	ID          int64
	Name        string
	Description string
	Price       float64
	Image       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
