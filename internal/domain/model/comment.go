package model

import "time"

// Comment is a testimonial entry shown on the storefront home page.
type Comment struct {
	ID        string
	Author    string
	Text      string
	Rating    int
	CreatedAt time.Time
}
