package storage

import "apartment-map/models"

// ListingWriter is the interface any persistence target must satisfy.
type ListingWriter interface {
	Write(listings []models.Listing) error
}

var _ ListingWriter = (*LinkedFile)(nil)
