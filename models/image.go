package models

// Image is the stored form of a hosted asset: the delivery URL plus the
// remote public ID required to destroy it later.
type Image struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
}

// ImageList is a JSON column holding an ordered set of images.
type ImageList []Image
