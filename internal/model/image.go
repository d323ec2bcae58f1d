package model

import "github.com/google/uuid"

// Image belongs to exactly one Product and is removed with it.
type Image struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"product_id"`
	URL       string    `json:"url"`
	Position  int       `json:"position"`
}

// ImageURLs returns the URLs of images in order. It never returns nil.
func ImageURLs(images []Image) []string {
	urls := make([]string, 0, len(images))
	for _, img := range images {
		urls = append(urls, img.URL)
	}
	return urls
}
