package dto

// PageList is the wire representation of a chapter's page listing.
type PageList struct {
	Pages []Page `json:"pages"`
}

// Page is the wire representation of one page image.
type Page struct {
	// URL is where the encoded image bytes can be fetched.
	URL string `json:"url"`

	// Spread marks an image that covers a merged two-page spread.
	Spread bool `json:"spread"`
}
