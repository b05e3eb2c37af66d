// Package dto contains the JSON wire structures of the upstream source
// API. They are deserialization targets only; the parser converts them
// into model types before anything else sees them.
package dto

// Title is the wire representation of a title and its chapter listing.
type Title struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Language string    `json:"language"`
	Chapters []Chapter `json:"chapters"`
}

// Chapter is the wire representation of one chapter.
type Chapter struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	SubTitle       string `json:"sub_title"`
	StartTimestamp int64  `json:"start_timestamp"`
}
