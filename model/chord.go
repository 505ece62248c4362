package model

type Notes = []uint8

// ChordGroup is a contiguous run of events emitted for a single trigger.
type ChordGroup = []EventRecord

type Piece struct {
	Name   string
	Path   string
	Events []RawEvent
}

type PieceMetadata struct {
	Title   string `json:"title"`
	Artist  string `json:"artist,omitempty"`
	Release string `json:"release,omitempty"`
	Year    uint   `json:"year,omitempty"`
}
