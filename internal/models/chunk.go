package models

import "time"

// ChunkMetadata carries the descriptive fields stored alongside a vector and
// returned verbatim on retrieval. It is display/context data only; similarity
// search never consults it.
type ChunkMetadata struct {
	Text     string   `json:"text"`
	Title    string   `json:"title,omitempty"`
	Category string   `json:"category,omitempty"`
	Topics   []string `json:"topics,omitempty"`
}

// VectorRecord is a stored knowledge chunk: an embedding vector keyed by a
// stable id with its metadata. Records are immutable once written; an upsert
// with the same id overwrites the whole record.
type VectorRecord struct {
	ID        string `badgerhold:"key"`
	Values    []float32
	Metadata  ChunkMetadata
	CreatedAt time.Time
	UpdatedAt time.Time
}

// QueryMatch is one nearest-neighbor result from a similarity query,
// ordered by descending score.
type QueryMatch struct {
	ID       string
	Score    float32
	Metadata ChunkMetadata
}

// IndexDescriptor is the vector index's identity and configuration. Exactly
// one descriptor is active per deployment, and its dimension must equal the
// embedding model's output size whenever the index is queried.
type IndexDescriptor struct {
	Name      string `badgerhold:"key"`
	Dimension int
	Metric    string
	CreatedAt time.Time
}

// SeedEntry is one curated knowledge-base fact loaded at deployment time.
// IDs are fixed so re-seeding overwrites rather than duplicates.
type SeedEntry struct {
	ID       string
	Category string
	Title    string
	Text     string
	Topics   []string
}
