package domain

import "time"

// Document is one entry in the local content repository: a title plus
// the block-annotated markup produced by the converter.
type Document struct {
	ID        string
	Title     string
	Content   string
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DocumentStatusDraft is the status given to every document the
// pipeline writes; publication is a manual step.
const DocumentStatusDraft = "draft"
