package models

import "time"

// LearningGuide represents an uploaded guide record (guía de aprendizaje)
// pairing metadata with a stored PDF file. Records are created on upload and
// immutable afterward. ProgramID and InstructorID are application-resolved
// references, not database foreign keys.
type LearningGuide struct {
	ID           int64     `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Description  string    `json:"description" db:"description"`
	ProgramID    int64     `json:"programId" db:"program_id"`
	PDFFilename  string    `json:"pdfFilename" db:"pdf_filename"`
	PublishedAt  time.Time `json:"publishedAt" db:"published_at"`
	InstructorID int64     `json:"instructorId" db:"instructor_id"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// GuideListing is the read-only projection used by the guide list: a guide
// with its instructor, program and (through the instructor) regional already
// resolved. Missing references are substituted with "N/A" by the service.
type GuideListing struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	PDFFilename    string    `json:"pdfFilename"`
	PublishedAt    time.Time `json:"publishedAt"`
	InstructorName string    `json:"instructorName"`
	ProgramName    string    `json:"programName"`
	RegionalName   string    `json:"regionalName"`
}
