package dto

import "time"

// UploadGuideRequest carries the multipart form fields of a guide upload.
// The PDF itself travels as the "file" form part.
type UploadGuideRequest struct {
	Name        string `form:"name" binding:"required" example:"Intro SQL"`
	Description string `form:"description" binding:"required" example:"Fundamentos de SQL"`
	ProgramID   int64  `form:"programId" binding:"required" example:"1"`
}

// GuideResponse describes a stored guide.
type GuideResponse struct {
	ID          int64     `json:"id" example:"1"`
	Name        string    `json:"name" example:"Intro SQL"`
	Description string    `json:"description"`
	PDFFilename string    `json:"pdfFilename" example:"intro.pdf"`
	PublishedAt time.Time `json:"publishedAt"`
}

// GuideListItem is one row of the guide listing with its references resolved
// for display. Unresolvable references render as "N/A".
type GuideListItem struct {
	ID             int64     `json:"id" example:"1"`
	Name           string    `json:"name" example:"Intro SQL"`
	Description    string    `json:"description"`
	PDFFilename    string    `json:"pdfFilename" example:"intro.pdf"`
	PublishedAt    time.Time `json:"publishedAt"`
	InstructorName string    `json:"instructorName" example:"Ana Gomez"`
	ProgramName    string    `json:"programName" example:"Desarrollo de Software"`
	RegionalName   string    `json:"regionalName" example:"Huila"`
}

// GuideListResponse is the newest-first guide listing.
type GuideListResponse struct {
	Guides []GuideListItem `json:"guides"`
	Total  int             `json:"total" example:"1"`
}
