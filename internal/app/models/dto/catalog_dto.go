package dto

// RegionalResponse describes a regional office option.
type RegionalResponse struct {
	ID   int64  `json:"id" example:"2"`
	Name string `json:"name" example:"Huila"`
}

// ProgramResponse describes a training program option.
type ProgramResponse struct {
	ID   int64  `json:"id" example:"1"`
	Name string `json:"name" example:"Desarrollo de Software"`
}
