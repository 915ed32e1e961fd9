package models

// CreateFrameRequest is the authoring payload for a new frame. Field
// constraints mirror the authoring form: every field must be present and
// non-blank, and the criteria must parse.
type CreateFrameRequest struct {
	Title            string `json:"title" validate:"required,notblank"`
	Shop             string `json:"shop" validate:"required,notblank"`
	Image            string `json:"image" validate:"required,notblank"`
	Button           string `json:"button" validate:"required,notblank"`
	MatchingCriteria string `json:"matchingCriteria" validate:"required,notblank"`
}

// UpdateFrameRequest edits an existing frame by id.
type UpdateFrameRequest struct {
	ID               int64  `json:"id" validate:"required,gt=0"`
	Title            string `json:"title" validate:"required,notblank"`
	Shop             string `json:"shop" validate:"required,notblank"`
	Image            string `json:"image" validate:"required,notblank"`
	Button           string `json:"button" validate:"required,notblank"`
	MatchingCriteria string `json:"matchingCriteria" validate:"required,notblank"`
}

// DeleteFrameRequest deletes a frame by id.
type DeleteFrameRequest struct {
	ID int64 `json:"id" validate:"required,gt=0"`
}
