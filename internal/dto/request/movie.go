package request

// MovieRequest is used for both create and update. Update has no
// partial-field semantics: director and releaseYear are overwritten
// with whatever the request carries, including nil.
type MovieRequest struct {
	Title       string  `json:"title" validate:"required,min=1,max=255"`
	Director    *string `json:"director,omitempty"`
	ReleaseYear *int    `json:"releaseYear,omitempty" validate:"omitempty,gte=1888,lte=2100"`
}
