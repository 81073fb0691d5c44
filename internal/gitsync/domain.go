package gitsync

// RepositorySpec describes one repository to keep synchronized. It is
// supplied by configuration and never mutated.
type RepositorySpec struct {
	Name     string   `validate:"required,min=1,max=100"`
	URL      string   `validate:"required"`
	Branches []string `validate:"required,min=1,dive,required"`
}
