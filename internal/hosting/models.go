package hosting

// CreateRequest describes the repository to create on a hosting provider.
type CreateRequest struct {
	Name        string
	Description string
	Private     bool
}

// DefaultDescription is used when a CreateRequest has no description.
func DefaultDescription(name string) string {
	return "Created by mgit - " + name
}
