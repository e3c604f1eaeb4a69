package service

import (
	"errors"
	"os"
)

// AppVersion is the application release version reported by the API.
const AppVersion = "1.0.0"

// SystemService reports application health and version information.
type SystemService struct {
	documentPath string
}

// NewSystemService creates a system service aware of the declared-document
// location.
func NewSystemService(documentPath string) *SystemService {
	return &SystemService{documentPath: documentPath}
}

// DocumentStatus reports whether the user's declared document is present.
// "example" means the embedded demo document will be served instead.
func (s *SystemService) DocumentStatus() string {
	if _, err := os.Stat(s.documentPath); errors.Is(err, os.ErrNotExist) {
		return "example"
	}
	return "present"
}

// Version returns the application version.
func (s *SystemService) Version() string {
	return AppVersion
}
