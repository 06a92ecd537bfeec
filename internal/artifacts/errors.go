package artifacts

import (
	"errors"
	"fmt"
)

var (
	ErrArtifactNotFound = errors.New("artifact not found")
	ErrArtifactCorrupt  = errors.New("artifact corrupt")
)

const (
	ROLE_MODEL      = "model"
	ROLE_VECTORIZER = "vectorizer"
)

// ArtifactError names the artifact that failed to load. Kind is
// ErrArtifactNotFound or ErrArtifactCorrupt.
type ArtifactError struct {
	Kind error
	Role string
	Path string
	Err  error
}

func (e *ArtifactError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s at %s", e.Kind, e.Role, e.Path)
	}
	return fmt.Sprintf("%s: %s at %s: %s", e.Kind, e.Role, e.Path, e.Err)
}

func (e *ArtifactError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func notFound(role, path string, err error) error {
	return &ArtifactError{Kind: ErrArtifactNotFound, Role: role, Path: path, Err: err}
}

func corrupt(role, path string, err error) error {
	return &ArtifactError{Kind: ErrArtifactCorrupt, Role: role, Path: path, Err: err}
}
