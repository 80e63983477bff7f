package manifest

import (
	"errors"
	"fmt"
)

// Sentinel errors for the manifest package
var (
	// ErrManifestNotFound indicates no manifest file was located
	ErrManifestNotFound = errors.New("manifest file not found")

	// ErrManifestParse indicates the manifest file is not a valid document
	ErrManifestParse = errors.New("manifest could not be parsed")

	// ErrUnsupportedExt indicates an unsupported file extension
	ErrUnsupportedExt = fmt.Errorf("%w: unsupported file extension (use .json, .yaml or .yml)", ErrManifestParse)

	// ErrConfiguration indicates an invalid loader or tag configuration
	ErrConfiguration = errors.New("invalid configuration")
)
