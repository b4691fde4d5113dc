// Package common defines sentinel errors shared by the storage and page
// layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// repository specific errors
	ErrorNotFound      = errors.New("not found")
	ErrorUnknownColumn = errors.New("unknown column")

	// storage specific errors
	ErrorUploadRejected = errors.New("upload rejected")
)
