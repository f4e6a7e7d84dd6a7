package filesystem

import "errors"

var (
	// ErrNotADirectory is an error that occurs when a path expected to be a
	// directory points to some other type of file instead.
	ErrNotADirectory = errors.New("path is not a directory")
)
