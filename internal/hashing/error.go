package hashing

import "errors"

var (
	// ErrUnknownAlgorithm occurs when an algorithm name maps to no provided
	// digest implementation.
	ErrUnknownAlgorithm = errors.New("unknown hashing algorithm")
)
