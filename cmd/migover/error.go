package main

import "errors"

var (
	// ErrConfigExists is returned when an existing configuration file would be overwritten.
	ErrConfigExists = errors.New("configuration file already exists")
)
