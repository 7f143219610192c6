package main

import "errors"

var (
	// ErrUsage occurs when the command-line arguments do not form a valid
	// command.
	ErrUsage = errors.New("invalid usage")

	// ErrUnknownCommand occurs when the requested command does not exist.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrNoRoot occurs when neither the flags nor the configuration file name
	// a root directory.
	ErrNoRoot = errors.New("no root directory configured")
)
