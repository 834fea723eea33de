package main

import (
	"io"
	"os"

	"github.com/alnah/go-mdpress"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Stdout io.Writer
	Stderr io.Writer

	// Getenv reads environment variables (MDPRESS_CONFIG, MDPRESS_ASSETS).
	Getenv func(string) string

	// NewConverter and NewPool build the conversion backends.
	NewConverter func(opts ...mdpress.Option) (Converter, error)
	NewPool      func(n int, opts ...mdpress.Option) Pool
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Stdout:       os.Stdout,
		Stderr:       os.Stderr,
		Getenv:       os.Getenv,
		NewConverter: newConverter,
		NewPool:      newPoolAdapter,
	}
}
