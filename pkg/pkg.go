//nolint:gochecknoglobals
package pkg

import (
	_ "embed"
)

// Version is the semantic version of the jexpr module embedded at build time.
//
//go:embed VERSION
var Version string

const (
	// Name is the canonical module identifier. It prefixes log records and
	// error messages.
	Name = "jexpr"
	// Description is a short, human-readable summary of the project.
	Description = "Jinja2-style expression engine"
)

// AuthorInfo represents an individual author's name and email address.
type AuthorInfo struct {
	// Name is the author's preferred name or handle.
	Name string
	// Email is the author's contact email address.
	Email string
}

// Author lists the primary author(s) of the project.
//
//nolint:gochecknoglobals
var Author = []AuthorInfo{
	{"ardnew", "andrew@ardnew.com"},
}
