//go:build tools

package tools

// Pins the CLIs used outside the server binary: oapi-codegen regenerates
// internal/api, goose runs the history migrations by hand when needed.

import (
    _ "github.com/oapi-codegen/oapi-codegen/v2/cmd/oapi-codegen"
    _ "github.com/pressly/goose/v3/cmd/goose"
)
