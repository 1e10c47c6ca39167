package web

import "embed"

// StaticFS holds the embedded stylesheet.
//
//go:embed static/*
var StaticFS embed.FS
