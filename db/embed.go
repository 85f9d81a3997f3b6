// Package db provides the embedded database schema and the seed catalog.
package db

import _ "embed"

// Schema contains the DDL statements for all application tables.
//
//go:embed migrations/001_schema.sql
var Schema string

// SeedProducts contains the default MidNight Studio catalog as JSON.
// It backs the embedded catalog source and the seed-db command.
//
//go:embed seed/products.json
var SeedProducts []byte
