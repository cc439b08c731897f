// Package config loads typed configuration structs from environment
// variables, with optional .env bootstrap for local development.
//
// Each package that needs configuration declares its own struct with `env`
// tags and defaults; nothing here knows about concrete settings.
package config
