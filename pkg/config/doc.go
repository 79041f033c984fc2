// Package config loads typed configuration structs from environment
// variables via github.com/caarlos0/env, with optional .env file support for
// local development via godotenv.
//
// Each package that needs configuration declares its own Config struct with
// `env` tags and sensible envDefaults; the entrypoint loads them all at
// startup with MustLoad so a misconfigured job fails before touching any
// collaborator.
package config
