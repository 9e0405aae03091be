package main

// General API documentation for swaggo. Run `swag init -g cmd/ollamakit/docs.go -d ./,./internal/httpapi,./pkg/types`
// to regenerate ./docs.
//
// @title           ollamakit dashboard API
// @version         1.0
// @description     Web dashboard API for chatting with and managing models on a local Ollama server.
//
// @contact.name   ollamakit maintainers
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
