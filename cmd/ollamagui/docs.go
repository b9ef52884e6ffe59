package main

// General API documentation for swaggo. The document served under -tags=swagger
// lives in package docs.
//
// @title           OllamaGUI API
// @version         1.0
// @description     Local web proxy for chatting with Ollama models and managing model downloads.
//
// @contact.name   ollamagui maintainers
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
