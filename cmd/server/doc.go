// Package main is the entry point for the component previewer service.
//
// The service hosts a live sandbox for declarative UI components: it
// rewrites a component's source so its dependencies resolve against mock
// substitutes, compiles the result in an embedded JavaScript runtime,
// intercepts every network call the component issues, and hands the host
// page a rendered element tree or a diagnostic view.
//
// The server provides:
//   - REST API for selecting and tearing down previews
//   - WebSocket streaming of session state and rendered trees
//   - Fixture-backed interception of component network calls
//   - Prometheus metrics and rate limiting
//
// Configuration is environment-driven (12-factor); see
// internal/infrastructure/config for the full key list.
//
// Signals:
//   - SIGINT, SIGTERM: graceful shutdown, interception removed
package main
