// Package middleware provides HTTP middleware for the back-office system.
package middleware

import (
	"context"
	"strings"

	"github.com/backoffice/backend/internal/infrastructure/telemetry"
	"github.com/gin-gonic/gin"
)

// ProfilingConfig holds configuration for the profiling middleware.
type ProfilingConfig struct {
	// Enabled controls whether profiling labels are added to requests.
	Enabled bool
	// SkipPaths are paths that don't need profiling labels (e.g., health checks).
	SkipPaths []string
	// SkipPathPrefixes are path prefixes that don't need profiling labels.
	SkipPathPrefixes []string
}

// DefaultProfilingConfig returns default profiling middleware configuration.
func DefaultProfilingConfig() ProfilingConfig {
	return ProfilingConfig{
		Enabled: true,
		SkipPaths: []string{
			"/health",
			"/healthz",
			"/ready",
			"/metrics",
		},
		SkipPathPrefixes: []string{
			"/swagger",
			"/api-docs",
		},
	}
}

// Profiling returns profiling middleware with default configuration.
// This middleware adds Pyroscope labels to the request context for
// continuous profiling analysis.
func Profiling() gin.HandlerFunc {
	return ProfilingWithConfig(DefaultProfilingConfig())
}

// ProfilingWithConfig returns profiling middleware with custom configuration.
// The middleware adds the following labels to the profiling context:
//   - controller: Resource name derived from the route (e.g., "documents")
//   - route: Route pattern (e.g., "/api/v1/documents/:id")
//   - method: HTTP method (GET, POST, PUT, DELETE)
//
// These labels can be used in Pyroscope UI to filter and analyze profiles
// by different dimensions.
func ProfilingWithConfig(cfg ProfilingConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		path := c.Request.URL.Path

		for _, skipPath := range cfg.SkipPaths {
			if path == skipPath {
				c.Next()
				return
			}
		}

		for _, prefix := range cfg.SkipPathPrefixes {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}

		labels := extractProfilingLabels(c)

		// Wrap the handler execution with profiling labels
		telemetry.WithProfilingLabels(c.Request.Context(), labels, func(ctx context.Context) {
			c.Request = c.Request.WithContext(ctx)
			c.Next()
		})
	}
}

// extractProfilingLabels extracts profiling labels from the gin context.
func extractProfilingLabels(c *gin.Context) map[string]string {
	labels := make(map[string]string, 3)

	// HTTP method (low cardinality: GET, POST, PUT, DELETE, PATCH)
	method := c.Request.Method
	if method != "" {
		labels[telemetry.ProfilingLabelMethod] = method
	}

	// Route pattern (from gin's matched route, e.g., "/api/v1/documents/:id").
	// This is low cardinality as it uses the pattern, not the actual path.
	route := c.FullPath()
	if route != "" {
		labels[telemetry.ProfilingLabelRoute] = route
	}

	// Controller name derived from the route pattern,
	// e.g. "/api/v1/documents" -> "documents"
	controller := extractControllerFromRoute(route)
	if controller != "" {
		labels[telemetry.ProfilingLabelController] = controller
	}

	return labels
}

// extractControllerFromRoute derives a controller name from the route pattern.
// Example: "/api/v1/documents/:id" -> "documents"
// Example: "/api/v1/warehouse/orders/:id" -> "warehouse"
func extractControllerFromRoute(route string) string {
	if route == "" {
		return ""
	}

	parts := strings.Split(route, "/")

	// Find the first meaningful path segment after "api" and version.
	// Expected format: /api/v1/{resource}/...
	for i, part := range parts {
		if part == "" || part == "api" || isVersionSegment(part) {
			continue
		}

		// Skip path parameters (start with ':' or are in curly braces)
		if strings.HasPrefix(part, ":") || strings.HasPrefix(part, "{") {
			continue
		}

		// If the next part is a path parameter, this is likely the controller,
		// e.g. "/api/v1/documents/:id" -> documents
		if i+1 < len(parts) && (strings.HasPrefix(parts[i+1], ":") || strings.HasPrefix(parts[i+1], "{")) {
			return part
		}

		// Return the first meaningful segment
		return part
	}

	return ""
}

// isVersionSegment checks if a path segment is an API version (v1, v2, etc.)
func isVersionSegment(segment string) bool {
	if len(segment) < 2 {
		return false
	}
	if segment[0] != 'v' && segment[0] != 'V' {
		return false
	}
	for i := 1; i < len(segment); i++ {
		if segment[i] < '0' || segment[i] > '9' {
			return false
		}
	}
	return true
}
