package middleware

import (
	"net/http"
	"strings"

	"github.com/SscSPs/finreport_backend/internal/utils"
	"github.com/gin-gonic/gin"
)

// untrackedPaths are never sent to PostHog.
var untrackedPaths = map[string]bool{
	"/health": true,
}

// untrackedParams are query parameters left out of event properties.
var untrackedParams = map[string]bool{
	"pageToken": true,
}

// PosthogMiddleware creates a Gin middleware handler that records one PostHog event
// per successful report request, named after the route and carrying its query parameters.
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !posthogClient.IsInitialized() || untrackedPaths[c.Request.URL.Path] {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}
		eventName := routeEventName(c.FullPath())
		if eventName == "" {
			return
		}
		props := map[string]any{"status_code": c.Writer.Status()}
		if params := reportParams(c); len(params) > 0 {
			props["params"] = params
		}
		PosthogEvent(c, posthogClient, eventName, props)
	}
}

// routeEventName turns "/api/v1/reports/performance" into "api_v1_reports_performance".
// Unmatched routes have an empty full path and yield "".
func routeEventName(fullPath string) string {
	return strings.ReplaceAll(strings.TrimPrefix(fullPath, "/"), "/", "_")
}

func reportParams(c *gin.Context) map[string]string {
	query := c.Request.URL.Query()
	params := make(map[string]string, len(query))
	for key := range query {
		if !untrackedParams[key] {
			params[key] = query.Get(key)
		}
	}
	return params
}

// PosthogEvent sends a custom event attributed to the request's report subject.
// Requests without a subject are not tracked.
func PosthogEvent(c *gin.Context, posthogClient *utils.PosthogClientWrapper, eventName string, properties map[string]any) {
	if !posthogClient.IsInitialized() {
		return
	}
	subject, ok := SubjectFromContext(c.Request.Context())
	if !ok {
		return
	}

	if properties == nil {
		properties = make(map[string]any)
	}
	properties["method"] = c.Request.Method
	properties["path"] = c.Request.URL.Path
	posthogClient.Enqueue(subject, eventName, properties)
}
