package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"sort"
	"strings"

	"github.com/MrSnakeDoc/linkbridge/internal/httpserver/deps"
	"github.com/MrSnakeDoc/linkbridge/internal/logger"
)

// notFoundPage mimics the page of the Python reference WSGI server, which
// Shaarli clients already tolerate.
const notFoundPage = `<!DOCTYPE HTML PUBLIC "-//IETF//DTD HTML 2.0//EN">
<html><head>
<title>404 Not Found</title>
</head><body>
<h1>Not Found</h1>
<p>The requested URL /??????? was not found on this server.</p>
</body></html>`

var redactedHeaders = map[string]bool{
	"Authorization":       true,
	"Proxy-Authorization": true,
	"Cookie":              true,
}

// Unsupported answers every request no route claims, according to
// AlwaysReturn404, after logging what the client sent.
func Unsupported(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logUnsupported(d.Logger, r)

		if d.AlwaysReturn404 {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, notFoundPage)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}

// logUnsupported dumps the request for later support of new client calls.
// Failures only degrade the log entry.
func logUnsupported(log logger.Logger, r *http.Request) {
	fields := []logger.Field{
		logger.String("method", r.Method),
		logger.String("path", r.URL.Path),
		logger.String("query", r.URL.RawQuery),
		logger.Any("query_values", r.URL.Query()),
		logger.String("content_type", r.Header.Get("Content-Type")),
		logger.Strings("headers", headerLines(r.Header)),
	}

	if body, err := readBody(r); err != nil {
		fields = append(fields, logger.String("body_error", err.Error()))
	} else if len(body) > 0 {
		fields = append(fields, logger.String("body", string(body)))
		if isJSON(r.Header.Get("Content-Type")) {
			var pretty bytes.Buffer
			if err := json.Indent(&pretty, body, "", "    "); err == nil {
				fields = append(fields, logger.String("json_body", pretty.String()))
			} else {
				fields = append(fields, logger.String("json_error", err.Error()))
			}
		}
	}

	log.Warn("unsupported request", fields...)
}

// headerLines renders headers as sorted "Name: value" lines, secrets redacted.
func headerLines(h http.Header) []string {
	lines := make([]string, 0, len(h))
	for name, values := range h {
		value := strings.Join(values, ", ")
		if redactedHeaders[http.CanonicalHeaderKey(name)] {
			value = "***REDACTED***"
		}
		lines = append(lines, name+": "+value)
	}
	sort.Strings(lines)
	return lines
}

func isJSON(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	return err == nil && mediaType == "application/json"
}
