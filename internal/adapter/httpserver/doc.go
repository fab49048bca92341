// Package httpserver serves the buffer form over HTTP using echo.
//
// Routes: index (GET/POST /), health (/health/live, /health/ready), /version and /metrics.
package httpserver
