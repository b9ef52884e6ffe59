package httpapi

// maxBodyBytes controls the maximum allowed request body size for JSON endpoints.
var maxBodyBytes int64 = 1 << 20

// SetMaxBodyBytes allows configuring the maximum request body size.
func SetMaxBodyBytes(n int64) {
	if n <= 0 {
		maxBodyBytes = 1 << 20
		return
	}
	maxBodyBytes = n
}

var (
	defaultCORSOrigins = []string{"*"}
	defaultCORSMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	defaultCORSHeaders = []string{"Accept", "Content-Type", "X-Log-Level", "X-Request-Id"}
)

// CORS is on by default since the browser UI may be served from another origin.
var (
	corsEnabled        = true
	corsAllowedOrigins = defaultCORSOrigins
	corsAllowedMethods = defaultCORSMethods
	corsAllowedHeaders = defaultCORSHeaders
)

// SetCORSOptions configures CORS behavior for the HTTP server. Empty lists
// select the defaults.
func SetCORSOptions(enabled bool, origins, methods, headers []string) {
	corsEnabled = enabled
	corsAllowedOrigins = orDefault(origins, defaultCORSOrigins)
	corsAllowedMethods = orDefault(methods, defaultCORSMethods)
	corsAllowedHeaders = orDefault(headers, defaultCORSHeaders)
}

func orDefault(v, def []string) []string {
	if len(v) == 0 {
		return def
	}
	return append([]string(nil), v...)
}
