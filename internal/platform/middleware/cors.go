// Copyright (c) 2026 SnapDuel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/taibuivan/snapduel/internal/platform/constants"
)

// AppConfig is the slice of configuration CORS needs.
type AppConfig interface {
	IsDevelopment() bool
	OriginSuffix() string
}

const (
	corsAllowMethods  = "GET, POST, PATCH, DELETE, OPTIONS"
	corsAllowHeaders  = "Accept, Authorization, Content-Type, X-Request-ID"
	corsExposeHeaders = "Retry-After, X-Request-ID"
)

/*
CORS answers cross-origin requests from the web client.

Development allows any origin. Otherwise the origin host must equal the
configured suffix or be a subdomain of it, so "app.snapduel.app" passes and
"evilsnapduel.app" does not.
*/
func CORS(cfg AppConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			origin := request.Header.Get(constants.HeaderOrigin)
			if origin == "" {
				next.ServeHTTP(writer, request)
				return
			}

			header := writer.Header()
			header.Add("Vary", constants.HeaderOrigin)

			if cfg.IsDevelopment() || originAllowed(origin, cfg.OriginSuffix()) {
				header.Set("Access-Control-Allow-Origin", origin)
				header.Set("Access-Control-Allow-Methods", corsAllowMethods)
				header.Set("Access-Control-Allow-Headers", corsAllowHeaders)
				header.Set("Access-Control-Expose-Headers", corsExposeHeaders)
				header.Set("Access-Control-Allow-Credentials", "true")
				header.Set("Access-Control-Max-Age", "600")
			}

			if request.Method == http.MethodOptions && request.Header.Get("Access-Control-Request-Method") != "" {
				writer.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

func originAllowed(origin, suffix string) bool {
	parsed, err := url.Parse(origin)
	if err != nil || parsed.Hostname() == "" || suffix == "" {
		return false
	}

	host := strings.ToLower(parsed.Hostname())
	suffix = strings.ToLower(strings.TrimPrefix(suffix, "."))
	return host == suffix || strings.HasSuffix(host, "."+suffix)
}
