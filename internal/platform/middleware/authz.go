// Copyright (c) 2026 SnapDuel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/taibuivan/snapduel/internal/platform/apperr"
	"github.com/taibuivan/snapduel/internal/platform/constants"
	"github.com/taibuivan/snapduel/internal/platform/ctxutil"
	"github.com/taibuivan/snapduel/internal/platform/respond"
	"github.com/taibuivan/snapduel/internal/platform/sec"
)

// TokenVerifier checks a bearer token and returns its claims.
type TokenVerifier interface {
	VerifyToken(token string) (*sec.AuthClaims, error)
}

/*
Authenticate resolves the optional viewer identity.

A request without an Authorization header continues as anonymous; battles,
decks and access resolution all serve free content to anonymous viewers. A
header that is present but malformed or expired is rejected with 401 rather
than silently downgraded, so clients notice stale tokens.

On success the claims and a logger tagged with user_id are placed on the
context.
*/
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			header := request.Header.Get(constants.HeaderAuthorization)
			if header == "" {
				next.ServeHTTP(writer, request)
				return
			}

			token, ok := bearerToken(header)
			if !ok {
				respond.Error(writer, request, apperr.Unauthorized("Invalid authorization format"))
				return
			}

			claims, err := verifier.VerifyToken(token)
			if err != nil {
				respond.Error(writer, request, apperr.Unauthorized("Invalid or expired token"))
				return
			}

			ctx := ctxutil.WithAuthUser(request.Context(), claims)
			ctx = ctxutil.WithLogger(ctx, ctxutil.GetLogger(ctx).With(slog.String("user_id", claims.UserID)))
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// bearerToken extracts the token from "Bearer <token>", scheme case-insensitive.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != "" && !strings.ContainsRune(token, ' ')
}

// RequireAuth rejects anonymous requests. Mount after [Authenticate].
func RequireAuth(next http.Handler) http.Handler {
	return RequireRole(sec.RoleMember)(next)
}

// RequireRole rejects anonymous requests with 401 and viewers below role
// with 403.
func RequireRole(role sec.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			claims := ctxutil.GetAuthUser(request.Context())

			switch {
			case claims == nil || claims.UserID == "":
				respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			case !sec.UserRole(claims.Role).AtLeast(role):
				respond.Error(writer, request, apperr.Forbidden("Insufficient permissions"))
			default:
				next.ServeHTTP(writer, request)
			}
		})
	}
}

// BanChecker reports whether an account is banned.
type BanChecker interface {
	IsBanned(context context.Context, userID string) (bool, error)
}

/*
BlockBanned refuses writes from banned members with 403. Reads and anonymous
requests pass through untouched. A failed lookup fails closed with 503.
Mount after [Authenticate].
*/
func BlockBanned(checker BanChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			claims := ctxutil.GetAuthUser(request.Context())
			if claims == nil || claims.UserID == "" || isReadOnly(request.Method) {
				next.ServeHTTP(writer, request)
				return
			}

			banned, err := checker.IsBanned(request.Context(), claims.UserID)
			switch {
			case err != nil:
				respond.Error(writer, request, apperr.Upstream(err))
			case banned:
				respond.Error(writer, request, apperr.Forbidden("Account is banned"))
			default:
				next.ServeHTTP(writer, request)
			}
		})
	}
}

func isReadOnly(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}
