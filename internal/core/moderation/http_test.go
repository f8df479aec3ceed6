// Copyright (c) 2026 SnapDuel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package moderation_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/snapduel/internal/core/moderation"
	"github.com/taibuivan/snapduel/internal/core/photo"
	"github.com/taibuivan/snapduel/internal/platform/ctxutil"
	"github.com/taibuivan/snapduel/internal/platform/sec"
)

func serve(handler *moderation.Handler, claims *sec.AuthClaims, method, target, body string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, target, strings.NewReader(body))
	if claims != nil {
		request = request.WithContext(ctxutil.WithAuthUser(request.Context(), claims))
	}
	recorder := httptest.NewRecorder()
	handler.Routes().ServeHTTP(recorder, request)
	return recorder
}

/*
TestHandler_RoleGating lets members file reports and only moderators work the
queue.
*/
func TestHandler_RoleGating(t *testing.T) {
	member := &sec.AuthClaims{UserID: reporterID, Role: string(sec.RoleMember)}
	moderator := &sec.AuthClaims{UserID: moderatorID, Role: string(sec.RoleModerator)}

	tests := []struct {
		name       string
		claims     *sec.AuthClaims
		method     string
		target     string
		body       string
		wantStatus int
	}{
		{"file_anonymous", nil, http.MethodPost, "/", `{"photo_id":"` + photoA + `","reason":"spam"}`, http.StatusUnauthorized},
		{"file_member", member, http.MethodPost, "/", `{"photo_id":"` + photoA + `","reason":"spam"}`, http.StatusCreated},
		{"file_unknown_photo", member, http.MethodPost, "/", `{"photo_id":"` + unknownID + `","reason":"spam"}`, http.StatusNotFound},
		{"list_member", member, http.MethodGet, "/", "", http.StatusForbidden},
		{"list_moderator", moderator, http.MethodGet, "/?status=pending", "", http.StatusOK},
		{"resolve_member", member, http.MethodPost, "/" + unknownID + "/resolve", `{"outcome":"resolved"}`, http.StatusForbidden},
		{"resolve_unknown", moderator, http.MethodPost, "/" + unknownID + "/resolve", `{"outcome":"resolved"}`, http.StatusNotFound},
		{"resolve_bad_outcome", moderator, http.MethodPost, "/" + unknownID + "/resolve", `{"outcome":"maybe"}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := newService(newMemoryReports(), &photoStatuses{status: map[string]photo.Status{}})

			recorder := serve(moderation.NewHandler(service), tt.claims, tt.method, tt.target, tt.body)

			assert.Equal(t, tt.wantStatus, recorder.Code, recorder.Body.String())
		})
	}
}
