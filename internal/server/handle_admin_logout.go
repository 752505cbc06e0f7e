package server

import (
	"log/slog"
	"net/http"
)

// handleAdminLogout always clears the cookie, even when the session is
// already gone.
func handleAdminLogout(logger *slog.Logger, admin AdminStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cookie, err := r.Cookie(adminCookieName); err == nil && cookie.Value != "" {
			if err := admin.DeleteAdminSession(r.Context(), cookie.Value); err != nil {
				logger.Warn("deleting admin session", "error", err)
			}
		}

		setSessionCookie(w, r, "", -1)
		writeJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
	}
}
