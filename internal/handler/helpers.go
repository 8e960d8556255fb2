package handler

import (
	"net/http"

	"liteboard/internal/httputil"
)

// requireUser returns the session user, answering 401 when there is none.
// The session middleware normally guarantees one.
func requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := httputil.GetUserID(r)
	if userID == "" {
		httputil.RespondError(w, http.StatusUnauthorized, "not logged in")
		return "", false
	}
	return userID, true
}

// requirePathID parses the {id} path segment, answering 400 when it is not a positive integer
func requirePathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := httputil.PathID(r)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return 0, false
	}
	return id, true
}

// decode parses the JSON body, answering 400 on failure
func decode(w http.ResponseWriter, r *http.Request, dest any) bool {
	if err := httputil.ParseJSON(w, r, dest); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
