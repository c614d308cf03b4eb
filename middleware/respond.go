package middleware

import (
	"encoding/json"
	"net/http"
)

// errorJSON writes the centralized error body. All pipeline failures funnel
// through here so handlers never render partial pages on error.
func errorJSON(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// RedirectBack sends the browser to the page it came from, or to fallback
// when the Referer header is absent.
func RedirectBack(w http.ResponseWriter, r *http.Request, fallback string) {
	target := r.Header.Get("Referer")
	if target == "" {
		target = fallback
	}
	http.Redirect(w, r, target, http.StatusFound)
}
