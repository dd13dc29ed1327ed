package middleware

import (
	"log"
	"net/http"

	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-Id"

func BasicLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Printf("[%s][%s]%s from [Host:%s | IP:%s]\n", r.Header.Get(RequestIDHeader), r.Method, r.RequestURI, r.Host, r.RemoteAddr)
		next.ServeHTTP(w, r)
	})
}

// RequestID tags every request with an id, keeping one supplied by the
// caller, and echoes it back in the response.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
			r.Header.Set(RequestIDHeader, id)
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}
