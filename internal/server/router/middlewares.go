package router

import (
	"net"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/dasiyes/ivmfolio/tools"
)

// Handles the CORS part
func accessControl(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.Header().Set("Access-Control-Max-Age", "3600")
			w.WriteHeader(http.StatusNoContent)
			return
		}

		h.ServeHTTP(w, r)
	})
}

// Answers the load-balancer health probes before any other work
func healthcheck(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		if r.URL.Path == "/hc" {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("OK"))
			return
		}
		h.ServeHTTP(w, r)
	})
}

// Handles the per-IP in-flight requests ceiling
func controlIPConn(maxConns int) func(http.Handler) http.Handler {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

			ip := clientIP(r)
			if ip != "" {
				tools.IPCount.Add(ip)
				defer tools.IPCount.Remove(ip)

				if tools.IPCount.IPConns(ip) > maxConns {
					log.Warnf("[MW-ipc] Too many concurrent requests [%d] from %s", tools.IPCount.IPConns(ip), ip)
					http.Error(w, "Bad request", http.StatusForbidden)
					return
				}
			}

			h.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	ip, _, _ := net.SplitHostPort(r.RemoteAddr)
	if ip == "" || ip == "127.0.0.1" {
		ip = r.Header.Get("X-Real-IP")
	}
	return ip
}
