package router

import (
	"context"
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	log "github.com/sirupsen/logrus"

	"github.com/dasiyes/ivmfolio/configs/config"
)

// TokenVerifier is the slice of the identity provider client the admin gate
// needs. The firebase auth.Client satisfies it.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// adminOnly admits a request only when it carries a bearer ID token whose
// verified claims include the configured admin flag. With auth disabled in
// the config (local runs) the gate is a pass-through.
func adminOnly(verifier TokenVerifier, cfg *config.ServiceConfig, lgr *log.Logger) func(http.Handler) http.Handler {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

			if !cfg.GetAuthEnabled() {
				h.ServeHTTP(w, r)
				return
			}
			if verifier == nil {
				lgr.Error("[MW-adm] auth enabled but no token verifier configured")
				http.Error(w, "{\"error\":\"Unauthorized\"}", http.StatusUnauthorized)
				return
			}

			raw := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			if raw == "" || raw == r.Header.Get("Authorization") {
				http.Error(w, "{\"error\":\"Unauthorized\"}", http.StatusUnauthorized)
				return
			}

			tok, err := verifier.VerifyIDToken(r.Context(), raw)
			if err != nil {
				lgr.Warnf("[MW-adm] id token rejected. error: %v", err)
				http.Error(w, "{\"error\":\"Unauthorized\"}", http.StatusUnauthorized)
				return
			}

			if adm, ok := tok.Claims[cfg.GetAdminClaim()].(bool); !ok || !adm {
				http.Error(w, "{\"error\":\"Forbidden\"}", http.StatusForbidden)
				return
			}

			h.ServeHTTP(w, r)
		})
	}
}
