package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi"
	log "github.com/sirupsen/logrus"

	"github.com/dasiyes/ivmfolio/internal/portfolio"
	"github.com/dasiyes/ivmfolio/internal/ratelimit"
	"github.com/dasiyes/ivmfolio/tools"
)

type ApiHandler struct {
	Projects portfolio.ProjectRepo
	Images   portfolio.ImageStore
	Mail     portfolio.Mailer
	Limiter  *ratelimit.Limiter
	// Admin gates the catalogue write endpoints. Supplied by the router so
	// this package stays free of the identity provider SDK.
	Admin func(http.Handler) http.Handler
	Lgr   *log.Logger
}

func (ah *ApiHandler) Router() chi.Router {
	rtr := chi.NewRouter()

	if ah.Lgr == nil {
		ah.Lgr = log.New()
	}

	rtr.Route("/", func(r chi.Router) {
		r.Get("/", ah.welcome)
		r.Post("/contact", ah.contact)
		r.Get("/ipcount", ah.ipcount)

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", ah.listProjects)
			r.Get("/{id}", ah.getProject)

			r.Group(func(r chi.Router) {
				if ah.Admin != nil {
					r.Use(ah.Admin)
				}
				r.Post("/", ah.createProject)
				r.Put("/{id}", ah.updateProject)
				r.Delete("/{id}", ah.deleteProject)
			})
		})
	})

	return rtr
}

func (ah *ApiHandler) welcome(w http.ResponseWriter, r *http.Request) {
	_, _ = w.Write([]byte("{\"success\":\"Welcome to ivmfolio api\"}"))
}

func (ah *ApiHandler) ipcount(w http.ResponseWriter, r *http.Request) {
	ipcount := tools.IPCount.Len()
	ip, max := tools.IPCount.TopIP()
	_, _ = w.Write([]byte(fmt.Sprintf("{\"Active_IP_Connections\": %v,\"Max_requests_from_[%s]\": %v}", ipcount, ip, max)))
}

func respond(w http.ResponseWriter, code int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}

func respondError(w http.ResponseWriter, code int, msg string) {
	respond(w, code, map[string]string{"error": msg})
}
