/*
MIT License

# Copyright (c) 2023 ivmanto

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.
*/

package router

import (
	"net/http"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/dasiyes/ivmfolio/api"
	"github.com/dasiyes/ivmfolio/configs/config"
	"github.com/dasiyes/ivmfolio/internal/portfolio"
	"github.com/dasiyes/ivmfolio/internal/ratelimit"
)

var l = log.New()

// Constructing web application dependencies in the format of handler
type srvHandler struct {
	projects portfolio.ProjectRepo
	images   portfolio.ImageStore
	mail     portfolio.Mailer
	limiter  *ratelimit.Limiter
	verifier TokenVerifier
	cfg      *config.ServiceConfig
}

func (h *srvHandler) router() chi.Router {

	rtr := chi.NewRouter()

	// Building middleware chain
	rtr.Use(accessControl)
	rtr.Use(healthcheck)
	rtr.Use(controlIPConn(h.cfg.GetMaxConnsPerIP()))

	// Handle Prometheus metrics
	rtr.Handle("/metrics", promhttp.Handler())

	// Route the API calls to /api/ ...
	rtr.Route("/api", func(r chi.Router) {
		ah := api.ApiHandler{
			Projects: h.projects,
			Images:   h.images,
			Mail:     h.mail,
			Limiter:  h.limiter,
			Admin:    adminOnly(h.verifier, h.cfg, l),
			Lgr:      l,
		}
		r.Mount("/", ah.Router())
	})

	return rtr
}

// Handler to manage endpoints
func NewHandler(
	projects portfolio.ProjectRepo,
	images portfolio.ImageStore,
	mail portfolio.Mailer,
	limiter *ratelimit.Limiter,
	verifier TokenVerifier,
	cfg *config.ServiceConfig,
) http.Handler {

	e := srvHandler{
		projects: projects,
		images:   images,
		mail:     mail,
		limiter:  limiter,
		verifier: verifier,
		cfg:      cfg,
	}
	l.Printf("...initializing router (http server Handler) ...")

	return e.router()
}
