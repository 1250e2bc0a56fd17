package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ChContactAdmitted   = make(chan int, 100)
	ChContactRejected   = make(chan int, 100)
	ChRateLimitFailOpen = make(chan int, 100)
	ChEmailSent         = make(chan int, 100)
	ChEmailFailed       = make(chan int, 100)
	ChProjectWrites     = make(chan int, 50)
)

// Defined application metrics to track
var (
	contactAdmitted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "ivmfolio",
		Subsystem: "contact",
		Name:      "ivmfolio_contact_admitted_total",
		Help:      "The total number of contact submissions admitted by the rate limiter",
	})

	contactRejected = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "ivmfolio",
		Subsystem: "contact",
		Name:      "ivmfolio_contact_rejected_total",
		Help:      "The total number of contact submissions rejected by the rate limiter",
	})

	ratelimitFailOpen = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "ivmfolio",
		Subsystem: "contact",
		Name:      "ivmfolio_ratelimit_failopen_total",
		Help:      "The total number of requests admitted because the rate limit store was unreachable",
	})

	emailsSent = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "ivmfolio",
		Subsystem: "mail",
		Name:      "ivmfolio_emails_sent_total",
		Help:      "The total number of contact notifications delivered by the mail provider",
	})

	emailsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "ivmfolio",
		Subsystem: "mail",
		Name:      "ivmfolio_emails_failed_total",
		Help:      "The total number of contact notifications the mail provider failed to deliver",
	})

	projectWrites = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "ivmfolio",
		Subsystem: "admin",
		Name:      "ivmfolio_project_writes_total",
		Help:      "The total number of project create/update/delete operations",
	})
)
