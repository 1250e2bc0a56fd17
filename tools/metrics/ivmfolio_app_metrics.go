package metrics

func init() {
	recordAppMetrics()
}

func recordAppMetrics() {

	// Worker for tracking admitted contact submissions
	go func() {
		for range ChContactAdmitted {
			contactAdmitted.Inc()
		}
	}()

	// Worker for tracking rejected contact submissions
	go func() {
		for range ChContactRejected {
			contactRejected.Inc()
		}
	}()

	// Worker for tracking fail-open events. A growing counter here means the
	// limiter is silently disabled by record store outages.
	go func() {
		for range ChRateLimitFailOpen {
			ratelimitFailOpen.Inc()
		}
	}()

	// Worker for tracking delivered notifications
	go func() {
		for range ChEmailSent {
			emailsSent.Inc()
		}
	}()

	// Worker for tracking failed notification deliveries
	go func() {
		for range ChEmailFailed {
			emailsFailed.Inc()
		}
	}()

	// Worker for tracking admin catalogue writes
	go func() {
		for range ChProjectWrites {
			projectWrites.Inc()
		}
	}()
}
