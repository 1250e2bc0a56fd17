package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/dasiyes/ivmfolio/internal/mailer"
	"github.com/dasiyes/ivmfolio/internal/portfolio"
	"github.com/dasiyes/ivmfolio/internal/ratelimit"
	"github.com/dasiyes/ivmfolio/tools/metrics"
)

// contact is the rate-limited submission gateway. The order of the steps
// matters: the policy check comes first so a blocked caller learns nothing
// from validation, and the counter moves only after a delivered send so
// neither invalid payloads nor provider failures consume the daily quota.
func (ah *ApiHandler) contact(w http.ResponseWriter, r *http.Request) {

	key := ratelimit.ClientKey(r)

	if d := ah.Limiter.Check(r.Context(), key); d.Limited {
		metrics.ChContactRejected <- 1
		w.Header().Set("Retry-After", strconv.Itoa(d.RetryAfter))
		respond(w, http.StatusTooManyRequests, map[string]interface{}{
			"error":      "Rate limit exceeded. You can only send one message per day.",
			"retryAfter": d.RetryAfter,
		})
		return
	}

	var sub portfolio.Submission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		respondError(w, http.StatusBadRequest, "All fields are required")
		return
	}

	if err := sub.Validate(); err != nil {
		switch {
		case errors.Is(err, portfolio.ErrInvalidEmail):
			respondError(w, http.StatusBadRequest, "Invalid email address")
		default:
			respondError(w, http.StatusBadRequest, "All fields are required")
		}
		return
	}

	id, err := ah.Mail.Send(r.Context(), &sub)
	if err != nil {
		metrics.ChEmailFailed <- 1
		ah.Lgr.Errorf("contact dispatch failed for key %q. error: %v", key, err)
		if errors.Is(err, mailer.ErrProvider) {
			respondError(w, http.StatusInternalServerError, "Email service error")
		} else {
			respondError(w, http.StatusInternalServerError, "Failed to send email")
		}
		return
	}

	ah.Limiter.Consume(r.Context(), key)
	metrics.ChContactAdmitted <- 1
	metrics.ChEmailSent <- 1

	respond(w, http.StatusOK, map[string]interface{}{
		"message": "Email sent successfully",
		"details": map[string]string{"notificationId": id},
	})
}
