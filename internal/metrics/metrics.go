// Package metrics holds the Prometheus instruments of the tile server.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "quotetiles"

// Validation outcomes.
const (
	OutcomeCorrect   = "correct"
	OutcomeIncorrect = "incorrect"
	OutcomeExhausted = "exhausted" // wrong answer that used the last guess
	OutcomeLocked    = "locked"    // session was already finished
)

var (
	// puzzlesServed counts /tiles answers.
	// Labels: state (new, active, solved, exhausted)
	puzzlesServed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "puzzles_served_total",
		Help:      "Puzzle requests answered, by session state",
	}, []string{"state"})

	// validations counts /validate answers.
	// Labels: outcome (correct, incorrect, exhausted, locked)
	validations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "validations_total",
		Help:      "Submissions validated, by outcome",
	}, []string{"outcome"})

	// storeErrors counts failed session store calls.
	// Labels: op (get, create, increment, scan, purge)
	storeErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "store_errors_total",
		Help:      "Session store failures, by operation",
	}, []string{"op"})
)

// PuzzleServed records a puzzle answer for a session in state.
func PuzzleServed(state string) { puzzlesServed.WithLabelValues(state).Inc() }

// Validated records a validation outcome.
func Validated(outcome string) { validations.WithLabelValues(outcome).Inc() }

// StoreError records a failed store operation.
func StoreError(op string) { storeErrors.WithLabelValues(op).Inc() }

// Handler exposes the default registry.
func Handler() http.Handler { return promhttp.Handler() }
