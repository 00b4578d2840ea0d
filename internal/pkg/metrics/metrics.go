// Package metrics defines and registers all custom Prometheus metrics for the
// task API. It is the single source of truth for metric names, labels, and
// help strings.
//
// Metrics are registered with the default Prometheus registry on import via
// promauto; the HTTP layer exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "taskman"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthLoginsTotal counts login attempts.
// Label:
//   - result: "success", "unknown_user" or "wrong_password"
var AuthLoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// AuthSignupsTotal counts signup attempts.
// Label:
//   - result: "created" or "duplicate"
var AuthSignupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_signups_total",
		Help:      "Total number of signup attempts, by result.",
	},
	[]string{"result"},
)

// ── Task metrics ──────────────────────────────────────────────────────────────

// TasksCreatedTotal counts tasks that passed the assignment policy and were stored.
var TasksCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tasks_created_total",
		Help:      "Total number of tasks created.",
	},
)

// TaskRejectionsTotal counts task creations refused by the assignment policy.
// Label:
//   - reason: "assignee_not_found" or "insufficient_grade"
var TaskRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "task_rejections_total",
		Help:      "Total number of task creations rejected by the assignment policy.",
	},
	[]string{"reason"},
)

// CandidateSelectionsTotal counts candidate lookups.
// Label:
//   - result: "selected" or "none_eligible"
var CandidateSelectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "candidate_selections_total",
		Help:      "Total number of candidate selections, by result.",
	},
	[]string{"result"},
)

// ── Day-off lookup metrics ────────────────────────────────────────────────────

// DayOffLookupsTotal counts day-off lookups.
// Label:
//   - result: "hit" (served from cache), "miss" (fetched upstream) or "error"
var DayOffLookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "dayoff_lookups_total",
		Help:      "Total number of day-off lookups, labelled by result (hit/miss/error).",
	},
	[]string{"result"},
)

// DayOffRequestDuration measures calls to the external day-off service.
var DayOffRequestDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "dayoff_request_duration_seconds",
		Help:      "Duration of requests to the external day-off service.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
)
