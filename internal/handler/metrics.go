package handler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	registrationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "abyss_registrations_total",
		Help: "Total number of successful user registrations.",
	})

	loginsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "abyss_logins_total",
		Help: "Total number of successful logins.",
	})

	contactMessagesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "abyss_contact_messages_total",
		Help: "Total number of accepted contact form submissions.",
	})

	authChecksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "abyss_auth_checks_total",
			Help: "Total number of bearer token authorization checks by status.",
		},
		[]string{"status"},
	)
)
