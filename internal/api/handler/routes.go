package handler

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/itmo-rating-bot/internal/api/handler/router"
	"github.com/vfg2006/itmo-rating-bot/internal/notifier"
	"github.com/vfg2006/itmo-rating-bot/internal/usecases/polling"
	"github.com/vfg2006/itmo-rating-bot/internal/usecases/subscription"
	"github.com/vfg2006/itmo-rating-bot/pkg/middleware"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var adminOnly = []func(http.Handler) http.Handler{middleware.AdminOnly()}

func Healthcheck(db Pinger) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(db),
		},
	}
}

func Metrics(metricsHandler http.Handler) []router.Route {
	return []router.Route{
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: metricsHandler,
		},
	}
}

func Rating(poller polling.Poller, subscriptions subscription.Manager) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/rating/latest",
			Method:      http.MethodGet,
			Handler:     GetLatestRating(poller),
			Middlewares: adminOnly,
		},
		{
			Path:        "/v1/rating/stats",
			Method:      http.MethodGet,
			Handler:     GetStats(subscriptions),
			Middlewares: adminOnly,
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: adminOnly,
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: adminOnly,
		},
	}
}

func Broadcast(broadcaster notifier.Broadcaster) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/broadcast",
			Method:      http.MethodPost,
			Handler:     SendBroadcast(broadcaster),
			Middlewares: adminOnly,
		},
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
