package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "troopapi", Name: "http_requests_total", Help: "Handled HTTP requests",
	}, []string{"method", "path", "status"})
	HTTPDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "troopapi", Name: "http_request_seconds", Help: "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	})
	UsersInvited = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "troopapi", Name: "users_invited_total", Help: "Accounts provisioned through invites",
	})
	ScoutsDeleted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "troopapi", Name: "scouts_deleted_total", Help: "Scouts fully deprovisioned",
	})
)

func init() {
	prometheus.MustRegister(HTTPRequests, HTTPDuration, UsersInvited, ScoutsDeleted)
}

func Handler() http.Handler { return promhttp.Handler() }

// Collect is the request-counting middleware. The route template is used
// as the path label so ids don't blow up cardinality.
func Collect() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()

		ctx.Next()

		path := ctx.FullPath()
		if path == "" {
			path = "unmatched"
		}

		HTTPRequests.WithLabelValues(ctx.Request.Method, path, strconv.Itoa(ctx.Writer.Status())).Inc()
		HTTPDuration.Observe(time.Since(start).Seconds())
	}
}
