package httpapi

import (
	"net/http"

	"github.com/riskibarqy/league-manager/internal/platform/logging"
)

// RouteInstrumenter wraps a single route handler; route is the mux pattern,
// which keeps metric label cardinality bounded.
type RouteInstrumenter interface {
	InstrumentRoute(route string, next http.Handler) http.Handler
}

func NewRouter(
	handler *Handler,
	verifier TokenVerifier,
	logger *logging.Logger,
	corsAllowedOrigins []string,
	instrumenter RouteInstrumenter,
) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	rt := routes{mux: http.NewServeMux(), instrumenter: instrumenter}
	registerSystemRoutes(rt, handler)
	registerPublicLeagueRoutes(rt, handler)
	registerAuthorizedRoutes(rt, handler, verifier)

	return RequestTracing(RequestLogging(logger, CORS(corsAllowedOrigins, recoverPanic(logger, rt.mux))))
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.recoverPanic")
		defer span.End()

		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(ctx, "panic recovered", "panic", rec)
				writeInternalError(ctx, w)
			}
		}()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
