package apis

import (
	"crypto/subtle"
	"errors"
	"net"
	"net/http"

	"go.uber.org/zap"
)

type HTTPCredentials struct {
	Username string
	Password string
}

func (c HTTPCredentials) enabled() bool {
	return c.Username != "" && c.Password != ""
}

func requireAuth(next http.Handler, credentials HTTPCredentials) http.Handler {
	if !credentials.enabled() {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok ||
			subtle.ConstantTimeCompare([]byte(user), []byte(credentials.Username)) != 1 ||
			subtle.ConstantTimeCompare([]byte(pass), []byte(credentials.Password)) != 1 {
			w.Header().Set("WWW-Authenticate", `Basic realm="raspbot"`)
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// NewHandler routes /ws to the console and /events to the telemetry stream.
func NewHandler(console *Console, telemetry *Telemetry, credentials HTTPCredentials) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/ws", console)
	mux.Handle("/events", telemetry.Handler())
	return requireAuth(mux, credentials)
}

// Serve listens on addr and serves h in the background. Listen errors are
// returned; later serve errors are logged.
func Serve(addr string, h http.Handler, logger *zap.SugaredLogger) (*http.Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	srv := &http.Server{Handler: h}
	logger.Infof("console listening on %s", ln.Addr())
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf("console server exited: %v", err)
		}
	}()
	return srv, nil
}
