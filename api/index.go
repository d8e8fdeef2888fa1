package handler

import (
	"net/http"
	"salon/config"
	"salon/di"
	"salon/shared/logger"
	"sync"

	"github.com/rs/zerolog/log"
)

var (
	once    sync.Once
	handler http.Handler
)

// Handler serves the API as a single serverless function, building the graph on the first call.
func Handler(w http.ResponseWriter, r *http.Request) {
	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger(cfg)

		logger.SetLogLevel(cfg)

		server, _, err := di.InitializeService()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize service")
		}

		handler = server.Handler()
	})

	r.RequestURI = r.URL.String()

	handler.ServeHTTP(w, r)
}
