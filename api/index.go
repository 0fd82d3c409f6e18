package handler

import (
	"net/http"

	"github.com/ComfortN/restaurent-cms/config"
	"github.com/ComfortN/restaurent-cms/di"
	"github.com/ComfortN/restaurent-cms/shared/logger"
)

func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	handler := di.InitializeService()
	handler.ServeHTTP(w, r)
}
