package main

import (
	"github.com/ComfortN/restaurent-cms/config"
	"github.com/ComfortN/restaurent-cms/di"
	"github.com/ComfortN/restaurent-cms/shared/logger"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	http := di.InitializeService()
	http.Serve()
}
