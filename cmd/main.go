package main

import (
	"github.com/flehn/flutter-edanos-sub001/config"
	"github.com/flehn/flutter-edanos-sub001/logger"
	"github.com/flehn/flutter-edanos-sub001/routes"
	"github.com/flehn/flutter-edanos-sub001/utils"
)

func main() {
	logger.InitializeLogger()
	defer logger.Close()

	config.InitDB()
	utils.InitS3()
	r := routes.SetupRouter()
	logger.Info("food details API listening on :8080")
	r.Run(":8080")
}
