package main

import (
	"os"

	"github.com/achmadzano/ai-personal-nutritionist/config"
	"github.com/achmadzano/ai-personal-nutritionist/routes"
	"github.com/achmadzano/ai-personal-nutritionist/utils"
)

func main() {
	config.InitDB()
	utils.InitS3()
	utils.InitMailer()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	r := routes.SetupRouter()
	r.Run(":" + port)
}
