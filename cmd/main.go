package main

import (
	"github.com/Shwetank-F/daily-diet-scan/config"
	"github.com/Shwetank-F/daily-diet-scan/routes"
	"github.com/Shwetank-F/daily-diet-scan/utils"
)

func main() {
	config.InitDB()
	utils.InitS3()
	r := routes.SetupRouter()
	r.Run(":8080")
}
