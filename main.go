package main

import (
	_ "github.com/ithaka/backoffice_mid/routers"

	internalservices "github.com/ithaka/backoffice_mid/internal/services"
	rootservices "github.com/ithaka/backoffice_mid/services"

	beego "github.com/beego/beego/v2/server/web"
	cors "github.com/beego/beego/v2/server/web/filter/cors"
)

func main() {
	cfg := rootservices.GetConfig()

	beego.InsertFilter("*", beego.BeforeRouter, cors.Allow(&cors.Options{
		AllowOrigins:     []string{cfg.AllowedOrigin}, //orígenes permitidos
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Requested-With", "X-Sesion-Id", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))
	if beego.BConfig.RunMode == "dev" {
		beego.BConfig.WebConfig.DirectoryIndex = true
		beego.BConfig.WebConfig.StaticDir["/swagger"] = "swagger"
	}

	// Evaluación de sesiones: un tick por segundo mientras el proceso viva.
	manager := internalservices.Sesiones()
	manager.Iniciar()
	defer manager.Detener()

	beego.Run()
}
