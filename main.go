package main

import "mgMessenger/cmd/app"

// @title                       MG Messenger API
// @version                     1.0
// @description                 Messaging backend with realtime events and call signaling.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	app.GetApp().LetsGo()
}
