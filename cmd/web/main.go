// @title           RinaWarp Terminal Pro API
// @version         1.0
// @description     Paywall-сервер: аутентификация, лицензии, планы и оплата.
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:4000
// @BasePath        /

package main

import "rinawarp_backend/internal/app"

func main() {
	app.Run()
}
