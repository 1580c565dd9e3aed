package main

import (
	"github.com/corray333/lunchify/order/internal/app"
	"github.com/corray333/lunchify/order/internal/config"
)

func main() {
	config.MustInit()
	app.MustNewApp().Run()
}
