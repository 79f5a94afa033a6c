package main

import (
	"github.com/gildedcart/shop/internal/app"
	"github.com/gildedcart/shop/internal/config"
)

func main() {
	config.MustInit()
	app.MustNewApp().Run()
}
