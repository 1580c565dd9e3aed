package config

import (
	"log/slog"

	"github.com/corray333/lunchify/order/pkg/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func MustInit() {
	if err := godotenv.Load("./.env"); err != nil {
		panic("error while loading .env file: " + err.Error())
	}
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("/etc/order-svc")
	viper.AddConfigPath(".")
	if err := viper.ReadInConfig(); err != nil {
		panic("error while reading config file: " + err.Error())
	}
	setDefaults()
	SetupLogger()
}

func setDefaults() {
	viper.SetDefault("server.http.port", "8080")
	viper.SetDefault("server.http.max_page_size", 100)
	viper.SetDefault("cache.order_ttl", "3600s")
	viper.SetDefault("rabbitmq.outbox.poll_interval_seconds", 5)
	viper.SetDefault("rabbitmq.outbox.batch_size", 50)
	viper.SetDefault("rabbitmq.outbox.retry_interval_seconds", 30)
}

func SetupLogger() {
	handler := logger.NewHandler(nil)
	log := slog.New(handler)
	slog.SetDefault(log)
}
