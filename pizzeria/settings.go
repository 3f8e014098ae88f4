package main

import (
	_ "embed"

	"github.com/taldoflemis/pizza-time/pacchetto"
)

//go:embed base.yaml
var baseConfig []byte

type LiveSettings struct {
	BufferSize            int `mapstructure:"buffer-size" validate:"required,min=1"`
	WriteTimeoutInSeconds int `mapstructure:"write-timeout-in-seconds" validate:"required,min=1"`
}

type Settings struct {
	App           pacchetto.AppSettings           `mapstructure:"app" validate:"required"`
	HTTP          pacchetto.HTTPSettings          `mapstructure:"http" validate:"required"`
	GRPCServer    pacchetto.GRPCServerSettings    `mapstructure:"grpc-server" validate:"required"`
	Nats          pacchetto.NatsSettings          `mapstructure:"nats" validate:"required"`
	OpenTelemetry pacchetto.OpenTelemetrySettings `mapstructure:"opentelemetry" validate:"required"`
	Live          LiveSettings                    `mapstructure:"live" validate:"required"`
}

func LoadConfig() (*Settings, error) {
	return pacchetto.LoadConfig[Settings]("PIZZERIA", baseConfig)
}
