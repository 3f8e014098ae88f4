package main

import (
	_ "embed"

	"github.com/taldoflemis/pizza-time/pacchetto"
)

//go:embed base.yaml
var baseConfig []byte

type Settings struct {
	App        pacchetto.AppSettings        `mapstructure:"app" validate:"required"`
	GRPCClient pacchetto.GRPCClientSettings `mapstructure:"grpc-client" validate:"required"`
	Service    string                       `mapstructure:"service"`
}

func LoadConfig() (*Settings, error) {
	return pacchetto.LoadConfig[Settings]("SONDA", baseConfig)
}
