package main

import (
	"log"

	corecmd "capturnbot/core/cmd"
	"capturnbot/internal/bot"
)

func main() {
	err := corecmd.Run(corecmd.Options{
		DefaultConfigPath: "config.yaml",
		LoadConfig:        bot.LoadConfig,
		Bootstrap:         bot.Bootstrap,
	})
	if err != nil {
		log.Fatalf("capturnbot: %v", err)
	}
}
