package main

import (
	"log"

	"github.com/glennakiN/Buynoculars-sub000/bot"
	corecmd "github.com/glennakiN/Buynoculars-sub000/core/cmd"
)

func main() {
	err := corecmd.Run(corecmd.Options{
		DefaultConfigPath: "config.yaml",
		LoadConfig: func(path string) (corecmd.ConfigCarrier, error) {
			return bot.Load(path)
		},
		Bootstrap: func(cfg corecmd.ConfigCarrier) (corecmd.TelegramApp, error) {
			appCfg, ok := cfg.(*bot.Config)
			if !ok {
				log.Fatal("unexpected config type")
			}
			return bot.New(appCfg)
		},
	})
	if err != nil {
		log.Fatal(err)
	}
}
