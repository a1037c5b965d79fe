package main

import (
	"os"

	"github.com/rs/zerolog/log"

	"github.com/credcheck/claimscope/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		log.Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}
