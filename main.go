package main

import (
	"github.com/rs/zerolog/log"

	"github.com/lthummus/elapsed/internal/ainit"
	"github.com/lthummus/elapsed/internal/cmd"
)

func main() {
	log.Debug().Bool("loaded", ainit.Loaded()).Msg("initializing")
	cmd.Execute()
}
