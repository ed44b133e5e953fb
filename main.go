package main

import (
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type CLI struct {
	Debug bool `help:"enable debug logging"`
	JSON  bool `help:"log structured JSON instead of console output"`

	Search SearchCmd `cmd:"" help:"choose the protagonist's action on a scenario tree"`
	Play   PlayCmd   `cmd:"" help:"play a scenario tree against adversary policies"`
	Bench  BenchCmd  `cmd:"" help:"compare the searchers on random game trees"`
	Evals  EvalsCmd  `cmd:"" help:"list the registered evaluation functions"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("multiagent"),
		kong.Description("Adversarial game-tree search for turn-based multi-agent games"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)

	setupLogger(cli.Debug, cli.JSON)

	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

func setupLogger(debug, structured bool) {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	if structured {
		zerolog.TimeFieldFormat = time.RFC3339Nano
		log.Logger = zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
		return
	}
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level)
}
