package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/rpgkeeper/internal/flagx"
)

func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-s", "-t", "-i", "-r"})

	fs := flag.NewFlagSet("cli", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.ServerEndpointAddr, "a", config.ServerEndpointAddr, "address and port of the server")
	fs.StringVar(&config.SessionDBPath, "s", config.SessionDBPath, "session database path")
	fs.StringVar(&config.Token, "t", config.Token, "access token")
	interval := fs.Int("i", int(config.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	timeout := fs.Int("r", int(config.RequestTimeout.Seconds()), "request timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "i":
			config.OnlineCheckInterval = time.Duration(*interval) * time.Second
		case "r":
			config.RequestTimeout = time.Duration(*timeout) * time.Second
		}
	})
	return nil
}
