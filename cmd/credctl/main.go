package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/dmitrijs2005/credbridge/internal/client/cli"
	"github.com/dmitrijs2005/credbridge/internal/client/client"
	"github.com/dmitrijs2005/credbridge/internal/client/config"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, args, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	c, err := client.NewGRPCClient(cfg.ServerEndpointAddr, cfg.AccessToken)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer c.Close()

	app := cli.NewApp(c, http.DefaultClient, os.Stdin, os.Stdout, os.Stderr, cfg.Timeout)
	if err := app.Run(context.Background(), args); err != nil {
		if errors.Is(err, cli.ErrUsage) {
			return 2
		}
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
