package main

import (
	"context"
	"os"

	log "github.com/sirupsen/logrus"

	cli "github.com/urfave/cli/v3"
)

func main() {
	cmd := &cli.Command{
		Name:                  "operion-ontap",
		Usage:                 "Run NetApp ONTAP workflow nodes from the command line",
		EnableShellCompletion: true,
		Commands: []*cli.Command{
			nodesCommand(),
			runCommand(),
			jobsCommand(),
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
