// Copyright (c) 2025 AgentPlane Organization
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/agentplane/agentplane/cmd/server/bootstrap"
)

func main() {
	app := &cli.App{
		Name:  "AgentPlane server",
		Usage: "start the AgentPlane control-plane server",
		Action: func(c *cli.Context) error {
			bootstrap.StartAgentPlaneServerCli(c)
			return nil
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  bootstrap.FlagConfig,
				Value: "./config/development.yaml",
				Usage: "the config to start AgentPlane server",
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
