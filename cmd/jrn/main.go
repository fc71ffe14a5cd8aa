package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/jrnhq/jrn/internal/api"
	"github.com/jrnhq/jrn/internal/cli/commands"
	"github.com/jrnhq/jrn/internal/mcp"
)

// Version will be set during build with ldflags
var Version = "1.0.0"

func main() {
	app := &cli.App{
		Name:    "jrn",
		Usage:   "Personal journal with an AI companion",
		Version: Version,
		Commands: []*cli.Command{
			commands.NewLoginCommand(),
			commands.NewLogoutCommand(),
			commands.NewEntryCommand(),
			commands.NewChatCommand(),
			commands.NewHistoryCommand(),

			{
				Name:  "mcp",
				Usage: "Run the MCP server over stdio (for AI agents)",
				Action: func(c *cli.Context) error {
					return mcp.ServeStdio(api.NewClient())
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
