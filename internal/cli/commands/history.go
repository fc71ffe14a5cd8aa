package commands

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/urfave/cli/v2"

	"github.com/jrnhq/jrn/internal/api"
)

// NewHistoryCommand creates the 'history' command.
func NewHistoryCommand() *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Show or clear the chat history",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "clear", Usage: "Wipe the whole chat history"},
			&cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "Skip confirmation"},
		},
		Action: func(c *cli.Context) error {
			client := api.NewClient()

			if c.Bool("clear") {
				if !c.Bool("yes") {
					confirmed := false
					prompt := &survey.Confirm{Message: "Clear the entire chat history?"}
					if err := survey.AskOne(prompt, &confirmed); err != nil {
						return err
					}
					if !confirmed {
						fmt.Println("Cancelled")
						return nil
					}
				}
				if err := client.ClearHistory(); err != nil {
					return err
				}
				fmt.Println("🧹 Chat history cleared")
				return nil
			}

			messages, err := client.History()
			if err != nil {
				return err
			}
			if len(messages) == 0 {
				fmt.Println("No chat history yet. Start with: jrn chat \"hello\"")
				return nil
			}

			for _, m := range messages {
				if m.Role == "ai" {
					fmt.Printf("%s %s\n", replyStyle.Render("JRN:"), m.Content)
				} else {
					fmt.Printf("you: %s\n", m.Content)
				}
			}
			return nil
		},
	}
}
