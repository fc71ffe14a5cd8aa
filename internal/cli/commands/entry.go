package commands

import (
	"fmt"
	"strconv"

	"github.com/AlecAivazis/survey/v2"
	"github.com/urfave/cli/v2"

	"github.com/jrnhq/jrn/internal/api"
)

// NewEntryCommand creates all subcommands for the 'entry' command group.
func NewEntryCommand() *cli.Command {
	return &cli.Command{
		Name:    "entry",
		Aliases: []string{"e"},
		Usage:   "Manage journal entries",
		Subcommands: []*cli.Command{
			entryListCmd(),
			entryAddCmd(),
			entryEditCmd(),
			entryTrashCmd(),
		},
	}
}

func entryListCmd() *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List recent entries (newest first)",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Aliases: []string{"n"}, Value: 10, Usage: "Page size (max 100)"},
			&cli.IntFlag{Name: "offset", Aliases: []string{"o"}, Value: 0, Usage: "Page offset"},
		},
		Action: func(c *cli.Context) error {
			client := api.NewClient()
			entries, err := client.ListEntries(c.Int("limit"), c.Int("offset"))
			if err != nil {
				return err
			}

			if len(entries) == 0 {
				fmt.Println("No entries yet. Write one with: jrn entry add \"...\"")
				return nil
			}

			for _, e := range entries {
				date := dateStyle.Render(e.CreatedAt.Format("Mon Jan 2 2006"))
				badge := moodBadge(e.Mood)
				if badge != "" {
					badge = " " + badge
				}
				fmt.Printf("#%d %s%s\n   %s\n", e.ID, date, badge, truncateString(e.Content, 100))
			}
			return nil
		},
	}
}

func entryAddCmd() *cli.Command {
	return &cli.Command{
		Name:      "add",
		Aliases:   []string{"a"},
		Usage:     "Write a new entry",
		ArgsUsage: "[content]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "mood", Aliases: []string{"m"}, Usage: "Optional mood label"},
		},
		Action: func(c *cli.Context) error {
			content := c.Args().First()
			if content == "" {
				prompt := &survey.Multiline{Message: "What's on your mind?"}
				if err := survey.AskOne(prompt, &content, survey.WithValidator(survey.Required)); err != nil {
					return err
				}
			}

			client := api.NewClient()
			entry, err := client.CreateEntry(content, c.String("mood"))
			if err != nil {
				return err
			}

			fmt.Printf("📓 Entry #%d saved\n", entry.ID)
			return nil
		},
	}
}

func entryEditCmd() *cli.Command {
	return &cli.Command{
		Name:      "edit",
		Usage:     "Overwrite an entry's content and mood",
		ArgsUsage: "[entry-id] [content]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "mood", Aliases: []string{"m"}, Usage: "New mood label"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() < 2 {
				return fmt.Errorf("usage: jrn entry edit <id> <content>")
			}
			id, err := parseEntryID(c.Args().Get(0))
			if err != nil {
				return err
			}

			client := api.NewClient()
			entry, err := client.UpdateEntry(id, c.Args().Get(1), c.String("mood"))
			if err != nil {
				return err
			}

			fmt.Printf("✏️  Entry #%d updated\n", entry.ID)
			return nil
		},
	}
}

func entryTrashCmd() *cli.Command {
	return &cli.Command{
		Name:      "trash",
		Aliases:   []string{"rm"},
		Usage:     "Move an entry to the trash (soft delete, no undo)",
		ArgsUsage: "[entry-id]",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "Skip confirmation"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return fmt.Errorf("entry ID is required")
			}
			id, err := parseEntryID(c.Args().First())
			if err != nil {
				return err
			}

			if !c.Bool("yes") {
				confirmed := false
				prompt := &survey.Confirm{Message: fmt.Sprintf("Trash entry #%d? This cannot be undone.", id)}
				if err := survey.AskOne(prompt, &confirmed); err != nil {
					return err
				}
				if !confirmed {
					fmt.Println("Cancelled")
					return nil
				}
			}

			client := api.NewClient()
			entry, err := client.TrashEntry(id)
			if err != nil {
				return err
			}

			fmt.Printf("🗑  Entry #%d moved to trash\n", entry.ID)
			return nil
		},
	}
}

func parseEntryID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid entry ID %q", raw)
	}
	return uint(id), nil
}
