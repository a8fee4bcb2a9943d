package cli

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dayimpact/ecocoach/internal/chat"
	"github.com/dayimpact/ecocoach/internal/impact"
	"github.com/dayimpact/ecocoach/internal/storage"
)

// NewChatCmd creates the chat command, which parses a natural-language
// message, logs the recognized actions, and prints the analysis.
func NewChatCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "chat <message>",
		Short: "Log actions described in natural language",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			message := strings.Join(args, " ")
			ctx := cmd.Context()

			parsed := chat.ParseMessage(message)

			var store *storage.Store
			if !dryRun {
				var err error
				store, err = storage.Open(ctx, databasePath(cmd), logger)
				if err != nil {
					return err
				}
				defer store.Close()
			}

			recognized := make([]chat.ParsedAction, 0, len(parsed))
			records := make([]impact.ActionRecord, 0, len(parsed))
			for _, action := range parsed {
				record, err := impact.NewActionRecord(action.Category, action.Item, action.Amount, "", "")
				if err != nil {
					logger.Debug().
						Str("item", action.Item).
						Err(err).
						Msg("Skipping unrecognized item")
					continue
				}
				if store != nil {
					if _, err := store.Insert(ctx, time.Now(), record, "", ""); err != nil {
						return err
					}
				}
				recognized = append(recognized, action)
				records = append(records, record)
			}

			cmd.Println(chat.GenerateResponse(recognized, records))
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "analyze the message without logging actions")
	return cmd
}
