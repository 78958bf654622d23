package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/evekit/pkg/crest"
	"github.com/matzehuels/evekit/pkg/errors"
)

// crestCommand creates the public JSON API command.
func (c *CLI) crestCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crest",
		Short: "Query the public CREST API",
		Long: `Query the public CREST API.

These endpoints need no API key. Resources without a dedicated view are
printed as indented JSON.`,
	}

	cmd.AddCommand(c.crestMarketCommand())
	cmd.AddCommand(c.crestAlliancesCommand())
	cmd.AddCommand(c.crestAllianceCommand())
	cmd.AddCommand(c.crestIncursionsCommand())
	cmd.AddCommand(c.crestKillmailCommand())

	return cmd
}

// crestMarketCommand creates the "crest market" subcommand.
func (c *CLI) crestMarketCommand() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "market <region-id> <type-id>",
		Short: "Show the daily market history of a type in a region",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			regionID, err := parseID("region id", args[0])
			if err != nil {
				return err
			}
			typeID, err := parseID("type id", args[1])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			hist, err := spin(ctx, "Fetching market history...", func() (crest.MarketHistory, error) {
				return c.crestClient().MarketHistory(ctx, regionID, typeID)
			})
			if err != nil {
				return err
			}

			items := hist.Items
			if days > 0 && len(items) > days {
				items = items[len(items)-days:]
			}
			if len(items) == 0 {
				printInfo("No market history")
				return nil
			}
			rows := make([][]string, len(items))
			for i, e := range items {
				rows[i] = []string{
					e.Date.Format("2006-01-02"),
					strconv.FormatInt(e.Volume, 10),
					strconv.FormatInt(e.OrderCount, 10),
					strconv.FormatFloat(e.LowPrice, 'f', 2, 64),
					strconv.FormatFloat(e.AvgPrice, 'f', 2, 64),
					strconv.FormatFloat(e.HighPrice, 'f', 2, 64),
				}
			}
			printTable([]string{"Date", "Volume", "Orders", "Low", "Avg", "High"}, rows)
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 14, "number of most recent days to show (0 for all)")

	return cmd
}

// crestAlliancesCommand creates the "crest alliances" subcommand.
func (c *CLI) crestAlliancesCommand() *cobra.Command {
	var pages int

	cmd := &cobra.Command{
		Use:   "alliances",
		Short: "List alliances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client := c.crestClient()

			page, err := client.Alliances(ctx)
			if err != nil {
				return err
			}
			var rows [][]string
			for n := 1; ; n++ {
				for _, item := range page.Items() {
					rows = append(rows, allianceRow(item))
				}
				next, ok := page.Href("next")
				if !ok || n >= pages {
					break
				}
				loggerFromContext(ctx).Debug("following next page", "page", n+1)
				if page, err = client.Follow(ctx, next); err != nil {
					return err
				}
			}
			if len(rows) == 0 {
				printInfo("No alliances")
				return nil
			}
			printTable([]string{"ID", "Name", "Ticker"}, rows)
			return nil
		},
	}

	cmd.Flags().IntVar(&pages, "pages", 1, "number of pages to fetch")

	return cmd
}

// allianceRow flattens one alliance collection item. Items either carry the
// fields directly or nest them under "alliance".
func allianceRow(item crest.Resource) []string {
	if nested, ok := item["alliance"].(map[string]any); ok {
		item = crest.Resource(nested)
	}
	id, _ := item.Int("id")
	name, _ := item.Text("name")
	ticker, _ := item.Text("shortName")
	return []string{strconv.FormatInt(id, 10), name, ticker}
}

// crestAllianceCommand creates the "crest alliance" subcommand.
func (c *CLI) crestAllianceCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "alliance <id>",
		Short: "Show one alliance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("alliance id", args[0])
			if err != nil {
				return err
			}
			res, err := c.crestClient().Alliance(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printResource(res)
		},
	}
}

// crestIncursionsCommand creates the "crest incursions" subcommand.
func (c *CLI) crestIncursionsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "incursions",
		Short: "Show active incursions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.crestClient().Incursions(cmd.Context())
			if err != nil {
				return err
			}
			return printResource(res)
		},
	}
}

// crestKillmailCommand creates the "crest killmail" subcommand.
func (c *CLI) crestKillmailCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "killmail <id> <hash>",
		Short: "Show one killmail",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("killmail id", args[0])
			if err != nil {
				return err
			}
			res, err := c.crestClient().Killmail(cmd.Context(), id, args[1])
			if err != nil {
				return err
			}
			return printResource(res)
		},
	}
}

func printResource(res crest.Resource) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		return fmt.Errorf("encode resource: %w", err)
	}
	return nil
}

func parseID(what, s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New(errors.ErrCodeInvalidInput, "invalid %s %q", what, s)
	}
	return id, nil
}
