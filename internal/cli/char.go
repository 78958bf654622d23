package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/evekit/pkg/eveapi"
)

// charCommand creates the character query command.
func (c *CLI) charCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "char",
		Short: "Query character endpoints through a stored key",
		Long: `Query character endpoints through a stored key.

Characters are given by ID or by exact name. Responses are cached until the
time reported by the API unless --no-cache is set.

Examples:
  evekit char info main "Jane Doe"
  evekit char balance main 90000001`,
	}

	cmd.AddCommand(c.charInfoCommand())
	cmd.AddCommand(c.charBalanceCommand())
	cmd.AddCommand(c.charSheetCommand())
	cmd.AddCommand(c.charQueueCommand())
	cmd.AddCommand(c.charJournalCommand())

	return cmd
}

// withCharacter resolves the key and character arguments and calls fn.
func (c *CLI) withCharacter(ctx context.Context, keyName, ref string, fn func(*eveapi.Character) error) error {
	client, cc, err := c.eveClient(ctx)
	if err != nil {
		return err
	}
	defer cc.Close()

	key, err := c.storedKey(ctx, client, keyName)
	if err != nil {
		return err
	}
	ch, err := findCharacter(ctx, client, key, ref)
	if err != nil {
		return err
	}
	return fn(ch)
}

// charInfoCommand creates the "char info" subcommand.
func (c *CLI) charInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info <key> <character>",
		Short: "Show public and private character information",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return c.withCharacter(ctx, args[0], args[1], func(ch *eveapi.Character) error {
				resp, err := ch.Info(ctx)
				if err != nil {
					return err
				}
				r := resp.Result
				printKeyValue("Name", r.CharacterName)
				printKeyValue("Race", r.Race+" / "+r.Bloodline)
				printKeyValue("Corporation", r.Corporation)
				if r.Alliance != "" {
					printKeyValue("Alliance", r.Alliance)
				}
				printKeyValue("Security", strconv.FormatFloat(r.SecurityStatus, 'f', 2, 64))
				if r.ShipTypeName != "" {
					printKeyValue("Ship", fmt.Sprintf("%s (%s)", r.ShipName, r.ShipTypeName))
				}
				if r.LastLocation != "" {
					printKeyValue("Location", r.LastLocation)
				}
				printDetail("Cached until %s", formatDate(resp.CachedUntil.Time))
				return nil
			})
		},
	}
}

// charBalanceCommand creates the "char balance" subcommand.
func (c *CLI) charBalanceCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "balance <key> <character>",
		Short: "Show the wallet balance of a character",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return c.withCharacter(ctx, args[0], args[1], func(ch *eveapi.Character) error {
				resp, err := ch.AccountBalance(ctx)
				if err != nil {
					return err
				}
				balance, err := resp.Result.Wallet(eveapi.AccountKey)
				if err != nil {
					return err
				}
				printKeyValue(ch.Name, formatISK(balance))
				return nil
			})
		},
	}
}

// charSheetCommand creates the "char sheet" subcommand.
func (c *CLI) charSheetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sheet <key> <character>",
		Short: "Show the character sheet summary",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return c.withCharacter(ctx, args[0], args[1], func(ch *eveapi.Character) error {
				resp, err := ch.CharacterSheet(ctx)
				if err != nil {
					return err
				}
				s := resp.Result
				printKeyValue("Name", s.Name)
				printKeyValue("Born", formatDate(s.DateOfBirth.Time))
				printKeyValue("Corporation", s.CorporationName)
				printKeyValue("Balance", formatISK(s.Balance))
				printKeyValue("Skills", strconv.Itoa(len(s.Skills())))
				printKeyValue("Skill points", strconv.FormatInt(s.TotalSkillPoints(), 10))
				a := s.Attributes
				printKeyValue("Attributes", fmt.Sprintf("INT %d  MEM %d  CHA %d  PER %d  WIL %d",
					a.Intelligence, a.Memory, a.Charisma, a.Perception, a.Willpower))
				return nil
			})
		},
	}
}

// charQueueCommand creates the "char queue" subcommand.
func (c *CLI) charQueueCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "queue <key> <character>",
		Short: "Show the skill training queue",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return c.withCharacter(ctx, args[0], args[1], func(ch *eveapi.Character) error {
				// Both requests are in flight at once; each Await blocks only on its own result.
				queueCall := ch.SkillQueueAsync(ctx)
				trainingCall := ch.SkillInTrainingAsync(ctx)

				training, err := trainingCall.Await(ctx)
				if err != nil {
					return err
				}
				queue, err := queueCall.Await(ctx)
				if err != nil {
					return err
				}

				if !training.Result.Training() {
					printInfo("%s is not training", ch.Name)
				} else {
					t := training.Result
					printKeyValue("Training", fmt.Sprintf("type %d to level %d", t.TypeID, t.ToLevel))
					printKeyValue("Ends", formatDate(t.EndTime.Time))
				}
				if len(queue.Result.Skills) == 0 {
					return nil
				}

				rows := make([][]string, len(queue.Result.Skills))
				for i, s := range queue.Result.Skills {
					rows[i] = []string{
						strconv.Itoa(s.Position),
						strconv.FormatInt(s.TypeID, 10),
						strconv.Itoa(s.Level),
						formatDate(s.EndTime.Time),
					}
				}
				printTable([]string{"#", "Type", "Level", "Ends"}, rows)
				return nil
			})
		},
	}
}

// charJournalCommand creates the "char journal" subcommand.
func (c *CLI) charJournalCommand() *cobra.Command {
	var (
		rows   int
		fromID int64
	)

	cmd := &cobra.Command{
		Use:   "journal <key> <character>",
		Short: "Show recent wallet journal entries",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return c.withCharacter(ctx, args[0], args[1], func(ch *eveapi.Character) error {
				resp, err := ch.WalletJournal(ctx, rows, fromID)
				if err != nil {
					return err
				}
				if len(resp.Result.Entries) == 0 {
					printInfo("No journal entries")
					return nil
				}
				out := make([][]string, len(resp.Result.Entries))
				for i, e := range resp.Result.Entries {
					out[i] = []string{
						formatDate(e.Date.Time),
						strconv.FormatInt(e.RefID, 10),
						e.OwnerName1 + " → " + e.OwnerName2,
						formatISK(e.Amount),
						formatISK(e.Balance),
					}
				}
				printTable([]string{"Date", "Ref", "Parties", "Amount", "Balance"}, out)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&rows, "rows", 50, "number of entries to return")
	cmd.Flags().Int64Var(&fromID, "from", 0, "walk backwards from this ref ID")

	return cmd
}
