package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/evekit/pkg/apikey"
	"github.com/matzehuels/evekit/pkg/errors"
	"github.com/matzehuels/evekit/pkg/keystore"
)

// keyCommand creates the key management command.
func (c *CLI) keyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Store, inspect and validate API keys",
	}

	cmd.AddCommand(c.keyAddCommand())
	cmd.AddCommand(c.keyListCommand())
	cmd.AddCommand(c.keyRemoveCommand())
	cmd.AddCommand(c.keyInfoCommand())
	cmd.AddCommand(c.keyCheckCommand())
	cmd.AddCommand(c.keyCharactersCommand())

	return cmd
}

// keyAddCommand creates the "key add" subcommand.
func (c *CLI) keyAddCommand() *cobra.Command {
	var skipCheck bool

	cmd := &cobra.Command{
		Use:   "add <name> <key-id> <vcode>",
		Short: "Store an API key under a local name",
		Long: `Store an API key under a local name.

The key is validated against the API before it is stored unless --skip-check
is given. Rejected keys are never stored.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseKeyID(args[1])
			if err != nil {
				return err
			}
			return c.runKeyAdd(cmd.Context(), args[0], id, args[2], skipCheck)
		},
	}

	cmd.Flags().BoolVar(&skipCheck, "skip-check", false, "store the key without contacting the API")

	return cmd
}

func (c *CLI) runKeyAdd(ctx context.Context, name string, id int64, vCode string, skipCheck bool) error {
	entry := &keystore.Entry{Name: name, KeyID: id, VCode: vCode}
	if err := entry.Validate(); err != nil {
		return err
	}

	store, err := c.keyStore()
	if err != nil {
		return err
	}

	if !skipCheck {
		client, cc, err := c.eveClient(ctx)
		if err != nil {
			return err
		}
		defer cc.Close()

		key := client.NewKey(id, vCode)
		valid, err := spin(ctx, fmt.Sprintf("Checking %s...", key), func() (bool, error) {
			return key.IsValid(ctx)
		})
		if err != nil {
			return err
		}
		if !valid {
			return errors.New(errors.ErrCodeInvalidKey, "%s was rejected by the API", key)
		}
	}

	if err := store.Set(ctx, entry); err != nil {
		return err
	}

	printSuccess("Stored key %q (%d)", name, id)
	printDetail("Directory: %s", store.Path())
	printNextStep("List its characters", fmt.Sprintf("%s key characters %s", appName, name))
	return nil
}

// keyListCommand creates the "key list" subcommand.
func (c *CLI) keyListCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List stored API keys",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.keyStore()
			if err != nil {
				return err
			}
			entries, err := store.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				printInfo("No keys stored")
				printNextStep("Add one", appName+" key add <name> <key-id> <vcode>")
				return nil
			}

			rows := make([][]string, len(entries))
			for i, e := range entries {
				rows[i] = []string{e.Name, strconv.FormatInt(e.KeyID, 10), formatDate(e.AddedAt)}
			}
			printTable([]string{"Name", "Key ID", "Added"}, rows)
			return nil
		},
	}
}

// keyRemoveCommand creates the "key remove" subcommand.
func (c *CLI) keyRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <name>",
		Aliases: []string{"rm"},
		Short:   "Remove a stored API key",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.keyStore()
			if err != nil {
				return err
			}
			if err := store.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			printSuccess("Removed key %q", args[0])
			return nil
		},
	}
}

// keyInfoCommand creates the "key info" subcommand.
func (c *CLI) keyInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info <name>",
		Short: "Show the access mask, type and expiry of a stored key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client, cc, err := c.eveClient(ctx)
			if err != nil {
				return err
			}
			defer cc.Close()

			key, err := c.storedKey(ctx, client, args[0])
			if err != nil {
				return err
			}

			info, err := spin(ctx, fmt.Sprintf("Loading %s...", key), func() (apikey.Info, error) {
				return key.Info(ctx)
			})
			if err != nil {
				return err
			}

			printKeyValue("Key", strconv.FormatInt(key.ID(), 10))
			printKeyValue("Type", info.Type.String())
			printKeyValue("Access mask", strconv.FormatInt(info.AccessMask, 10))
			printKeyValue("Expires", formatDate(info.Expires))
			return nil
		},
	}
}

// keyStatus is the outcome of checking one stored key.
type keyStatus struct {
	entry *keystore.Entry
	valid bool
	err   error
}

// keyCheckCommand creates the "key check" subcommand.
func (c *CLI) keyCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check [name...]",
		Short: "Validate stored API keys against the API",
		Long: `Validate stored API keys against the API.

With no arguments every stored key is checked. Keys are checked concurrently,
bounded by max_in_flight from the config.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := c.keyStore()
			if err != nil {
				return err
			}

			entries, err := selectEntries(ctx, store, args)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				printInfo("No keys stored")
				return nil
			}

			client, cc, err := c.eveClient(ctx)
			if err != nil {
				return err
			}
			defer cc.Close()

			prog := newProgress(loggerFromContext(ctx))
			results, err := spin(ctx, fmt.Sprintf("Checking %d keys...", len(entries)), func() ([]keyStatus, error) {
				return checkKeys(ctx, entries, c.cfg.MaxInFlight, func(e *keystore.Entry) *apikey.Key {
					return client.NewKey(e.KeyID, e.VCode)
				})
			})
			if err != nil {
				return err
			}
			prog.done("Checked %d keys", len(results))

			rejected := 0
			for _, r := range results {
				switch {
				case r.err != nil:
					printWarning("%s: %s", r.entry.Name, errors.UserMessage(r.err))
				case r.valid:
					printSuccess("%s: valid", r.entry.Name)
				default:
					rejected++
					printError("%s: rejected", r.entry.Name)
				}
			}
			if rejected > 0 {
				return errors.New(errors.ErrCodeInvalidKey, "%d of %d keys rejected", rejected, len(results))
			}
			return nil
		},
	}
}

// selectEntries returns the named entries, or all of them when names is empty.
func selectEntries(ctx context.Context, store *keystore.Store, names []string) ([]*keystore.Entry, error) {
	if len(names) == 0 {
		return store.List(ctx)
	}
	entries := make([]*keystore.Entry, 0, len(names))
	for _, name := range names {
		e, err := store.Get(ctx, name)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// checkKeys validates every entry with at most limit checks in flight.
// Per-key failures are reported in the results; only cancellation aborts the run.
func checkKeys(ctx context.Context, entries []*keystore.Entry, limit int, bind func(*keystore.Entry) *apikey.Key) ([]keyStatus, error) {
	results := make([]keyStatus, len(entries))

	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, e := range entries {
		g.Go(func() error {
			valid, err := bind(e).IsValid(gctx)
			if errors.Is(err, errors.ErrCodeCanceled) {
				return err
			}
			results[i] = keyStatus{entry: e, valid: valid, err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// keyCharactersCommand creates the "key characters" subcommand.
func (c *CLI) keyCharactersCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "characters <name>",
		Aliases: []string{"chars"},
		Short:   "List the characters exposed by a stored key",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client, cc, err := c.eveClient(ctx)
			if err != nil {
				return err
			}
			defer cc.Close()

			key, err := c.storedKey(ctx, client, args[0])
			if err != nil {
				return err
			}

			chars, err := client.Characters(ctx, key)
			if err != nil {
				return err
			}
			if len(chars) == 0 {
				printInfo("%s exposes no characters", key)
				return nil
			}

			rows := make([][]string, len(chars))
			for i, ch := range chars {
				rows[i] = []string{strconv.FormatInt(ch.ID, 10), ch.Name, ch.CorporationName}
			}
			printTable([]string{"ID", "Name", "Corporation"}, rows)
			return nil
		},
	}
}

// parseKeyID parses a positive key ID argument.
func parseKeyID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidInput, "invalid key id %q", s)
	}
	if err := errors.ValidateKeyID(id); err != nil {
		return 0, err
	}
	return id, nil
}
