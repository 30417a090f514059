package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"github.com/safesistemas/cejoana/pkg/commands/options"
	"github.com/safesistemas/cejoana/pkg/config"
	"github.com/safesistemas/cejoana/pkg/entities"
	"github.com/safesistemas/cejoana/pkg/record"
	"github.com/safesistemas/cejoana/pkg/runner/ui"
	"github.com/safesistemas/cejoana/pkg/store"
	"github.com/safesistemas/cejoana/pkg/store/drivers"
	"github.com/safesistemas/cejoana/pkg/store/memory"
)

var (
	so = &options.StoreOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "cejoana",
		Short: base.Wrap80("Record management console for people, attendants and attendances."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceUsage: true,
	}
	options.AddStoreArgs(cmd.PersistentFlags(), so)

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addUI(topLevel)
	addList(topLevel)
	addDelete(topLevel)
	addServe(topLevel)
	addMigrate(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}

// loadConfig reads the configuration file and applies the store flags.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	so.Apply(&cfg.Store)
	return cfg, nil
}

// openBackend connects to the configured store. The memory driver starts
// with the demo data set.
func openBackend(ctx context.Context, cfg *config.Config) (store.Backend, error) {
	b, err := drivers.Open(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}
	if mb, ok := b.(*memory.Backend); ok {
		ui.StaticDemo(mb)
	}
	return b, nil
}

func entityArg(name string) (*record.Schema, error) {
	s, ok := entities.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("unknown entity %q, want one of: %s", name, strings.Join(entities.Names(), ", "))
	}
	return s, nil
}

func entityCompletions(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var out []string
	for _, n := range entities.Names() {
		if strings.HasPrefix(n, toComplete) {
			out = append(out, n)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}
