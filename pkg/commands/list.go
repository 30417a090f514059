package commands

import (
	"errors"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/safesistemas/cejoana/pkg/commands/options"
	"github.com/safesistemas/cejoana/pkg/entities"
	"github.com/safesistemas/cejoana/pkg/runner/list"
	"github.com/safesistemas/cejoana/pkg/snake"
)

func addList(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}
	fo := &options.FilterOptions{}
	i := &options.InteractiveOptions{}

	cmd := &cobra.Command{
		Use:   "list [entity]",
		Short: "print the rows of an entity",
		Example: `
cejoana list people
cejoana list attendances --filter joao
cejoana list cities --json
cejoana list -i
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if i.Interactive {
				return cobra.NoArgs(cmd, args)
			}
			if len(args) != 1 {
				return errors.New("list needs exactly one entity")
			}
			return nil
		},
		ValidArgsFunction: entityCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			l := &list.List{Filter: fo.Filter, JSON: oo.JSON, Out: color.Output}
			var err error
			if i.Interactive {
				l.Schema, err = snake.SelectSchema(cmd, entities.All())
			} else {
				l.Schema, err = entityArg(args[0])
			}
			if err != nil {
				return oo.HandleError(err)
			}

			cfg, err := loadConfig()
			if err != nil {
				return oo.HandleError(err)
			}
			b, err := openBackend(cmd.Context(), cfg)
			if err != nil {
				return oo.HandleError(err)
			}
			defer b.Close()
			l.Backend = b
			return oo.HandleError(l.Do(cmd.Context()))
		},
	}
	options.AddOutputArg(cmd, oo)
	options.AddFilterArgs(cmd, fo)
	options.InteractiveArgs(cmd, i)

	topLevel.AddCommand(cmd)
}
