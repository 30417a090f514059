package commands

import (
	"github.com/spf13/cobra"

	"github.com/safesistemas/cejoana/pkg/commands/options"
	"github.com/safesistemas/cejoana/pkg/runner/remove"
	"github.com/safesistemas/cejoana/pkg/snake"
)

func addDelete(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}
	co := &options.ConfirmOptions{}

	cmd := &cobra.Command{
		Use:   "delete <entity> <id>...",
		Short: "delete rows of an entity by id",
		Example: `
cejoana delete cities 3
cejoana delete people 4 7 --yes
`,
		Args:              cobra.MinimumNArgs(2),
		ValidArgsFunction: entityCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := entityArg(args[0])
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

			r := &remove.Remove{Backend: b, Schema: s, IDs: args[1:]}
			if !co.Yes {
				r.Confirm = func(prompt string) (bool, error) {
					return snake.Confirm(cmd, prompt)
				}
			}
			if err := r.Do(cmd.Context()); err != nil {
				return oo.HandleError(err)
			}
			return oo.Message(r.Result)
		},
	}
	options.AddOutputArg(cmd, oo)
	options.AddConfirmArgs(cmd, co)

	topLevel.AddCommand(cmd)
}
