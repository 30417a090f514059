package commands

import (
	"github.com/spf13/cobra"

	"github.com/safesistemas/cejoana/pkg/runner/ui"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ui [entity]",
		Short: "open the text-based user interface",
		Example: `
cejoana ui
cejoana ui people
cejoana ui --driver memory
`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: entityCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			i := &ui.UI{LogFile: cfg.Log.File}
			if len(args) == 1 {
				if i.Start, err = entityArg(args[0]); err != nil {
					return err
				}
			}
			b, err := openBackend(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer b.Close()
			i.Backend = b
			return i.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
