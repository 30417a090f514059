package commands

import (
	"github.com/spf13/cobra"

	"github.com/safesistemas/cejoana/pkg/entities"
	"github.com/safesistemas/cejoana/pkg/runner/migrate"
)

func addMigrate(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "create the tables of every entity",
		Example: `
cejoana migrate --driver sqlite --dsn ./cejoana.db
cejoana migrate --driver postgres --dsn postgres://localhost/cejoana
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			b, err := openBackend(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer b.Close()
			m := &migrate.Migrate{Backend: b, Schemas: entities.All(), Out: cmd.OutOrStdout()}
			return m.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
