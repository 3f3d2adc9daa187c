package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	cartCmd "github.com/Alturino/shoppingcart/cart/cmd"
	"github.com/Alturino/shoppingcart/internal/constants"
	"github.com/Alturino/shoppingcart/internal/infra"
	"github.com/Alturino/shoppingcart/internal/log"
)

func Start() {
	logger := log.InitLogger("/var/log/shoppingcart.log").
		With().
		Str(log.KeyAppName, constants.APP_MAIN_CART).
		Str(log.KeyTag, "main Start").
		Logger()

	logger.Info().Msg("adding listener for SIGINT and SIGTERM")
	c, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	logger.Info().Msg("added listener for SIGINT and SIGTERM")

	c = logger.WithContext(c)

	rootCmd := &cobra.Command{Use: "shoppingcart"}
	migrateCmd := &cobra.Command{
		Use:       "migrate [up|down]",
		Short:     "Apply or revert the cart schema migrations",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{string(infra.MigrationUp), string(infra.MigrationDown)},
		RunE: func(cmd *cobra.Command, args []string) error {
			direction := infra.MigrationDirection(args[0])
			if err := cartCmd.RunMigration(cmd.Context(), direction); err != nil {
				return fmt.Errorf("failed migration %s with error=%w", direction, err)
			}
			return nil
		},
	}
	commands := []*cobra.Command{
		{
			Use:   "cart",
			Short: "Run cart service",
			Run: func(cmd *cobra.Command, args []string) {
				cartCmd.RunCartService(cmd.Context())
			},
		},
		migrateCmd,
	}
	rootCmd.AddCommand(commands...)
	if err := rootCmd.ExecuteContext(c); err != nil {
		logger.Fatal().Err(err).Msgf("error when executing command=%s", err.Error())
	}
}
