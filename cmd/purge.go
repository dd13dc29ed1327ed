package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"picam.api/v0/internal/config"
	"picam.api/v0/pkg/picture"
)

func NewPurgeCommand() *cobra.Command {
	var confirmed bool

	purgeCmd := &cobra.Command{
		Use:   "purge",
		Short: "Deletes every picture directory and recreates the empty picture root.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirmed {
				return fmt.Errorf("refusing to purge without --yes")
			}

			v := viper.New()
			if err := config.BindFlags(v, cmd.Flags()); err != nil {
				return err
			}
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}

			svc, _, cleanup, err := newPictureService(cfg, nil)
			if err != nil {
				return fmt.Errorf("failed to create picture service: %v", err)
			}
			defer cleanup()

			if err := svc.PurgeAll(cmd.Context()); err != nil {
				return fmt.Errorf("%s", picture.FailureText(err))
			}

			fmt.Printf("Purged '%s'\n", svc.Settings().Root)
			return nil
		},
	}

	purgeCmd.Flags().BoolVar(&confirmed, "yes", false, "Confirm deleting every picture.")
	config.RegisterFlags(purgeCmd.Flags())

	return purgeCmd
}
