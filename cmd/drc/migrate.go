package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/document-registry/internal/infrastructure"
	"github.com/JaimeStill/document-registry/internal/migrations"
)

var downSteps int

var errMemoryDriver = errors.New("migrations require the postgres driver")

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back database migrations",
	}

	up := &cobra.Command{
		Use:   "up",
		Short: "Apply every pending migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			infra, err := openPool()
			if err != nil {
				return err
			}
			defer infra.Database.Close()

			if err := migrations.Up(infra.Pool.Connection()); err != nil {
				return err
			}
			return printVersion(cmd, infra)
		},
	}

	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back applied migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			infra, err := openPool()
			if err != nil {
				return err
			}
			defer infra.Database.Close()

			if err := migrations.Down(infra.Pool.Connection(), downSteps); err != nil {
				return err
			}
			return printVersion(cmd, infra)
		},
	}
	down.Flags().IntVar(&downSteps, "steps", 1, "Number of migrations to roll back")

	cmd.AddCommand(up, down)
	return cmd
}

func openPool() (*infrastructure.Infrastructure, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	infra, err := infrastructure.NewDatabase(cfg)
	if err != nil {
		return nil, err
	}
	if infra.Pool == nil {
		return nil, errMemoryDriver
	}
	return infra, nil
}

func printVersion(cmd *cobra.Command, infra *infrastructure.Infrastructure) error {
	version, dirty, err := migrations.Version(infra.Pool.Connection())
	if err != nil {
		return err
	}
	cmd.Printf("schema version %d (dirty: %t)\n", version, dirty)
	return nil
}
