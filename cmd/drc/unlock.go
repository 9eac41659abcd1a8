package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/document-registry/internal/infrastructure"
	"github.com/JaimeStill/document-registry/internal/locks"
)

var (
	unlockToken string
	unlockForce bool
)

func newUnlockCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unlock [document uuid]",
		Short: "Release the lock of a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if unlockToken == "" && !unlockForce {
				return errors.New("either --lock or --force is required")
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			infra, err := infrastructure.NewDatabase(cfg)
			if err != nil {
				return err
			}
			defer infra.Database.Close()

			lm := locks.New(infra.Database, infra.Logger, nil)
			return releaseLock(context.Background(), lm, args[0], unlockToken, unlockForce, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&unlockToken, "lock", "", "Lock token returned when the document was locked")
	cmd.Flags().BoolVar(&unlockForce, "force", false, "Release the lock without presenting its token")
	return cmd
}

// releaseLock unlocks id and reports whether a lock was actually released.
func releaseLock(ctx context.Context, lm locks.System, id, token string, force bool, out io.Writer) error {
	locked, err := lm.Status(ctx, id)
	if err != nil {
		return err
	}
	if !locked {
		fmt.Fprintf(out, "document %s is not locked\n", id)
		return nil
	}

	if err := lm.Unlock(ctx, id, token, force); err != nil {
		return err
	}
	fmt.Fprintf(out, "document %s unlocked\n", id)
	return nil
}
