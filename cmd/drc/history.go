package main

import (
	"context"
	"time"

	"github.com/docker/go-units"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/JaimeStill/document-registry/internal/infrastructure"
	"github.com/JaimeStill/document-registry/internal/versions"
)

func newHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history [document uuid]",
		Short: "Show the version chain of a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			infra, err := infrastructure.NewDatabase(cfg)
			if err != nil {
				return err
			}
			defer infra.Database.Close()

			vs := versions.New(infra.Database, cfg.Registry, infra.Logger)
			history, err := vs.History(context.Background(), args[0])
			if err != nil {
				return err
			}

			tw := table.NewWriter()
			tw.Style().Options.DrawBorder = false
			tw.Style().Options.SeparateColumns = false
			tw.Style().Options.SeparateFooter = false
			tw.Style().Options.SeparateHeader = false
			tw.Style().Options.SeparateRows = false
			tw.AppendHeader(table.Row{
				"VERSIE",
				"BEGIN REGISTRATIE",
				"TITEL",
				"STATUS",
				"BESTANDSOMVANG",
			})
			for _, v := range history {
				tw.AppendRow(table.Row{
					v.Versie,
					v.BeginRegistratie.UTC().Format(time.RFC3339),
					v.Titel,
					v.Status,
					units.HumanSize(float64(v.Bestandsomvang)),
				})
			}
			cmd.Printf("%s\n", tw.Render())
			return nil
		},
	}
}
