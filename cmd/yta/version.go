package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openclaw/yta/internal/appupdate"
	"github.com/openclaw/yta/internal/version"
)

func newVersionCommand() *cobra.Command {
	var checkUpdate bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print build metadata.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Println("yta " + version.String())

			if !checkUpdate {
				return nil
			}
			res, err := appupdate.Check(cmd.Context(), appupdate.CheckOptions{
				CurrentVersion: version.Version,
			})
			if err != nil {
				return err
			}
			switch {
			case res.CurrentVersion == "":
				fmt.Println("dev build, skipping release check")
			case res.UpdateAvailable:
				fmt.Printf("update available: %s -> %s\n", res.CurrentVersion, res.LatestVersion)
				fmt.Println("  " + res.UpgradeHint)
			default:
				fmt.Println("up to date")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&checkUpdate, "check-update", false, "check GitHub for a newer release")
	return cmd
}
