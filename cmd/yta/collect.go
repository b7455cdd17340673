package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/openclaw/yta/internal/collector"
	"github.com/openclaw/yta/internal/config"
	"github.com/openclaw/yta/internal/daterange"
	"github.com/openclaw/yta/internal/store"
	"github.com/openclaw/yta/internal/youtube"
)

type collectFlags struct {
	configPath string
	channelID  string
	startDate  string
	endDate    string
	preset     string
	lifetime   bool
	dbPath     string
	pretty     bool
}

func newRootCommand() *cobra.Command {
	flags := &collectFlags{}

	cmd := &cobra.Command{
		Use:   "yta",
		Short: "Collect YouTube channel analytics into a local SQLite store.",
		Long: "yta walks the authenticated channel's video catalogue, fetches per-day\n" +
			"engagement metrics for the resolved date range, upserts everything into a\n" +
			"local SQLite database, and prints a run summary with period totals.",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCollect(cmd.Context(), flags)
		},
	}

	cmd.Flags().StringVar(&flags.configPath, "config", "", "settings file (default "+config.ConfigPath()+")")
	cmd.Flags().StringVar(&flags.channelID, "channel-id", "", "channel id (default: discovered from the credential)")
	cmd.Flags().StringVar(&flags.startDate, "start-date", "", "YYYY-MM-DD (default: 30 days ago)")
	cmd.Flags().StringVar(&flags.endDate, "end-date", "", "YYYY-MM-DD (default: today)")
	cmd.Flags().StringVar(&flags.preset, "range", "", "preset range: last7|last30|last90|last365|mtd|ytd (overrides --start-date/--end-date)")
	cmd.Flags().BoolVar(&flags.lifetime, "lifetime", false, "collect from YouTube's launch date and include lifetime totals")
	cmd.Flags().StringVar(&flags.dbPath, "db-path", "", "SQLite database path (default from settings)")
	cmd.Flags().BoolVar(&flags.pretty, "pretty", false, "render the summary for humans instead of JSON")

	return cmd
}

func runCollect(ctx context.Context, flags *collectFlags) error {
	var cfg config.Config
	var err error
	if flags.configPath != "" {
		cfg, err = config.LoadFrom(flags.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}
	if flags.channelID != "" {
		cfg.ChannelID = flags.channelID
	}
	if flags.dbPath != "" {
		cfg.DBPath = flags.dbPath
	}

	// Range resolution and credential presence are configuration checks;
	// both happen before anything touches the network.
	rng, err := daterange.Resolve(daterange.Options{
		StartDate: flags.startDate,
		EndDate:   flags.endDate,
		Preset:    flags.preset,
		Lifetime:  flags.lifetime,
	}, time.Now())
	if err != nil {
		return err
	}
	if err := config.CheckClientSecret(cfg.ClientSecretFile); err != nil {
		return err
	}

	st, err := store.OpenStore(cfg.DBPath)
	if err != nil {
		return err
	}
	defer st.Close()

	client := youtube.NewClient(ctx, config.NewFileTokenSource(cfg.TokenFile))

	summary, err := collector.New(st, client, client).Run(ctx, collector.RunOptions{
		ChannelID: cfg.ChannelID,
		Range:     rng,
		Lifetime:  flags.lifetime,
		DBPath:    cfg.DBPath,
	})
	if err != nil {
		return err
	}

	if flags.pretty {
		fmt.Println(renderSummary(summary))
		return nil
	}
	out, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
