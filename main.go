package main

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"togglaunch/pkg/cache"
	"togglaunch/pkg/config"
	"togglaunch/pkg/notify"
	"togglaunch/pkg/result"
	"togglaunch/pkg/toggl"
	"togglaunch/pkg/viewer"
)

var (
	cfgFile  string
	asJSON   bool
	enter    int
	altEnter bool
	quiet    bool
	verbose  bool
)

var rootCmd = &cobra.Command{
	Use:   "togglaunch [query...]",
	Short: "Launcher frontend for the toggl CLI",
	Long: `togglaunch turns a launcher query line into a result list backed by
the TogglCli tool. Run it with the query as arguments to see the
results, and with --enter N to perform the action of the Nth result.`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/togglaunch/config.yaml)")
	rootCmd.Flags().BoolVar(&asJSON, "json", false, "render the result list as JSON")
	rootCmd.Flags().IntVar(&enter, "enter", 0, "perform the action of result N instead of listing")
	rootCmd.Flags().BoolVar(&altEnter, "alt", false, "with --enter, use the alternate action")
	rootCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "errors only, no desktop notifications")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

func run(cmd *cobra.Command, args []string) error {
	switch {
	case quiet:
		log.SetLevel(log.ErrorLevel)
	case verbose:
		log.SetLevel(log.DebugLevel)
	default:
		log.SetLevel(log.WarnLevel)
	}

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	runner := toggl.NewRunner(cfg.TogglPath)
	if cfg.Workspace != 0 {
		runner = toggl.WithWorkspace(runner, cfg.Workspace)
	}
	trackers := toggl.NewTrackerClient(runner,
		cache.NewStore[toggl.Tracker](cfg.TrackerCachePath(), "tracker", cfg.TrackerTTL),
		cfg.MaxResults)
	projects := toggl.NewProjectClient(runner,
		cache.NewStore[toggl.Project](cfg.ProjectCachePath(), "project", cfg.ProjectTTL))

	var notifier notify.Notifier = notify.NewDesktop("Toggl Time Tracking", "")
	if quiet {
		notifier = notify.Discard{}
	}

	v := viewer.New(cfg, trackers, projects, notifier)
	items := v.Process(cmd.Context(), strings.Join(args, " "))

	if enter > 0 {
		return perform(cmd, cfg, items)
	}
	return result.Render(cmd.OutOrStdout(), items, cfg.MaxResults, asJSON)
}

// perform executes the selected result's action. An Invoke action may
// hand back follow-up items or a replacement query line; both are
// written to stdout for the host to pick up.
func perform(cmd *cobra.Command, cfg *config.Config, items []result.Item) error {
	items = result.Truncate(items, cfg.MaxResults)
	if enter > len(items) {
		return fmt.Errorf("no result %d, got %d results", enter, len(items))
	}

	item := items[enter-1]
	action := item.OnEnter
	if altEnter && item.OnAltEnter != nil {
		action = item.OnAltEnter
	}

	switch a := action.(type) {
	case result.Invoke:
		outcome := a.Fn()
		if outcome.Query != "" {
			fmt.Fprintln(cmd.OutOrStdout(), outcome.Query)
			return nil
		}
		if len(outcome.Items) > 0 {
			return result.Render(cmd.OutOrStdout(), outcome.Items, cfg.MaxResults, asJSON)
		}
	case result.SetQuery:
		fmt.Fprintln(cmd.OutOrStdout(), a.Query)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
