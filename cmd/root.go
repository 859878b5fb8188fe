package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type rootOpts struct {
	rootProfile   string
	noClean       bool
	reproduceOnly bool
	logLevel      string
	assumeCompose bool
	workDir       string
}

var rootopts = rootOpts{}

var rootCmd = &cobra.Command{
	Use:   "buildreqmin <source.src.rpm>",
	Short: "finds build requirements a source package declares but does not actually need",
	Long: `buildreqmin rebuilds a source package under an isolated build root while
forcing declared BuildRequires absent one at a time (and in combination), and
reports the maximal subset that can be removed without changing the build's
output.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMinimize(args[0])
	},
}

func Execute() {
	rootCmd.PersistentFlags().StringVar(&rootopts.rootProfile, "root", "", "path to the isolated-build root profile (required)")
	rootCmd.PersistentFlags().BoolVar(&rootopts.noClean, "no-clean", false, "retain the workdir and chroot state on exit")
	rootCmd.PersistentFlags().BoolVar(&rootopts.reproduceOnly, "reproduce-only", false, "run only the reproducibility gate and exit")
	rootCmd.PersistentFlags().StringVar(&rootopts.logLevel, "loglvl", "info", "log level: debug, info, warning, error, critical")
	rootCmd.PersistentFlags().BoolVar(&rootopts.assumeCompose, "assume-compose", false, "opt-in unsound fast path: assume unneededness composes additively")
	rootCmd.PersistentFlags().StringVar(&rootopts.workDir, "workdir", "", "workdir for reference and probe builds (defaults to a temp dir)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func configureLogging(level string) error {
	lvl, err := log.ParseLevel(mapLogLevel(level))
	if err != nil {
		return fmt.Errorf("invalid --loglvl %s: %w", level, err)
	}
	log.SetLevel(lvl)
	return nil
}

// mapLogLevel translates spec.md §6's vocabulary onto logrus's, which
// has no "critical" level and spells "warning" as "warn".
func mapLogLevel(level string) string {
	switch level {
	case "warning":
		return "warn"
	case "critical":
		return "fatal"
	default:
		return level
	}
}
