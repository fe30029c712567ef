package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/lanehart/udpscout/internal/core"
	"github.com/lanehart/udpscout/internal/event"
	"github.com/lanehart/udpscout/internal/logger"
	"github.com/lanehart/udpscout/internal/output"
	"github.com/lanehart/udpscout/internal/scan"
	"github.com/lanehart/udpscout/internal/target"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// CommandProps injected props that can be made available to all commands
type CommandProps struct {
	Core *core.Core
}

// Root builds and returns our root command
func Root(props *CommandProps) *cobra.Command {
	var verbose bool
	var silent bool
	var targets []string
	var hostsFile string
	var ports string
	var timeout int
	var retries int
	var rateLimit int
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "udpscout",
		Short: "Discover and fingerprint UDP services on your network",
		// This runs before all commands and all sub-commands
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// set logging verbosity for all loggers
			zerolog.SetGlobalLevel(zerolog.InfoLevel)

			if verbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}

			if silent {
				zerolog.SetGlobalLevel(zerolog.Disabled)
			}

			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger.New()

			conf := props.Core.Conf()

			specs := []string{}

			if cmd.Flags().Changed("target") {
				specs = append(specs, targets...)
			}

			if hostsFile != "" {
				hosts, err := target.ParseTargetsFile(hostsFile)

				if err != nil {
					return err
				}

				specs = append(specs, hosts...)
			}

			if len(specs) > 0 {
				conf.Targets = specs
			}

			if cmd.Flags().Changed("ports") {
				parsed, err := target.ParsePorts(ports)

				if err != nil {
					return err
				}

				conf.Ports = parsed
			}

			if cmd.Flags().Changed("timeout") {
				conf.TimeoutSeconds = timeout
			}

			if cmd.Flags().Changed("retries") {
				conf.Retries = retries
			}

			if cmd.Flags().Changed("rate-limit") {
				conf.RateLimit = rateLimit
			}

			if cmd.Flags().Changed("output") {
				conf.Output = outputFormat
			}

			format, err := output.ParseFormat(conf.Output)

			if err != nil {
				return err
			}

			if err := props.Core.UpdateConfig(conf); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(
				cmd.Context(),
				os.Interrupt,
				syscall.SIGTERM,
			)

			defer stop()

			// log findings as they come in so long scans aren't silent
			found := make(chan event.Event, 64)
			listenerID := props.Core.RegisterEventListener(
				event.ServiceFoundEventType,
				found,
			)

			defer props.Core.RemoveEventListener(listenerID)

			go func() {
				for evt := range found {
					if result, ok := evt.Payload.(*scan.Result); ok {
						log.Info().
							Str("target", result.Target).
							Int("port", result.Port).
							Str("service", result.Service).
							Msg("service found")
					}
				}
			}()

			summary, err := props.Core.Scan(ctx)

			if err != nil {
				return err
			}

			if err := output.NewFormatter(format).Render(cmd.OutOrStdout(), summary.Results); err != nil {
				return err
			}

			log.Info().
				Int("attempted", summary.TotalAttempted).
				Int("open", summary.OpenCount).
				Int("filtered", summary.FilteredCount).
				Int("errors", summary.ErrorCount).
				Dur("elapsed", summary.Elapsed).
				Msg("scan complete")

			return nil
		},
	}

	// Persistent flags available to all commands
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show debug logs")
	cmd.PersistentFlags().BoolVar(&silent, "silent", false, "disables all logging")

	cmd.Flags().StringSliceVarP(&targets, "target", "t", []string{}, "target host, CIDR, or ip range (repeatable)")
	cmd.Flags().StringVarP(&hostsFile, "hosts-file", "f", "", "file of targets, one or more per line")
	cmd.Flags().StringVarP(&ports, "ports", "p", "common", "ports to probe: list, range, or \"common\"")
	cmd.Flags().IntVar(&timeout, "timeout", 3, "per-attempt timeout in seconds")
	cmd.Flags().IntVar(&retries, "retries", 1, "retries per port after the first attempt")
	cmd.Flags().IntVar(&rateLimit, "rate-limit", 100, "max concurrent probes in flight")
	cmd.Flags().StringVarP(&outputFormat, "output", "o", "text", "output format: text, csv, or json")

	cmd.AddCommand(version())
	cmd.AddCommand(clean())
	cmd.AddCommand(configs(props))
	cmd.AddCommand(services(props))

	return cmd
}
