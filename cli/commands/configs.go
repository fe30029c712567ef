package commands

import (
	"fmt"
	"strings"

	"github.com/lanehart/udpscout/internal/config"
	"github.com/lanehart/udpscout/internal/target"
	"github.com/spf13/cobra"
)

// creates and returns the "configs" command and its sub-commands
func configs(props *CommandProps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "configs",
		Short: "List and manage scan profiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			confs, err := props.Core.GetConfigs()

			if err != nil {
				return err
			}

			active := props.Core.Conf()

			out := cmd.OutOrStdout()

			for _, conf := range confs {
				marker := " "

				if conf.Name == active.Name {
					marker = "*"
				}

				fmt.Fprintf(
					out,
					"%s %s\n    targets: %s\n    ports: %s\n    timeout: %ds  retries: %d  rate-limit: %d  output: %s\n",
					marker,
					conf.Name,
					strings.Join(conf.Targets, ", "),
					portList(conf.Ports),
					conf.TimeoutSeconds,
					conf.Retries,
					conf.RateLimit,
					conf.Output,
				)
			}

			return nil
		},
	}

	cmd.AddCommand(configsCreate(props))
	cmd.AddCommand(configsSet(props))
	cmd.AddCommand(configsDelete(props))

	return cmd
}

func configsCreate(props *CommandProps) *cobra.Command {
	var targets []string
	var ports string
	var timeout int
	var retries int
	var rateLimit int
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a new scan profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conf := config.Config{Name: args[0], Targets: targets}

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

			return props.Core.CreateConfig(conf)
		},
	}

	cmd.Flags().StringSliceVarP(&targets, "target", "t", []string{}, "target host, CIDR, or ip range (repeatable)")
	cmd.Flags().StringVarP(&ports, "ports", "p", "common", "ports to probe: list, range, or \"common\"")
	cmd.Flags().IntVar(&timeout, "timeout", 3, "per-attempt timeout in seconds")
	cmd.Flags().IntVar(&retries, "retries", 1, "retries per port after the first attempt")
	cmd.Flags().IntVar(&rateLimit, "rate-limit", 100, "max concurrent probes in flight")
	cmd.Flags().StringVarP(&outputFormat, "output", "o", "text", "output format: text, csv, or json")

	return cmd
}

func configsSet(props *CommandProps) *cobra.Command {
	return &cobra.Command{
		Use:   "set <name>",
		Short: "Make the named profile the active one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return props.Core.SetConfig(args[0])
		},
	}
}

func configsDelete(props *CommandProps) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete the named profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return props.Core.DeleteConfig(args[0])
		},
	}
}

func portList(ports []int) string {
	parts := make([]string, len(ports))

	for i, p := range ports {
		parts[i] = fmt.Sprintf("%d", p)
	}

	return strings.Join(parts, ", ")
}
