package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/devskill-org/lxpclient/config"
	"github.com/devskill-org/lxpclient/transport"
)

func newWriteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "write key=value...",
		Short: "Write one or more held parameters",
		Long: `Write parses each key=value argument and passes them all to one
WriteParameters call. For Modbus and dongle transports, key is a register
address in decimal, and each run of consecutive addresses goes out as one
multi-register write; for the cloud transport, key is the parameter's
canonical hold-parameter name, and each parameter is written separately.

  lxpctl write --config device.json 21=50
  lxpctl write --config device.json 21=50 64=1`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configFile)
			if err != nil {
				return err
			}
			t, err := config.NewTransport(cfg)
			if err != nil {
				return err
			}

			updates := transport.ParameterMap{}
			for _, arg := range args {
				key, val, ok := strings.Cut(arg, "=")
				if !ok {
					return fmt.Errorf("invalid key=value pair: %s", arg)
				}
				n, err := strconv.Atoi(val)
				if err != nil {
					return fmt.Errorf("invalid value for %s: %w", key, err)
				}
				updates[key] = n
			}

			ctx := cmd.Context()
			if err := t.Connect(ctx); err != nil {
				return fmt.Errorf("connect: %w", err)
			}
			defer t.Disconnect(ctx)

			if err := t.WriteParameters(ctx, updates); err != nil {
				return fmt.Errorf("write_parameters: %w", err)
			}
			fmt.Printf("wrote %d parameter(s)\n", len(updates))
			return nil
		},
	}
	return cmd
}
