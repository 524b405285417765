package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/devskill-org/lxpclient/config"
	"github.com/devskill-org/lxpclient/device"
	"github.com/devskill-org/lxpclient/discovery"
)

func newDiscoverCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "discover",
		Short: "Connect and run the identity probe, printing family/serial/firmware",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configFile)
			if err != nil {
				return err
			}
			t, err := config.NewTransport(cfg)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if err := t.Connect(ctx); err != nil {
				return fmt.Errorf("connect: %w", err)
			}
			defer t.Disconnect(ctx)

			family := device.ParseFamily(cfg.Family)
			result, err := discovery.Discover(ctx, t, cfg.ExpectedSerial, family)
			if err != nil {
				return fmt.Errorf("discover: %w", err)
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}
	return cmd
}
