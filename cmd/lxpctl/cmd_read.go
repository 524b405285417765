package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/devskill-org/lxpclient/config"
)

func newReadCmd() *cobra.Command {
	var individual bool

	cmd := &cobra.Command{
		Use:   "read [runtime|energy|battery|gridinterface|identity]...",
		Short: "Read one or more record kinds from the configured device",
		Long: `Read decodes and prints the requested record kinds as JSON.
With no arguments, prints identity and reads runtime, energy, and battery
(gridinterface instead of runtime/battery when the device's family is
GRIDBOSS_MID).`,
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

			kinds := args
			if len(kinds) == 0 {
				if t.Identity().Family.IsGridInterface() {
					kinds = []string{"identity", "gridinterface", "energy"}
				} else {
					kinds = []string{"identity", "runtime", "energy", "battery"}
				}
			}

			out := map[string]any{}
			for _, kind := range kinds {
				switch kind {
				case "identity":
					out["identity"] = t.Identity()
				case "runtime":
					rec, err := t.ReadRuntime(ctx)
					if err != nil {
						return fmt.Errorf("read_runtime: %w", err)
					}
					out["runtime"] = rec
				case "energy":
					rec, err := t.ReadEnergy(ctx)
					if err != nil {
						return fmt.Errorf("read_energy: %w", err)
					}
					out["energy"] = rec
				case "battery":
					rec, err := t.ReadBattery(ctx, individual)
					if err != nil {
						return fmt.Errorf("read_battery: %w", err)
					}
					out["battery"] = rec
				case "gridinterface":
					rec, err := t.ReadGridInterfaceRuntime(ctx)
					if err != nil {
						return fmt.Errorf("read_grid_interface_runtime: %w", err)
					}
					out["gridinterface"] = rec
				default:
					return fmt.Errorf("unknown record kind: %s (want runtime, energy, battery, gridinterface, or identity)", kind)
				}
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}

	cmd.Flags().BoolVar(&individual, "individual", false, "include individually-reportable battery modules")
	return cmd
}
