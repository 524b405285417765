// lxpctl — command-line client for Luxpower/EG4 hybrid inverters and
// grid-interface devices.
//
// lxpctl dials one of three transports (cloud, Modbus-TCP, or dongle),
// read by read_runtime/read_energy/read_battery, writes held parameters,
// runs the identity probe standalone, or scans a LAN for devices.
//
// Usage:
//
//	lxpctl read --config device.json runtime
//	lxpctl write --config device.json 21=50
//	lxpctl discover --config device.json
//	lxpctl scan 192.168.1.0/24
//	lxpctl login --account me@example.com
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configFile string

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:               "lxpctl",
	Short:             "Command-line client for Luxpower/EG4 inverters and grid-interface devices",
	SilenceUsage:      true,
	SilenceErrors:     true,
	CompletionOptions: cobra.CompletionOptions{HiddenDefaultCmd: true},
	Long: `lxpctl talks to Luxpower/EG4 hybrid inverters and GridBoss
grid-interface devices over any of three transports: cloud monitoring API,
Modbus-TCP, or the proprietary dongle protocol.

  lxpctl read --config device.json runtime
  lxpctl read --config device.json energy battery
  lxpctl write --config device.json 21=50 64=1
  lxpctl discover --config device.json
  lxpctl scan 192.168.1.0/24
  lxpctl login --account me@example.com`,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "device.json", "device config file path")

	rootCmd.AddCommand(
		newReadCmd(),
		newWriteCmd(),
		newDiscoverCmd(),
		newScanCmd(),
		newLoginCmd(),
	)
}
