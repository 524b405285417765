package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/devskill-org/lxpclient/internal/cliutil"
	"github.com/devskill-org/lxpclient/scanner"
)

func newScanCmd() *cobra.Command {
	var timeout float64
	var concurrency int
	var verifyModbus bool
	var lookupMAC bool
	var quiet bool

	cmd := &cobra.Command{
		Use:   "scan <ip-range>",
		Short: "Scan a LAN range for Modbus-TCP and dongle devices",
		Long: `Scan probes every host in ip-range (a single address, CIDR block,
or "start-end" dash range) on ports 502 and 8000, optionally verifying
Modbus responders against this library's own decoder stack.

  lxpctl scan 192.168.1.0/24
  lxpctl scan 192.168.1.100-192.168.1.150`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := scanner.DefaultConfig(args[0])
			cfg.Timeout = timeout
			cfg.Concurrency = concurrency
			cfg.VerifyModbus = verifyModbus
			cfg.LookupMAC = lookupMAC

			progress := func(p scanner.Progress) {
				if !quiet {
					fmt.Fprintf(cmd.ErrOrStderr(), "\rscanned %d/%d hosts, %d found", p.Scanned, p.TotalHosts, p.Found)
				}
			}

			s := scanner.New(cfg, progress)
			results, err := s.Scan(cmd.Context())
			if err != nil {
				return err
			}

			t := cliutil.NewTable("IP", "PORT", "TYPE", "SERIAL", "FAMILY", "FIRMWARE", "MAC")
			for r := range results {
				deviceType := string(r.DeviceType)
				if r.IsVerified() {
					deviceType = cliutil.Green(deviceType)
				} else if r.Error != "" {
					deviceType = cliutil.Red(deviceType)
				}
				t.Row(r.IP, strconv.Itoa(r.Port), deviceType, r.Serial, r.ModelFamily, r.FirmwareVersion, r.MACAddress)
			}
			if !quiet {
				fmt.Fprintln(cmd.ErrOrStderr())
			}
			t.Flush()
			return nil
		},
	}

	cmd.Flags().Float64Var(&timeout, "timeout", 2.0, "per-host probe timeout in seconds")
	cmd.Flags().IntVar(&concurrency, "concurrency", 50, "maximum concurrent probes")
	cmd.Flags().BoolVar(&verifyModbus, "verify", true, "verify Modbus responders via this library's decoder stack")
	cmd.Flags().BoolVar(&lookupMAC, "mac", true, "look up MAC addresses and vendor OUIs")
	cmd.Flags().BoolVar(&quiet, "quiet", false, "suppress progress output")
	return cmd
}
