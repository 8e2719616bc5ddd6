package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"hrmon/internal/bootstrap"
	monitordto "hrmon/internal/modules/monitor/dto"
	"hrmon/internal/platform/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type rootFlags struct {
	configPath string
	simulate   bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:           "hrmon",
		Short:         "Bluetooth heart-rate monitor",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flags.configPath, "config", "hrmon.yaml", "config file (optional)")
	root.PersistentFlags().BoolVar(&flags.simulate, "simulate", false, "use a simulated sensor instead of Bluetooth")

	root.AddCommand(newTUICmd(flags))
	root.AddCommand(newServeCmd(flags))
	root.AddCommand(newWatchCmd(flags))
	root.AddCommand(newGuideCmd(flags))
	return root
}

func loadApp(flags *rootFlags, console bool) (*bootstrap.App, error) {
	cfg, err := config.New(flags.configPath)
	if err != nil {
		return nil, err
	}
	if flags.simulate {
		cfg.Simulate = true
	}
	return bootstrap.New(cfg, console)
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func newTUICmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, err := loadApp(flags, false)
			if err != nil {
				return err
			}
			defer app.Close()

			ctx, stop := signalContext()
			defer stop()
			return bootstrap.RunTUI(ctx, app)
		},
	}
}

func newServeCmd(flags *rootFlags) *cobra.Command {
	var addr string
	var noBrowser bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the monitor as a local web page",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, err := loadApp(flags, true)
			if err != nil {
				return err
			}
			defer app.Close()
			if addr != "" {
				app.Config.Web.Addr = addr
			}
			if noBrowser {
				app.Config.Web.OpenBrowser = false
			}

			ctx, stop := signalContext()
			defer stop()
			return bootstrap.Serve(ctx, app)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides web.addr)")
	cmd.Flags().BoolVar(&noBrowser, "no-browser", false, "do not open a browser")
	return cmd
}

func newWatchCmd(flags *rootFlags) *cobra.Command {
	var address, name string
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Stream heart-rate samples to stdout until interrupted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(flags, true)
			if err != nil {
				return err
			}
			defer app.Close()

			if !cmd.Flags().Changed("address") {
				address = app.Config.Scan.Address
			}
			if !cmd.Flags().Changed("name") {
				name = app.Config.Scan.Name
			}
			if !cmd.Flags().Changed("timeout") {
				timeout = app.Config.Scan.Timeout
			}

			ctx, stop := signalContext()
			defer stop()

			out := cmd.OutOrStdout()
			started, err := app.MonitorCLI.Watch(ctx, address, name, timeout, printListener{w: out})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(out, "streaming from %s (session %s), ctrl+c to stop\n", started.DeviceName, started.SessionID)

			<-ctx.Done()
			snap, err := app.MonitorCLI.Snapshot(context.Background())
			if err != nil {
				return err
			}
			printSummary(out, snap)
			return nil
		},
	}
	cmd.Flags().StringVar(&address, "address", "", "only connect to this peripheral address")
	cmd.Flags().StringVar(&name, "name", "", "only connect to a peripheral with this local name")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "give up scanning after this long (0 waits)")
	return cmd
}

func newGuideCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "guide",
		Short: "Print the onboarding guide",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(flags, true)
			if err != nil {
				return err
			}
			defer app.Close()

			pages, err := app.GuideCLI.Pages(context.Background())
			if err != nil {
				return err
			}
			for _, p := range pages {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d/%d  %s\n      %s\n", p.Index+1, len(pages), p.Title, p.Description)
			}
			return nil
		},
	}
}

type printListener struct{ w io.Writer }

func (l printListener) DeviceSelected(device monitordto.DeviceOutput) {
	_, _ = fmt.Fprintf(l.w, "selected %s (%s)\n", device.Name, device.Address)
}

func (l printListener) SampleReceived(sample monitordto.SampleOutput) {
	_, _ = fmt.Fprintf(l.w, "%s\t%d bpm\t%s\n", sample.At.Format("15:04:05"), sample.BPM, sample.Zone)
}

func printSummary(w io.Writer, snap monitordto.SessionOutput) {
	if snap.Stats.Count == 0 {
		_, _ = fmt.Fprintln(w, "no samples")
		return
	}
	_, _ = fmt.Fprintf(w, "%d samples  min %d  max %d  mean %.1f  last %d\n",
		snap.Stats.Count, snap.Stats.Min, snap.Stats.Max, snap.Stats.Mean, snap.Stats.Last)
}
