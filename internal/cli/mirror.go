package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/thecube"
	"github.com/SeamusWaldron/thecube/internal/animation"
	"github.com/SeamusWaldron/thecube/internal/ble"
	"github.com/SeamusWaldron/thecube/internal/mirror"
	"github.com/SeamusWaldron/thecube/pkg/types"
)

var (
	mirrorAddress  string
	mirrorScanTime time.Duration
	mirrorReset    bool
)

var mirrorCmd = &cobra.Command{
	Use:   "mirror",
	Short: "Mirror a GoCube smart cube",
	Long: `Connect to a GoCube over Bluetooth and replay its turns on the simulated cube.

Start with the physical cube solved, or pass --reset to tell the cube its
current state is solved. Press Ctrl+C to stop.`,
	RunE: runMirror,
}

func init() {
	rootCmd.AddCommand(mirrorCmd)
	mirrorCmd.Flags().StringVar(&mirrorAddress, "address", "", "Device address (default: first GoCube found)")
	mirrorCmd.Flags().DurationVar(&mirrorScanTime, "scan", 5*time.Second, "Scan duration")
	mirrorCmd.Flags().BoolVar(&mirrorReset, "reset", false, "Mark the physical cube as solved after connecting")
}

func runMirror(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	client, err := ble.NewClient(ble.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("BLE not available: %w", err)
	}
	if err := connect(ctx, client); err != nil {
		return err
	}
	defer client.Disconnect()

	if mirrorReset {
		if err := client.ResetSolved(); err != nil {
			return err
		}
	}

	loop := animation.NewLoop(animation.WithLoopLogger(logger))
	g, err := thecube.New(
		thecube.WithPreferences(prefs),
		thecube.WithScheduler(loop.Scheduler()),
		thecube.WithLogger(logger),
	)
	if err != nil {
		return err
	}
	defer g.Close()

	out := cmd.OutOrStdout()
	// No timed game runs while mirroring, so the solved hook reports directly.
	g.Controls().OnSolved(func() {
		fmt.Fprintln(out, phaseStyle.Render("SOLVED"))
		if err := client.FlashBacklight(); err != nil {
			logger.Warn().Err(err).Msg("flash backlight")
		}
	})

	m := mirror.New(g.Controls(), loop, mirror.WithLogger(logger))
	m.OnMove(func(mv types.Move) {
		fmt.Fprintln(out, moveStyle.Render(mv.Notation()))
	})
	m.Attach(ctx, client)

	fmt.Fprintf(out, "Mirroring %s, press Ctrl+C to stop\n", client.DeviceName())
	if err := loop.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	fmt.Fprintf(out, "%d moves mirrored\n", len(m.Moves()))
	return nil
}

func connect(ctx context.Context, client *ble.Client) error {
	if mirrorAddress != "" {
		return client.Connect(ctx, mirrorAddress)
	}

	fmt.Println("Scanning for GoCube devices...")
	results, err := client.Scan(ctx, mirrorScanTime)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		return errors.New("no GoCube devices found; rotate the cube to wake it up and try again")
	}
	fmt.Printf("Found: %s\n", results[0].Name)
	return client.ConnectResult(ctx, results[0])
}
