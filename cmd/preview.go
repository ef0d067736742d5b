package cmd

import (
	"dakota/config"
	"dakota/services/slideshow"
	"dakota/services/slideshow/terminal"

	"github.com/spf13/cobra"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Play the configured hero slideshow in the terminal.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.AppConfig

		interval, _ := cmd.Flags().GetDuration("interval")
		if interval <= 0 {
			interval = cfg.SlideshowInterval()
		}
		noAutoplay, _ := cmd.Flags().GetBool("no-autoplay")

		return terminal.Run(cfg.Slides, slideshow.Options{
			Autoplay:       cfg.SlideshowAutoplay && !noAutoplay,
			Interval:       interval,
			SwipeThreshold: cfg.SlideshowSwipeThreshold,
		})
	},
}

func init() {
	rootCmd.AddCommand(previewCmd)
	previewCmd.Flags().Duration("interval", 0, "Autoplay interval (defaults to SLIDESHOW_INTERVAL_MS)")
	previewCmd.Flags().Bool("no-autoplay", false, "Start with autoplay disabled")
}
