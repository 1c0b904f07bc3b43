package main

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"finboard/internal/core"
)

type effectiveConfig struct {
	Platform string `yaml:"platform"`
	Swipe    struct {
		DistanceThreshold       float64 `yaml:"distance_threshold"`
		LeftSnapDistance        float64 `yaml:"left_snap_distance"`
		RightSnapDistance       float64 `yaml:"right_snap_distance"`
		DampingFactor           float64 `yaml:"damping_factor"`
		FastVelocityThreshold   float64 `yaml:"fast_velocity_threshold"`
		FastThresholdMultiplier float64 `yaml:"fast_threshold_multiplier"`
	} `yaml:"swipe"`
	LongPressDelayMs int64   `yaml:"long_press_delay_ms"`
	HintDelayMs      int64   `yaml:"hint_delay_ms"`
	HintDistance     float64 `yaml:"hint_distance"`
	AmountSample     string  `yaml:"amount_sample"`
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective gesture configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			defer a.Close()

			ic := a.cfg.Interaction()
			var out effectiveConfig
			out.Platform = ic.Platform.String()
			out.Swipe.DistanceThreshold = ic.Swipe.DistanceThreshold
			out.Swipe.LeftSnapDistance = ic.Swipe.LeftSnapDistance
			out.Swipe.RightSnapDistance = ic.Swipe.RightSnapDistance
			out.Swipe.DampingFactor = ic.Swipe.DampingFactor
			out.Swipe.FastVelocityThreshold = ic.Swipe.FastVelocityThreshold
			out.Swipe.FastThresholdMultiplier = ic.Swipe.FastThresholdMultiplier
			out.LongPressDelayMs = ic.LongPress.Delay.Milliseconds()
			out.HintDelayMs = ic.HintDelay.Milliseconds()
			out.HintDistance = ic.HintDistance
			out.AmountSample = a.formatter.Format(core.Money{Cents: 123450})

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(out); err != nil {
				return err
			}
			return enc.Close()
		},
	}
}
