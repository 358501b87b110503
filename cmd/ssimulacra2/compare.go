package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/imazen/ssimulacra2"
	"github.com/imazen/ssimulacra2/internal/dsp"
	"github.com/imazen/ssimulacra2/internal/imageio"
)

func newCompareCmd() *cobra.Command {
	var (
		backend     string
		resize      bool
		showDetails bool
	)

	cmd := &cobra.Command{
		Use:   "compare <reference> <distorted>",
		Short: "Score a distorted image against a reference image",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := parseBackend(backend)
			if err != nil {
				return err
			}

			refImg, err := imageio.Load(args[0])
			if err != nil {
				return err
			}
			distImg, err := imageio.Load(args[1])
			if err != nil {
				return err
			}

			rb := refImg.Bounds()
			if resize {
				distImg = imageio.ResizeToMatch(distImg, rb.Dx(), rb.Dy())
			}

			refInput, err := imageio.ToInput(refImg)
			if err != nil {
				return err
			}
			distInput, err := imageio.ToInput(distImg)
			if err != nil {
				return err
			}

			cfg := ssimulacra2.DefaultConfig()
			cfg.BlurBackend = b

			if showDetails {
				reference, err := ssimulacra2.NewReference(refInput, cfg)
				if err != nil {
					return err
				}
				bd, err := reference.Breakdown(distInput)
				if err != nil {
					return err
				}
				printBreakdown(cmd, bd)
				return nil
			}

			score, err := ssimulacra2.Score(refInput, distInput, cfg)
			if err != nil {
				return err
			}
			cmd.Println(score)
			return nil
		},
	}

	cmd.Flags().StringVar(&backend, "backend", "intrinsics", "blur backend: scalar, simd, or intrinsics")
	cmd.Flags().BoolVar(&resize, "resize-to-match", false, "resize the distorted image to the reference's dimensions before scoring")
	cmd.Flags().BoolVar(&showDetails, "details", false, "print a per-scale breakdown instead of a single score")
	return cmd
}

func parseBackend(s string) (dsp.Backend, error) {
	switch s {
	case "scalar":
		return dsp.BackendScalar, nil
	case "simd":
		return dsp.BackendSIMD, nil
	case "intrinsics", "":
		return dsp.BackendIntrinsics, nil
	default:
		return 0, fmt.Errorf("unknown backend %q (want scalar, simd, or intrinsics)", s)
	}
}

func printBreakdown(cmd *cobra.Command, bd ssimulacra2.Breakdown) {
	cmd.Printf("score:          %.4f\n", bd.Score)
	cmd.Printf("mean ssim:      %.4f\n", bd.MeanSSIM)
	cmd.Printf("ssim stddev:    %.4f\n", bd.StdDevSSIM)
	cmd.Printf("mean edge diff: %.4f\n", bd.MeanEdgeDiff)
	for _, s := range bd.Scales {
		cmd.Printf("  scale %d: ssim=%.4f edge=%.4f\n", s.Scale, s.SSIMMeanAvg, s.EdgeMeanAvg)
	}
}
