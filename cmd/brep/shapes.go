package main

import (
	"fmt"
	"math"

	"github.com/shicaiyuan/brep/form"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/spatial/r3"
)

var sheetCmd = &cobra.Command{
	Use:   "sheet",
	Short: "Build an open rectangular sheet",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w, _ := cmd.Flags().GetFloat64("width")
		h, _ := cmd.Flags().GetFloat64("height")
		s, err := form.Sheet(w, h, builderOptions()...)
		if err != nil {
			return err
		}
		return finish(cmd.OutOrStdout(), s)
	},
}

var boxCmd = &cobra.Command{
	Use:   "box",
	Short: "Build a closed box centered at the origin",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		size, _ := cmd.Flags().GetFloat64Slice("size")
		if len(size) != 3 {
			return fmt.Errorf("size needs 3 values, got %d", len(size))
		}
		s, err := form.Box(r3.Vec{X: size[0], Y: size[1], Z: size[2]}, builderOptions()...)
		if err != nil {
			return err
		}
		return finish(cmd.OutOrStdout(), s)
	},
}

var sectorCmd = &cobra.Command{
	Use:   "sector",
	Short: "Build a flat circular sector bounded by a trimmed arc",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, _ := cmd.Flags().GetFloat64("radius")
		deg, _ := cmd.Flags().GetFloat64("angle")
		s, err := form.Sector(r, deg*math.Pi/180, builderOptions()...)
		if err != nil {
			return err
		}
		return finish(cmd.OutOrStdout(), s)
	},
}

func init() {
	sheetCmd.Flags().Float64("width", 1, "sheet width along X")
	sheetCmd.Flags().Float64("height", 1, "sheet height along Y")
	boxCmd.Flags().Float64Slice("size", []float64{1, 1, 1}, "box size along X,Y,Z")
	sectorCmd.Flags().Float64("radius", 1, "sector radius")
	sectorCmd.Flags().Float64("angle", 90, "sector angle in degrees")
	rootCmd.AddCommand(sheetCmd, boxCmd, sectorCmd)
}
