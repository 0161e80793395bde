package main

import (
	"fmt"
	"os"

	"github.com/shicaiyuan/brep/render"
	"github.com/spf13/cobra"
)

var tolerance float64

var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Build a shell from the triangles of a binary STL file",
	Long: `Read a binary STL file, weld coincident corners and build a shell with one
face per triangle. Open boundaries are closed with capping faces.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

var stlCmd = &cobra.Command{
	Use:   "stl [in] [out]",
	Short: "Rebuild an STL model as a shell and write its tessellation",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		output = args[1]
		return runImport(cmd, args[:1])
	},
}

func init() {
	for _, c := range []*cobra.Command{importCmd, stlCmd} {
		c.Flags().Float64Var(&tolerance, "tol", 1e-6, "distance under which corners are welded")
	}
	rootCmd.AddCommand(importCmd, stlCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	fp, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer fp.Close()
	model, err := render.ReadSTL(fp)
	if err != nil {
		if model == nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
	}
	s, err := render.ImportShell(model, tolerance, builderOptions()...)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Triangles: %d\n", len(model))
	return finish(cmd.OutOrStdout(), s)
}
