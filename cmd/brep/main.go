// Command brep builds boundary representation shells and exports their
// tessellation as binary STL.
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/shicaiyuan/brep"
	"github.com/shicaiyuan/brep/render"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	output  string
)

var rootCmd = &cobra.Command{
	Use:   "brep",
	Short: "Build B-rep shells and export them as STL",
	Long: `brep assembles boundary representation shells from faces, loops and
edges, closes open boundaries with capping faces and writes the
tessellated result as a binary STL file.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log builder passes to stderr")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "", "write the tessellated shell to this STL file")
}

func main() {
	log.SetFlags(0)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// builderOptions returns the options every command builds shells with.
func builderOptions() []brep.BuilderOption {
	if !verbose {
		return nil
	}
	return []brep.BuilderOption{brep.WithLogger(log.New(os.Stderr, "brep: ", 0))}
}

// finish reports on s and writes it to the output file if one was given.
func finish(w io.Writer, s *brep.Shell) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("invalid shell: %w", err)
	}
	st := s.Stats()
	b := s.Bounds()
	fmt.Fprintf(w, "Faces: %d (%d capping)\n", st.Faces, st.CapFaces)
	fmt.Fprintf(w, "Loops: %d\n", st.Loops)
	fmt.Fprintf(w, "Edges: %d (%d half-edges)\n", st.Edges, st.HalfEdges)
	if !b.Empty() {
		fmt.Fprintf(w, "Bounds: %.6g to %.6g (size %.6g)\n", b.Min, b.Max, b.Size())
	}
	if output == "" {
		return nil
	}
	if err := render.CreateSTL(output, render.NewShellRenderer(s)); err != nil {
		return err
	}
	log.Printf("wrote %s", output)
	return nil
}
