package main

import (
	"fmt"
	"log"
	"os"

	"github.com/esimov/graymap"
	"github.com/spf13/cobra"
)

var identifyCmd = &cobra.Command{
	Use:   "identify [file]",
	Short: "Inspect the header of a PPM image",
	Args:  cobra.ExactArgs(1),
	RunE:  runIdentify,
}

func init() {
	rootCmd.AddCommand(identifyCmd)
}

func runIdentify(cmd *cobra.Command, args []string) error {
	path := args[0]
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("could not close the opened file: %v", err)
		}
	}()

	h, err := graymap.DecodeConfig(f)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	fs, err := f.Stat()
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "File:       %s\n", path)
	fmt.Fprintf(w, "Format:     binary pixmap (P6)\n")
	fmt.Fprintf(w, "Dimensions: %d x %d\n", h.Width, h.Height)
	fmt.Fprintf(w, "Max value:  %d\n", h.MaxVal)
	fmt.Fprintf(w, "File size:  %d bytes\n", fs.Size())
	return nil
}
