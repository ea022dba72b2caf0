package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/esimov/graymap"
	"github.com/spf13/cobra"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Convert a numbered series of PPM images, printing the conversion time of each",
	Long: `Convert the images named by a numbering pattern, e.g. JX0.ppm ... JX9.ppm
into JX0.pgm ... JX9.pgm. For every image a "<index>\t<milliseconds>" line
is printed on stdout. The run stops at the first failing image unless
--keep-going is given.`,
	Args: cobra.NoArgs,
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().String("dir", ".", "Directory holding the images")
	batchCmd.Flags().String("pattern", graymap.DefaultPattern, "File name pattern with a single %d index verb")
	batchCmd.Flags().Int("first", 0, "First image index")
	batchCmd.Flags().Int("last", 9, "Last image index")
	batchCmd.Flags().String("src-ext", graymap.DefaultSrcExt, "Source file extension")
	batchCmd.Flags().String("dst-ext", graymap.DefaultDstExt, "Destination file extension")
	batchCmd.Flags().String("creator", graymap.DefaultCreator, "Tool identifier written into the PGM header")
	batchCmd.Flags().Int("workers", 1, "Number of images to convert concurrently")
	batchCmd.Flags().Bool("keep-going", false, "Continue with the remaining images after a failure")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	dir, _ := cmd.Flags().GetString("dir")
	pattern, _ := cmd.Flags().GetString("pattern")
	first, _ := cmd.Flags().GetInt("first")
	last, _ := cmd.Flags().GetInt("last")
	srcExt, _ := cmd.Flags().GetString("src-ext")
	dstExt, _ := cmd.Flags().GetString("dst-ext")
	creator, _ := cmd.Flags().GetString("creator")
	workers, _ := cmd.Flags().GetInt("workers")
	keepGoing, _ := cmd.Flags().GetBool("keep-going")

	jobs, err := graymap.PatternJobs(dir, pattern, first, last, srcExt, dstExt)
	if err != nil {
		return err
	}

	proc := &graymap.Processor{Creator: creator}
	if !isTerminal(cmd.OutOrStdout()) {
		proc.Spinner = newSpinner(cmd, fmt.Sprintf("converting %d images...", len(jobs)))
	}

	now := time.Now()
	err = proc.Execute(cmd.Context(), &graymap.Ops{
		Jobs:      jobs,
		Workers:   workers,
		KeepGoing: keepGoing,
		Out:       cmd.OutOrStdout(),
		Err:       cmd.ErrOrStderr(),
	})
	if err != nil {
		return batchError(err, keepGoing)
	}
	printElapsed(cmd, time.Since(now))
	return nil
}

// batchError summarizes a failed batch run. The failing images are
// already reported one by one, except on cancellation.
func batchError(err error, keepGoing bool) error {
	switch {
	case errors.Is(err, context.Canceled):
		return errors.New("batch conversion interrupted")
	case keepGoing:
		return errors.New("some images could not be converted")
	default:
		return errors.New("batch conversion aborted")
	}
}
