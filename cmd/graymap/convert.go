package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/esimov/graymap"
	"github.com/esimov/graymap/utils"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a PPM image (or a directory of PPM images) to PGM",
	RunE:  runConvert,
}

func init() {
	convertCmd.Flags().StringP("input", "i", graymap.PipeName, "Source PPM file, URL or directory (`-` for stdin)")
	convertCmd.Flags().StringP("output", "o", graymap.PipeName, "Destination PGM file or directory (`-` for stdout)")
	convertCmd.Flags().String("creator", graymap.DefaultCreator, "Tool identifier written into the PGM header")
	convertCmd.Flags().Int("workers", 1, "Number of files to convert concurrently (directory input)")
	convertCmd.Flags().Bool("keep-going", false, "Continue with the remaining files after a failure (directory input)")
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	src, _ := cmd.Flags().GetString("input")
	dst, _ := cmd.Flags().GetString("output")
	creator, _ := cmd.Flags().GetString("creator")
	workers, _ := cmd.Flags().GetInt("workers")
	keepGoing, _ := cmd.Flags().GetBool("keep-going")

	proc := &graymap.Processor{Creator: creator}
	now := time.Now()

	if src != graymap.PipeName && !utils.IsValidUrl(src) {
		fs, err := os.Stat(src)
		if err != nil {
			return fmt.Errorf("failed to load the source image: %w", err)
		}
		if fs.IsDir() {
			if dst == graymap.PipeName {
				return fmt.Errorf("a destination directory is required for the directory %s", src)
			}
			if err := os.MkdirAll(dst, 0755); err != nil {
				return fmt.Errorf("unable to create the destination directory: %w", err)
			}
			jobs, err := graymap.DirJobs(src, dst)
			if err != nil {
				return fmt.Errorf("unable to walk %s: %w", src, err)
			}
			// The per image report lines would interleave with the spinner frames.
			if !isTerminal(cmd.OutOrStdout()) {
				proc.Spinner = newSpinner(cmd, "converting the images...")
			}

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
	}

	spinner := newSpinner(cmd, "converting the image...")
	if spinner != nil {
		spinner.Start()
	}
	res, err := proc.Convert(src, dst)
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		return err
	}

	if dst != graymap.PipeName {
		fmt.Fprintf(cmd.ErrOrStderr(), "The %dx%d image has been saved as: %s\n",
			res.Width, res.Height,
			utils.DecorateText(filepath.Base(dst), utils.SuccessMessage),
		)
	}
	printElapsed(cmd, time.Since(now))
	return nil
}

// newSpinner returns a progress indicator when stderr is a terminal, nil otherwise.
func newSpinner(cmd *cobra.Command, msg string) *utils.Spinner {
	if !isTerminal(cmd.ErrOrStderr()) {
		return nil
	}
	text := fmt.Sprintf("%s %s",
		utils.DecorateText("⚡ GRAYMAP", utils.StatusMessage),
		utils.DecorateText(msg, utils.DefaultMessage),
	)
	return utils.NewSpinner(cmd.ErrOrStderr(), text, 80*time.Millisecond, true)
}

func printElapsed(cmd *cobra.Command, d time.Duration) {
	fmt.Fprintf(cmd.ErrOrStderr(), "Execution time: %s\n",
		utils.DecorateText(utils.FormatTime(d), utils.SuccessMessage),
	)
}

// isTerminal reports whether w is a file attached to a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
