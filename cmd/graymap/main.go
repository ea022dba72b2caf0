package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/esimov/graymap/utils"
	"github.com/spf13/cobra"
)

const helpBanner = `
┌─┐┬─┐┌─┐┬ ┬┌┬┐┌─┐┌─┐
│ ┬├┬┘├─┤└┬┘│││├─┤├─┘
└─┘┴└─┴ ┴ ┴ ┴ ┴┴ ┴┴

Binary pixmap (P6) to graymap (P5) converter.
    Version: %s
`

// Version indicates the current build version.
var Version string

var rootCmd = &cobra.Command{
	Use:           "graymap",
	Short:         "Convert binary PPM images to grayscale PGM images",
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	rootCmd.Long = fmt.Sprintf(helpBanner, Version)
	rootCmd.Version = Version
}

func main() {
	log.SetFlags(0)

	// Capture CTRL-C signal, the running conversions finish and the spinner restores the cursor.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		log.Fatal(utils.DecorateText(fmt.Sprintf("Error: %v", err), utils.ErrorMessage))
	}
}
