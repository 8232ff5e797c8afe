package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/ecosnap-api/internal/errors"
	"github.com/KirkDiggler/ecosnap-api/internal/orchestrators/capture"
	"github.com/KirkDiggler/ecosnap-api/internal/orchestrators/progression"
)

var (
	captureLabels []string
	captureImage  string
	captureBypass bool
)

var captureCmd = &cobra.Command{
	Use:   "capture",
	Short: "Capture a species from a photo",
	Long: `Capture classifies a photo and unlocks or upgrades the matching card.
Labels stand in for the image classifier, strongest first.`,
	Example: `  ecosnap capture --label "Eastern Gray Squirrel" --label rodent
  ecosnap capture --image squirrel.jpg --label squirrel --bypass-cooldown`,
	RunE: runCapture,
}

func init() {
	captureCmd.Flags().StringArrayVar(&captureLabels, "label", nil, "classifier label, strongest first (repeatable)")
	captureCmd.Flags().StringVar(&captureImage, "image", "", "path to the photo")
	captureCmd.Flags().BoolVar(&captureBypass, "bypass-cooldown", false, "ignore the capture cooldown")
	_ = captureCmd.MarkFlagRequired("label")
}

func runCapture(cmd *cobra.Command, _ []string) error {
	var image []byte
	if captureImage != "" {
		data, err := os.ReadFile(captureImage)
		if err != nil {
			return errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to read image")
		}
		image = data
	}

	return withApp(cmd.Context(), func(a *app) error {
		svc, err := a.captureService(captureLabels)
		if err != nil {
			return err
		}

		out, err := svc.Capture(cmd.Context(), &capture.CaptureInput{
			Image:          image,
			BypassCooldown: captureBypass,
		})
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		descriptions := make([]string, len(out.Labels))
		for i, label := range out.Labels {
			descriptions[i] = fmt.Sprintf("%s (%.2f)", label.Description, label.Score)
		}
		fmt.Fprintf(w, "Labels: %s\n", strings.Join(descriptions, ", "))
		fmt.Fprintln(w, capture.Banner(out))
		printCaptureCard(w, out)
		return nil
	})
}

// printCaptureCard shows the captured card as it stands after the capture
func printCaptureCard(w io.Writer, out *capture.CaptureOutput) {
	if out == nil || !out.Matched() {
		return
	}

	base := out.Outcome.Base()
	stats, bonus := progression.DescribeStats(base.Species, base.Card)

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s (%s)\n", base.Species.CommonName, base.Species.ScientificName)
	fmt.Fprintf(w, "Lv %d (+%d%%)  %s\n", base.Card.Level, bonus, formatStats(stats))
	fmt.Fprintf(w, "Copies %d, %d more for the next level\n", base.Card.CopiesOwned, progression.NeededForNextUpgrade(base.Card))
	if base.Species.FunFact != "" {
		fmt.Fprintln(w, base.Species.FunFact)
	}
}
