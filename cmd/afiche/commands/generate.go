package commands

import (
	"context"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/DANIELNAHUN/afiche-generator/errors"
	"github.com/DANIELNAHUN/afiche-generator/flyer"
	"github.com/DANIELNAHUN/afiche-generator/logger"
)

// GenerateCmd produces the three flyer variants once, without the server
var GenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the three flyer variants for one event",
	Long: `Run the generation pipeline once from the command line: fill both
templates with the event fields, convert them to PDF and produce the
large-format CMYK poster. Artifacts land in the configured storage
directory.`,
	RunE: runGenerate,
}

var (
	genProject   string
	genDate      string
	genTime      string
	genPlace     string
	genReference string
)

func init() {
	GenerateCmd.Flags().StringVar(&genProject, "project", "", "Project name used to derive artifact filenames")
	GenerateCmd.Flags().StringVar(&genDate, "date", "", "Event date, rendered verbatim")
	GenerateCmd.Flags().StringVar(&genTime, "time", "", "Event time, rendered verbatim")
	GenerateCmd.Flags().StringVar(&genPlace, "place", "", "Event place, rendered verbatim")
	GenerateCmd.Flags().StringVar(&genReference, "reference", "", "Optional location reference")
	GenerateCmd.MarkFlagRequired("project")
	GenerateCmd.MarkFlagRequired("date")
	GenerateCmd.MarkFlagRequired("time")
	GenerateCmd.MarkFlagRequired("place")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return errors.Wrap(err, "failed to load configuration")
	}

	fields := flyer.EventFields{
		Date:      genDate,
		Time:      genTime,
		Place:     genPlace,
		Reference: genReference,
	}
	if err := fields.Validate(); err != nil {
		return err
	}

	log := logger.Logger
	templates := flyer.NewTemplateSet(cfg.Templates)
	layout := flyer.NewLargeFormatTransformer(
		flyer.NewPdftoppmRenderer(cfg.Layout, log), cfg.Layout, log)

	generator, err := flyer.NewGenerator(
		flyer.NewSubstituter(templates, log),
		flyer.NewSofficeConverter(cfg.Converter, log),
		layout,
		cfg.Storage.Dir,
		cfg.Pipeline.VariantWorkers,
		log,
	)
	if err != nil {
		return err
	}

	spinner, _ := pterm.DefaultSpinner.Start("Generating flyer variants...")
	results := generator.GenerateAll(context.Background(), fields, genProject)
	spinner.Stop()

	failed := 0
	for _, res := range results {
		if res.Status == flyer.StatusSuccess {
			pterm.Success.Printf("%-14s %s\n", res.Type, res.Filename)
		} else {
			failed++
			pterm.Error.Printf("%-14s %s\n", res.Type, res.Message)
		}
	}

	if failed > 0 {
		return errors.Newf("%d of %d variants failed", failed, len(results))
	}
	pterm.Println()
	pterm.Info.Printf("Artifacts written to %s\n", cfg.Storage.Dir)
	return nil
}
