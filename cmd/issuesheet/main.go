// Command issuesheet generates a drawing issue sheet workbook from a model
// snapshot exported by the host.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/soderasen-au/go-common/loggers"
	"github.com/soderasen-au/go-common/util"
	"github.com/spf13/cobra"

	"github.com/soderasen-au/go-rvt/report"
	"github.com/soderasen-au/go-rvt/rvt"
)

var (
	templateFile  string
	outputFolder  string
	reportName    string
	csvOut        bool
	auditFile     string
	verbose       bool
	revsPerPage   int
	sheetsPerPage int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "issuesheet [model.yaml]",
		Short: "Generate a drawing issue sheet from a model snapshot",
		Long: `issuesheet compiles the revision matrix of a building-design model
snapshot and fills a pre-existing issue sheet template workbook.`,
		Args:         cobra.ExactArgs(1),
		RunE:         run,
		SilenceUsage: true,
	}

	rootCmd.Flags().StringVarP(&templateFile, "template", "t", "", "Issue sheet template workbook (.xlsm)")
	rootCmd.Flags().StringVarP(&outputFolder, "output-folder", "o", ".", "Folder to save the report in")
	rootCmd.Flags().StringVarP(&reportName, "name", "n", "", "Report name (default: Issue Sheet_<ddmmyy>)")
	rootCmd.Flags().BoolVar(&csvOut, "csv", false, "Also export the compiled matrix as CSV")
	rootCmd.Flags().StringVar(&auditFile, "audit", "", "Append a run record to this audit CSV")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging to console")
	rootCmd.Flags().IntVar(&revsPerPage, "revs-per-page", report.DEFAULT_REVISIONS_PER_PAGE, "Template revision column capacity")
	rootCmd.Flags().IntVar(&sheetsPerPage, "sheets-per-page", report.DEFAULT_SHEETS_PER_PAGE, "Template sheet row capacity")
	rootCmd.MarkFlagRequired("template")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	logger := loggers.NullLogger
	if verbose {
		logger = loggers.CoreDebugLogger
	}

	doc, res := rvt.LoadDocument(args[0])
	if res != nil {
		return res.With("LoadDocument")
	}

	name := reportName
	if name == "" {
		name = report.DefaultReportName(time.Now())
	}

	r := report.IssueSheetReport{
		ID:           util.Ptr(uuid.NewString()),
		Name:         &name,
		Doc:          doc,
		TemplateFile: templateFile,
		OutputFormat: util.Ptr(report.REPORT_FORMAT_XLSM),
		OutputFolder: &outputFolder,
		Paging: &report.PagingConfig{
			RevisionsPerPage: revsPerPage,
			SheetsPerPage:    sheetsPerPage,
		},
		Logger: logger,
	}

	printer := report.NewIssueSheetPrinter()
	if res := printer.Print(r); res != nil {
		return res.With("Print")
	}

	rResult, res := printer.GetReportResult(util.MaybeNil(r.ID))
	if res != nil {
		return res.With("GetReportResult")
	}
	fmt.Printf("Revision report saved to: %s\n", util.MaybeNil(rResult.ReportFile))

	if csvOut {
		if res := exportCsv(doc, name, logger); res != nil {
			return res.With("ExportCsv")
		}
	}

	if auditFile != "" {
		if res := recordAudit(args[0], rResult); res != nil {
			return res.With("RecordAudit")
		}
	}

	return nil
}

func exportCsv(doc *rvt.Document, name string, logger *zerolog.Logger) *util.Result {
	r := report.IssueSheetReport{
		ID:           util.Ptr(uuid.NewString()),
		Name:         &name,
		Doc:          doc,
		OutputFormat: util.Ptr(report.REPORT_FORMAT_CSV),
		OutputFolder: &outputFolder,
		Logger:       logger,
	}

	printer := report.NewCsvMatrixPrinter()
	if res := printer.Print(r); res != nil {
		return res.With("Print")
	}

	rResult, res := printer.GetReportResult(util.MaybeNil(r.ID))
	if res != nil {
		return res.With("GetReportResult")
	}
	fmt.Printf("Matrix csv saved to: %s\n", util.MaybeNil(rResult.ReportFile))

	return nil
}

func recordAudit(modelFile string, rResult *report.ReportResult) *util.Result {
	audit, res := report.NewAuditLog(auditFile)
	if res != nil {
		return res.With("NewAuditLog")
	}
	defer audit.Close()

	size := 0
	if fi, err := os.Stat(util.MaybeNil(rResult.ReportFile)); err == nil {
		size = int(fi.Size())
	}

	return audit.Record(report.AuditRecord{
		Timestamp:      time.Now(),
		ModelFile:      modelFile,
		ReportFileName: util.MaybeNil(rResult.ReportFile),
		ReportFileSize: size,
		SheetCount:     rResult.SheetCount,
		RevisionCount:  rResult.RevisionCount,
		PageCount:      rResult.PageCount,
	})
}
