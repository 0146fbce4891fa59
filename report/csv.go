package report

import (
	"os"

	"github.com/gocarina/gocsv"
	"github.com/soderasen-au/go-common/util"
)

// MatrixRecord is one (sheet, revision) pair of the compiled matrix in
// flat form, one line per issued revision of each sheet.
type MatrixRecord struct {
	SheetNumber   string `csv:"sheet_number"`
	DrawingNumber string `csv:"drawing_number"`
	SheetName     string `csv:"sheet_name"`
	Revision      string `csv:"revision"`
	Date          string `csv:"date"`
	Description   string `csv:"description"`
	Label         string `csv:"label"`
}

// CsvMatrixPrinter exports the compiled matrix as a flat CSV instead of the
// templated workbook. It shares the compiler pipeline with the Excel
// printer; only the rendering differs.
type CsvMatrixPrinter struct {
	ReportResults map[string]*ReportResult
}

func NewCsvMatrixPrinter() *CsvMatrixPrinter {
	p := &CsvMatrixPrinter{}
	p.ReportResults = make(map[string]*ReportResult)
	return p
}

func (p *CsvMatrixPrinter) GetReportResult(id string) (*ReportResult, *util.Result) {
	rr, ok := p.ReportResults[id]
	if !ok {
		return nil, util.MsgError("GetReportResult", "no result for report: "+id)
	}
	return rr, nil
}

func (p *CsvMatrixPrinter) Print(r IssueSheetReport) *util.Result {
	r.OutputFormat = util.Ptr(REPORT_FORMAT_CSV)
	if res := r.Validate(); res != nil {
		return res.With("Validate")
	}

	rResult, res := NewReportResult(r)
	if res != nil {
		return res.With("NewReportResult")
	}
	p.ReportResults[util.MaybeNil(r.ID)] = rResult

	res = p.print(r, rResult)
	rResult.Result = res
	if res != nil {
		return res.With("print")
	}
	return nil
}

func (p *CsvMatrixPrinter) print(r IssueSheetReport, rResult *ReportResult) *util.Result {
	logger := rResult.Logger

	revisedSheets, totalRevs := CollectRevisedSheets(r.Doc, logger)
	records := BuildRevisionRecords(r.Doc, revisedSheets, logger)
	logger.Info().Msgf("compiled %d sheets x %d revisions (%d in model)", len(revisedSheets), len(records), totalRevs)

	lines := make([]MatrixRecord, 0, len(records))
	for _, rs := range revisedSheets {
		labeler := NewSheetLabeler(r.Doc, rs)
		drawingNo := rs.DrawingNumber()
		for _, rec := range records {
			if !rs.HasRevision(rec.Id) {
				continue
			}
			label, _ := labeler.Label(rec.Id)
			lines = append(lines, MatrixRecord{
				SheetNumber:   rs.Sheet.SheetNumber,
				DrawingNumber: drawingNo,
				SheetName:     rs.SheetName(),
				Revision:      rec.Number,
				Date:          rec.Date,
				Description:   rec.Description,
				Label:         label,
			})
		}
	}

	ofs, err := os.OpenFile(util.MaybeNil(rResult.ReportFile), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0755)
	if err != nil {
		return util.Error("OpenFile: "+util.MaybeNil(rResult.ReportFile), err)
	}
	defer ofs.Close()

	if err := gocsv.MarshalFile(&lines, ofs); err != nil {
		return util.Error("MarshalFile", err)
	}

	rResult.SheetCount = len(revisedSheets)
	rResult.RevisionCount = len(records)
	logger.Info().Msgf("matrix csv saved to: %s", util.MaybeNil(rResult.ReportFile))

	return nil
}
