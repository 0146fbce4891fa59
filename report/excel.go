package report

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/soderasen-au/go-common/util"
	"github.com/xuri/excelize/v2"

	"github.com/soderasen-au/go-rvt/rvt"
)

// Fixed template geometry. The date header stacks day/month/year in rows
// 6-8 starting at column D; the body starts at row 10 with drawing number
// in column A and sheet name in column B.
const (
	JOB_NAME_CELL string = "A6"
	JOB_NO_CELL   string = "B7"

	DATE_DAY_ROW   int = 6
	DATE_MONTH_ROW int = 7
	DATE_YEAR_ROW  int = 8

	BODY_FIRST_ROW int = 10
	DRAWING_NO_COL int = 1
	SHEET_NAME_COL int = 2
	FIRST_REV_COL  int = 4
)

// IssueSheetPrinter fills a pre-existing multi-page issue sheet template
// with the compiled sheet/revision matrix.
type IssueSheetPrinter struct {
	ReportResults map[string]*ReportResult

	// execution context (valid during Print() only)
	report IssueSheetReport
	doc    *rvt.Document
	excel  *excelize.File
	pages  []string
	logger *zerolog.Logger
}

func NewIssueSheetPrinter() *IssueSheetPrinter {
	p := &IssueSheetPrinter{}
	p.ReportResults = make(map[string]*ReportResult)
	return p
}

func (p *IssueSheetPrinter) GetReportResult(id string) (*ReportResult, *util.Result) {
	rr, ok := p.ReportResults[id]
	if !ok {
		return nil, util.MsgError("GetReportResult", "no result for report: "+id)
	}
	return rr, nil
}

func (p *IssueSheetPrinter) Print(r IssueSheetReport) *util.Result {
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

func (p *IssueSheetPrinter) print(r IssueSheetReport, rResult *ReportResult) *util.Result {
	p.report = r
	p.doc = r.Doc
	p.logger = rResult.Logger
	defer func() {
		p.report = IssueSheetReport{}
		p.doc = nil
		p.excel = nil
		p.pages = nil
	}()

	// read everything from the model before the report file is touched
	revisedSheets, totalRevs := CollectRevisedSheets(p.doc, p.logger)
	records := BuildRevisionRecords(p.doc, revisedSheets, p.logger)
	pages := r.Paging.Partition(records, revisedSheets)
	p.logger.Info().Msgf("compiled %d sheets x %d revisions (%d in model) onto %d pages",
		len(revisedSheets), len(records), totalRevs, len(pages))

	if res := copyFile(r.TemplateFile, util.MaybeNil(rResult.ReportFile)); res != nil {
		return res.With("CopyTemplate")
	}

	excel, err := excelize.OpenFile(util.MaybeNil(rResult.ReportFile))
	if err != nil {
		return util.Error("OpenFile", err)
	}
	defer func() {
		if err := excel.Close(); err != nil {
			p.logger.Err(err).Msg("close workbook")
		}
	}()
	p.excel = excel
	p.pages = excel.GetSheetList()

	if len(pages) > len(p.pages) {
		return util.MsgError("CheckTemplatePages",
			fmt.Sprintf("report needs %d pages but template has %d", len(pages), len(p.pages)))
	}

	for _, pageName := range p.pages {
		if res := p.printJobHeader(pageName); res != nil {
			return res.With("printJobHeader")
		}
	}

	for _, page := range pages {
		pageName := p.pages[page.Index-1]
		plogger := p.logger.With().Str("page", pageName).Logger()
		plogger.Info().Msgf("page %d: %d sheets, %d revisions", page.Index, len(page.Sheets), len(page.Revisions))

		if res := p.printDateHeader(pageName, page.Revisions); res != nil {
			return res.With("printDateHeader")
		}
		if res := p.printSheetBlock(pageName, page, &plogger); res != nil {
			return res.With("printSheetBlock")
		}
	}

	if err := excel.Save(); err != nil {
		return util.Error("Save", err)
	}

	rResult.SheetCount = len(revisedSheets)
	rResult.RevisionCount = len(records)
	rResult.PageCount = len(pages)
	p.logger.Info().Msgf("issue sheet saved to: %s", util.MaybeNil(rResult.ReportFile))

	return nil
}

// printJobHeader writes the bold job name/number cells on a template page.
func (p *IssueSheetPrinter) printJobHeader(pageName string) *util.Result {
	boldFont := &excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
	}
	styleId, err := p.excel.NewStyle(boldFont)
	if err != nil {
		return util.Error("NewStyle", err)
	}

	p.excel.SetCellStr(pageName, JOB_NAME_CELL, "Job name: "+p.doc.Project.Name())
	p.excel.SetCellStyle(pageName, JOB_NAME_CELL, JOB_NAME_CELL, styleId)
	p.excel.SetCellStr(pageName, JOB_NO_CELL, "Job no: "+p.doc.Project.Number())
	p.excel.SetCellStyle(pageName, JOB_NO_CELL, JOB_NO_CELL, styleId)

	return nil
}

// printDateHeader writes each revision's day/month/year into the stacked
// header rows. A date that does not split into three numeric parts leaves
// its column untouched.
func (p *IssueSheetPrinter) printDateHeader(pageName string, revs []RevisionRecord) *util.Result {
	for j, rec := range revs {
		d, m, y, ok := rec.DateParts()
		if !ok {
			continue
		}
		col := FIRST_REV_COL + j
		for _, rv := range []struct{ row, val int }{
			{DATE_DAY_ROW, d},
			{DATE_MONTH_ROW, m},
			{DATE_YEAR_ROW, y},
		} {
			cellName, err := excelize.CoordinatesToCellName(col, rv.row)
			if err != nil {
				return util.Error("CoordinatesToCellName", err)
			}
			p.excel.SetCellInt(pageName, cellName, rv.val)
		}
	}
	return nil
}

// printSheetBlock writes one body block: drawing number, sheet name, and
// the resolved label for every (sheet, revision) pair of this page. Cells
// whose revision is not on the sheet are left untouched.
func (p *IssueSheetPrinter) printSheetBlock(pageName string, page Page, logger *zerolog.Logger) *util.Result {
	revCol := make(map[rvt.ElementId]int, len(page.Revisions))
	for j, rec := range page.Revisions {
		revCol[rec.Id] = FIRST_REV_COL + j
	}

	for i, rs := range page.Sheets {
		row := BODY_FIRST_ROW + i

		cellName, err := excelize.CoordinatesToCellName(DRAWING_NO_COL, row)
		if err != nil {
			return util.Error("CoordinatesToCellName", err)
		}
		p.excel.SetCellStr(pageName, cellName, rs.DrawingNumber())

		cellName, err = excelize.CoordinatesToCellName(SHEET_NAME_COL, row)
		if err != nil {
			return util.Error("CoordinatesToCellName", err)
		}
		p.excel.SetCellStr(pageName, cellName, rs.SheetName())

		labeler := NewSheetLabeler(p.doc, rs)
		for _, rec := range page.Revisions {
			if !rs.HasRevision(rec.Id) {
				continue
			}
			label, ok := labeler.Label(rec.Id)
			if !ok {
				continue
			}
			cellName, err = excelize.CoordinatesToCellName(revCol[rec.Id], row)
			if err != nil {
				return util.Error("CoordinatesToCellName", err)
			}
			logger.Debug().Msgf("cell %s: sheet %s rev %s => %s", cellName, rs.Sheet.SheetNumber, rec.Id, label)
			p.excel.SetCellStr(pageName, cellName, label)
		}
	}

	return nil
}

func copyFile(src, dst string) *util.Result {
	in, err := os.Open(src)
	if err != nil {
		return util.Error("OpenSource", err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return util.Error("CreateTarget", err)
	}

	if _, err = io.Copy(out, in); err != nil {
		out.Close()
		return util.Error("Copy", err)
	}
	if err = out.Close(); err != nil {
		return util.Error("CloseTarget", err)
	}

	return nil
}
