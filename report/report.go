package report

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/soderasen-au/go-common/loggers"
	"github.com/soderasen-au/go-common/util"

	"github.com/soderasen-au/go-rvt/rvt"
)

type ReportFormat string

const (
	REPORT_FORMAT_XLSM ReportFormat = "xlsm"
	REPORT_FORMAT_XLSX ReportFormat = "xlsx"
	REPORT_FORMAT_CSV  ReportFormat = "csv"
)

func (f ReportFormat) IsExcel() bool {
	return f == REPORT_FORMAT_XLSM || f == REPORT_FORMAT_XLSX
}

func (f ReportFormat) IsCsv() bool {
	return f == REPORT_FORMAT_CSV
}

func (f ReportFormat) IsValid() bool {
	return f.IsExcel() || f.IsCsv()
}

func (f *ReportFormat) MaybeDefault() {
	if !f.IsValid() {
		*f = REPORT_FORMAT_XLSM
	}
}

// DefaultReportName returns the host's default save name, e.g.
// `Issue Sheet_290826` for 29 Aug 2026.
func DefaultReportName(t time.Time) string {
	return fmt.Sprintf("Issue Sheet_%s", t.Format("020106"))
}

// IssueSheetReport describes one issue-sheet run against a model snapshot.
// The caller owns Doc; the printer never mutates it.
type IssueSheetReport struct {
	ID   *string `json:"id,omitempty" yaml:"id,omitempty"`
	Name *string `json:"name,omitempty" yaml:"name,omitempty"`

	Doc          *rvt.Document `json:"-" yaml:"-"`
	TemplateFile string        `json:"template_file,omitempty" yaml:"template_file,omitempty"`

	// output
	OutputFormat *ReportFormat `json:"output_format,omitempty" yaml:"output_format,omitempty"`
	OutputFolder *string       `json:"output_folder,omitempty" yaml:"output_folder,omitempty"`
	Paging       *PagingConfig `json:"paging,omitempty" yaml:"paging,omitempty"`

	// logging
	LogFolder *string         `json:"log_folder,omitempty" yaml:"log_folder,omitempty"`
	Logger    *zerolog.Logger `json:"-" yaml:"-"`
}

func (r IssueSheetReport) IsValid() bool {
	if r.Doc == nil {
		return false
	}

	if r.ID == nil || r.OutputFormat == nil || r.OutputFolder == nil {
		return false
	}

	if !r.OutputFormat.IsValid() {
		return false
	}

	if r.OutputFormat.IsExcel() && r.TemplateFile == "" {
		return false
	}

	return true
}

func (r *IssueSheetReport) Validate() *util.Result {
	if r.Doc == nil {
		return util.MsgError("ValidateReport", "no model document")
	}

	if r.ID == nil {
		r.ID = util.Ptr(uuid.NewString())
	}

	if r.Name == nil || *r.Name == "" {
		r.Name = util.Ptr(DefaultReportName(time.Now()))
	}

	if r.OutputFormat == nil {
		r.OutputFormat = new(ReportFormat)
	}
	r.OutputFormat.MaybeDefault()

	if r.OutputFormat.IsExcel() {
		if r.TemplateFile == "" {
			return util.MsgError("ValidateReport", "no template file")
		}
		ok, err := util.Exists(r.TemplateFile)
		if err != nil {
			return util.Error("CheckTemplate", err)
		}
		if !ok {
			return util.MsgError("CheckTemplate", "template not found: "+r.TemplateFile)
		}
	}

	if r.OutputFolder == nil {
		r.OutputFolder = new(string)
	}

	if r.Paging == nil {
		r.Paging = util.Ptr(DefaultPagingConfig())
	}
	r.Paging.MaybeDefault()

	if r.LogFolder == nil {
		r.LogFolder = new(string)
	}

	return nil
}

type ReportResult struct {
	ID         string          `json:"id,omitempty" yaml:"id,omitempty"`
	Result     *util.Result    `json:"result,omitempty" yaml:"result,omitempty"`
	ReportFile *string         `json:"report_file,omitempty" yaml:"report_file,omitempty"`
	LogFile    *string         `json:"log_file,omitempty" yaml:"log_file,omitempty"`
	Logger     *zerolog.Logger `json:"-" yaml:"-"`

	SheetCount    int `json:"sheet_count,omitempty" yaml:"sheet_count,omitempty"`
	RevisionCount int `json:"revision_count,omitempty" yaml:"revision_count,omitempty"`
	PageCount     int `json:"page_count,omitempty" yaml:"page_count,omitempty"`
}

func NewReportResult(r IssueSheetReport) (*ReportResult, *util.Result) {
	if !r.IsValid() {
		return nil, util.MsgError("Check", "invalid report")
	}

	rr := ReportResult{ID: util.MaybeNil(r.ID)}

	rn := strings.ReplaceAll(util.MaybeNil(r.Name), "/", "_")
	rn = strings.ReplaceAll(rn, "\\", "_")
	rf := filepath.Join(util.MaybeNil(r.OutputFolder), fmt.Sprintf("%s.%s", rn, *r.OutputFormat))
	rr.ReportFile = &rf

	if r.Logger != nil {
		rr.Logger = r.Logger
	} else {
		lf := filepath.Join(util.MaybeNil(r.LogFolder), fmt.Sprintf("log-%s.%s", util.MaybeNil(r.ID), "log"))
		rr.LogFile = &lf
		logger, err := loggers.GetLogger(lf)
		if err != nil {
			return nil, util.Error("GetLogger", err)
		}
		rr.Logger = logger
	}

	return &rr, nil
}
