package report

// Template body capacities of the issue sheet workbook.
const (
	DEFAULT_REVISIONS_PER_PAGE int = 50
	DEFAULT_SHEETS_PER_PAGE    int = 27
)

// PagingConfig holds the per-page capacities of the report template.
type PagingConfig struct {
	RevisionsPerPage int `json:"revisions_per_page,omitempty" yaml:"revisions_per_page,omitempty"`
	SheetsPerPage    int `json:"sheets_per_page,omitempty" yaml:"sheets_per_page,omitempty"`
}

func DefaultPagingConfig() PagingConfig {
	return PagingConfig{
		RevisionsPerPage: DEFAULT_REVISIONS_PER_PAGE,
		SheetsPerPage:    DEFAULT_SHEETS_PER_PAGE,
	}
}

func (c *PagingConfig) MaybeDefault() {
	if c.RevisionsPerPage <= 0 {
		c.RevisionsPerPage = DEFAULT_REVISIONS_PER_PAGE
	}
	if c.SheetsPerPage <= 0 {
		c.SheetsPerPage = DEFAULT_SHEETS_PER_PAGE
	}
}

// Page is one (sheet-block, revision-block) slice of the matrix, mapped to
// the template page with the same 1-based index.
type Page struct {
	Index     int
	Revisions []RevisionRecord
	Sheets    []*RevisedSheet
}

// Partition splits the ordered revision sequence into column blocks and the
// sheet list into row blocks, one page per (revision-block, sheet-block)
// pair in row-major order: all sheet blocks of revision block 0 first.
func (c PagingConfig) Partition(revs []RevisionRecord, sheets []*RevisedSheet) []Page {
	numRevChunks := (len(revs) + c.RevisionsPerPage - 1) / c.RevisionsPerPage
	numSheetChunks := (len(sheets) + c.SheetsPerPage - 1) / c.SheetsPerPage

	pages := make([]Page, 0, numRevChunks*numSheetChunks)
	for rc := 0; rc < numRevChunks; rc++ {
		revLo := rc * c.RevisionsPerPage
		revHi := min(revLo+c.RevisionsPerPage, len(revs))
		for sc := 0; sc < numSheetChunks; sc++ {
			sheetLo := sc * c.SheetsPerPage
			sheetHi := min(sheetLo+c.SheetsPerPage, len(sheets))
			pages = append(pages, Page{
				Index:     rc*numSheetChunks + sc + 1,
				Revisions: revs[revLo:revHi],
				Sheets:    sheets[sheetLo:sheetHi],
			})
		}
	}

	return pages
}
