package report

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/soderasen-au/go-rvt/rvt"
)

// shortDateRx accepts `d.m.yy`-style short dates with `.` or `/` separators
// and 2 or 4 digit years. Revisions whose date fails this gate are excluded
// from the report; exclusion is logged but never surfaced as an error.
var shortDateRx = regexp.MustCompile(`^\d{1,2}[./]\d{1,2}[./]\d{2,4}$`)

var digitsRx = regexp.MustCompile(`\d+`)

// RevisionRecord is one surviving revision of the global ordered sequence.
type RevisionRecord struct {
	Id          rvt.ElementId `json:"id" yaml:"id"`
	Number      string        `json:"number,omitempty" yaml:"number,omitempty"`
	Date        string        `json:"date,omitempty" yaml:"date,omitempty"`
	Description string        `json:"description,omitempty" yaml:"description,omitempty"`
}

// DateParts splits the validated date string into its day/month/year fields.
func (r RevisionRecord) DateParts() (d, m, y int, ok bool) {
	parts := digitsRx.FindAllString(r.Date, -1)
	if len(parts) != 3 {
		return 0, 0, 0, false
	}
	d, _ = strconv.Atoi(parts[0])
	m, _ = strconv.Atoi(parts[1])
	y, _ = strconv.Atoi(parts[2])
	return d, m, y, true
}

// ResolveRevisionNumber resolves a revision's display number in fixed
// priority order: the sheet-scoped number (when a sheet is given and the
// host exported one), then the revision's own stored number, then its
// global sequence number.
func ResolveRevisionNumber(rev *rvt.Revision, sheet *rvt.Sheet) string {
	if sheet != nil {
		if num, ok := sheet.RevisionNumberOnSheet(rev.Id); ok {
			return num
		}
	}
	if rev.RevisionNumber != nil {
		return *rev.RevisionNumber
	}
	return strconv.Itoa(rev.SequenceNumber)
}

// compareRevisionNumbers orders display numbers numerically when both parse
// as integers, lexically otherwise.
func compareRevisionNumbers(a, b string) int {
	na, errA := strconv.Atoi(a)
	nb, errB := strconv.Atoi(b)
	if errA == nil && errB == nil {
		return na - nb
	}
	return strings.Compare(a, b)
}

// BuildRevisionRecords reduces the model's revision list to those assigned
// to at least one revised sheet and carrying a well-formed short date, then
// sorts ascending by display number. The sort is stable: equal numbers keep
// model discovery order.
func BuildRevisionRecords(doc *rvt.Document, revisedSheets []*RevisedSheet, logger *zerolog.Logger) []RevisionRecord {
	assigned := make(map[rvt.ElementId]bool)
	for _, rs := range revisedSheets {
		for id := range rs.revIds {
			assigned[id] = true
		}
	}

	records := make([]RevisionRecord, 0, len(assigned))
	for i := range doc.Revisions {
		rev := &doc.Revisions[i]
		if !assigned[rev.Id] {
			continue
		}
		date := strings.TrimSpace(rev.RevisionDate)
		if !shortDateRx.MatchString(date) {
			logger.Debug().Msgf("revision %s: dropped, date %q does not match short date format", rev.Id, date)
			continue
		}
		records = append(records, RevisionRecord{
			Id:          rev.Id,
			Number:      ResolveRevisionNumber(rev, nil),
			Date:        date,
			Description: rev.Description,
		})
	}

	sort.SliceStable(records, func(i, j int) bool {
		return compareRevisionNumbers(records[i].Number, records[j].Number) < 0
	})

	return records
}

// sortRevisionsByCreation orders revisions by their model-global creation
// sequence. Per-sheet label positions depend on this order being explicit.
func sortRevisionsByCreation(revs []*rvt.Revision) {
	sort.SliceStable(revs, func(i, j int) bool {
		return revs[i].SequenceNumber < revs[j].SequenceNumber
	})
}
