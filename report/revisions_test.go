package report

import (
	"testing"

	"github.com/soderasen-au/go-common/loggers"
	"github.com/soderasen-au/go-common/util"

	"github.com/soderasen-au/go-rvt/rvt"
)

func TestBuildRevisionRecords(t *testing.T) {
	doc := testDocument(t)
	revisedSheets, _ := CollectRevisedSheets(doc, loggers.NullLogger)

	records := BuildRevisionRecords(doc, revisedSheets, loggers.NullLogger)

	// revision 3 is assigned to no eligible sheet; 1, 2, 4 survive with
	// numbers 1, 2, 9 in ascending order
	want := []struct {
		id     rvt.ElementId
		number string
		date   string
	}{
		{1, "1", "01/02/24"},
		{2, "2", "15.3.24"},
		{4, "9", "02/05/2024"},
	}
	if len(records) != len(want) {
		t.Fatalf("records = %d, want %d", len(records), len(want))
	}
	for i, w := range want {
		if records[i].Id != w.id || records[i].Number != w.number || records[i].Date != w.date {
			t.Errorf("records[%d] = %+v, want %+v", i, records[i], w)
		}
	}
}

func TestBuildRevisionRecordsDropsMalformedDates(t *testing.T) {
	tests := []struct {
		name string
		date string
		kept bool
	}{
		{"SlashShortYear", "1/2/24", true},
		{"SlashLongYear", "01/02/2024", true},
		{"DotSeparator", "15.3.24", true},
		{"IsoDate", "2024-04-01", false},
		{"MonthName", "1 Feb 24", false},
		{"Empty", "", false},
		{"ThreeDigitDay", "123/2/24", false},
		{"TrailingText", "1/2/24 approx", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := &rvt.Document{
				Revisions: []rvt.Revision{{Id: 1, SequenceNumber: 1, RevisionDate: tt.date}},
				Sheets: []rvt.Sheet{{
					Id:                    10,
					SheetNumber:           "S-001",
					AppearsInSheetList:    util.Ptr(1),
					Viewports:             []rvt.Viewport{{Id: 11, ViewId: 12}},
					AdditionalRevisionIds: []rvt.ElementId{1},
				}},
			}
			if res := doc.Validate(); res != nil {
				t.Fatalf("Validate() = %v", res)
			}

			revisedSheets, _ := CollectRevisedSheets(doc, loggers.NullLogger)
			records := BuildRevisionRecords(doc, revisedSheets, loggers.NullLogger)
			if kept := len(records) == 1; kept != tt.kept {
				t.Errorf("date %q kept = %v, want %v", tt.date, kept, tt.kept)
			}
		})
	}
}

func TestRevisionSortIsStable(t *testing.T) {
	doc := &rvt.Document{
		Revisions: []rvt.Revision{
			{Id: 1, SequenceNumber: 1, RevisionNumber: util.Ptr("2"), RevisionDate: "01/02/24", Description: "first discovered"},
			{Id: 2, SequenceNumber: 2, RevisionNumber: util.Ptr("2"), RevisionDate: "02/02/24", Description: "second discovered"},
			{Id: 3, SequenceNumber: 3, RevisionNumber: util.Ptr("1"), RevisionDate: "03/02/24"},
		},
		Sheets: []rvt.Sheet{{
			Id:                    10,
			SheetNumber:           "S-001",
			AppearsInSheetList:    util.Ptr(1),
			Viewports:             []rvt.Viewport{{Id: 11, ViewId: 12}},
			AdditionalRevisionIds: []rvt.ElementId{1, 2, 3},
		}},
	}
	if res := doc.Validate(); res != nil {
		t.Fatalf("Validate() = %v", res)
	}

	revisedSheets, _ := CollectRevisedSheets(doc, loggers.NullLogger)
	records := BuildRevisionRecords(doc, revisedSheets, loggers.NullLogger)

	wantIds := []rvt.ElementId{3, 1, 2}
	if len(records) != len(wantIds) {
		t.Fatalf("records = %d, want %d", len(records), len(wantIds))
	}
	for i, id := range wantIds {
		if records[i].Id != id {
			t.Errorf("records[%d].Id = %d, want %d (equal numbers must keep discovery order)", i, records[i].Id, id)
		}
	}
}

func TestResolveRevisionNumber(t *testing.T) {
	rev := &rvt.Revision{Id: 7, SequenceNumber: 42, RevisionNumber: util.Ptr("P2")}
	sheetWithNum := &rvt.Sheet{RevisionNumbersOnSheet: map[rvt.ElementId]string{7: "3"}}
	sheetWithout := &rvt.Sheet{}

	tests := []struct {
		name  string
		rev   *rvt.Revision
		sheet *rvt.Sheet
		want  string
	}{
		{"SheetNumberWins", rev, sheetWithNum, "3"},
		{"OwnNumberNext", rev, sheetWithout, "P2"},
		{"NoSheet", rev, nil, "P2"},
		{"SequenceFallback", &rvt.Revision{Id: 8, SequenceNumber: 42}, nil, "42"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveRevisionNumber(tt.rev, tt.sheet); got != tt.want {
				t.Errorf("ResolveRevisionNumber() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCompareRevisionNumbers(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		less bool
	}{
		{"Numeric", "2", "10", true},
		{"NumericReverse", "10", "2", false},
		{"Lexical", "A2", "A10", false},
		{"Mixed", "2", "A1", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := compareRevisionNumbers(tt.a, tt.b) < 0; got != tt.less {
				t.Errorf("compareRevisionNumbers(%q, %q) < 0 = %v, want %v", tt.a, tt.b, got, tt.less)
			}
		})
	}
}

func TestDateParts(t *testing.T) {
	tests := []struct {
		name    string
		date    string
		d, m, y int
		ok      bool
	}{
		{"Slash", "01/02/24", 1, 2, 24, true},
		{"Dot", "15.3.2024", 15, 3, 2024, true},
		{"TwoParts", "01/02", 0, 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := RevisionRecord{Date: tt.date}
			d, m, y, ok := rec.DateParts()
			if d != tt.d || m != tt.m || y != tt.y || ok != tt.ok {
				t.Errorf("DateParts() = (%d, %d, %d, %v), want (%d, %d, %d, %v)", d, m, y, ok, tt.d, tt.m, tt.y, tt.ok)
			}
		})
	}
}
