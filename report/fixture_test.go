package report

import (
	"testing"

	"github.com/soderasen-au/go-common/util"

	"github.com/soderasen-au/go-rvt/rvt"
)

// testDocument builds the fixture model used across the package tests.
//
// Eligible sheets in number order: S-020 (revisions {1}) and S-100
// (revisions {1, 2, 4}). S-200 is not flagged for the sheet list, S-300 has
// no viewports, S-050 has an empty revision set. Revision 3 has a malformed
// date and is only referenced by a view placed on no sheet.
func testDocument(t *testing.T) *rvt.Document {
	t.Helper()

	doc := &rvt.Document{
		Project: rvt.ProjectInfo{Parameters: map[string]string{
			"Project Name":                "Riverside Depot",
			"Project Number":              "100",
			"EWP_Project_Originator Code": "B",
			"EWP_Project_Role Code":       " ",
		}},
		Sequences: []rvt.NumberingSequence{
			{Id: 100, Name: "Alpha", NumberType: rvt.NUMBER_TYPE_NUMERIC, Numeric: &rvt.NumericSettings{Prefix: "A", StartNumber: 1, MinimumDigits: 2}},
			{Id: 200, Name: "Construction", NumberType: rvt.NUMBER_TYPE_ALPHANUMERIC},
		},
		Revisions: []rvt.Revision{
			{Id: 1, SequenceNumber: 1, SequenceId: 100, RevisionDate: "01/02/24", Description: "First issue"},
			{Id: 2, SequenceNumber: 2, SequenceId: 100, RevisionDate: "15.3.24", Description: "Planning comments"},
			{Id: 3, SequenceNumber: 3, SequenceId: 200, RevisionNumber: util.Ptr("C1"), RevisionDate: "2024-04-01", Description: "Unplaced"},
			{Id: 4, SequenceNumber: 4, SequenceId: 200, RevisionNumber: util.Ptr("9"), RevisionDate: "02/05/2024", Description: "Client comments"},
		},
		Clouds: []rvt.RevisionCloud{
			{Id: 500, OwnerViewId: 12, RevisionId: 1},
			{Id: 501, OwnerViewId: 10, RevisionId: 2},
			{Id: 502, OwnerViewId: 12, RevisionId: 2},
			{Id: 503, OwnerViewId: 999, RevisionId: 3},
		},
		Sheets: []rvt.Sheet{
			{
				Id:                     10,
				SheetNumber:            "S-100",
				Name:                   "Ground Floor Plan",
				AppearsInSheetList:     util.Ptr(1),
				Viewports:              []rvt.Viewport{{Id: 11, ViewId: 12}},
				AdditionalRevisionIds:  []rvt.ElementId{4},
				RevisionNumbersOnSheet: map[rvt.ElementId]string{4: "3"},
				Parameters: map[string]string{
					"EWP_Sheet_Zone Code":  "Z1",
					"EWP_Sheet_Level Code": "L2",
					"EWP_Sheet_Type Code":  "",
				},
			},
			{
				Id:                    20,
				SheetNumber:           "S-200",
				Name:                  "Not In List",
				AppearsInSheetList:    util.Ptr(0),
				Viewports:             []rvt.Viewport{{Id: 21, ViewId: 22}},
				AdditionalRevisionIds: []rvt.ElementId{1},
			},
			{
				Id:                    30,
				SheetNumber:           "S-300",
				Name:                  "No Viewports",
				AppearsInSheetList:    util.Ptr(1),
				AdditionalRevisionIds: []rvt.ElementId{1},
			},
			{
				Id:                 40,
				SheetNumber:        "S-050",
				Name:               "No Revisions",
				AppearsInSheetList: util.Ptr(1),
				Viewports:          []rvt.Viewport{{Id: 41, ViewId: 42}},
			},
			{
				Id:                    50,
				SheetNumber:           "S-020",
				Name:                  "Site Plan",
				AppearsInSheetList:    util.Ptr(1),
				Viewports:             []rvt.Viewport{{Id: 51, ViewId: 52}},
				AdditionalRevisionIds: []rvt.ElementId{1},
			},
		},
	}

	if res := doc.Validate(); res != nil {
		t.Fatalf("fixture document: %v", res)
	}
	return doc
}
