package report

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/soderasen-au/go-rvt/rvt"
)

// drawingNumberParams is the fixed composition order of the drawing number.
// Names containing `Project` resolve against project info, the rest against
// the sheet.
var drawingNumberParams = []string{
	"Project Number",
	"EWP_Project_Originator Code",
	"EWP_Sheet_Zone Code",
	"EWP_Sheet_Level Code",
	"EWP_Sheet_Type Code",
	"EWP_Project_Role Code",
	"Sheet Number",
}

// RevisedSheet pairs a sheet with the closed set of revision ids that apply
// to it: revisions referenced by clouds owned by the sheet or any of its
// placed views, plus revisions explicitly attached to the sheet. Immutable
// after construction.
type RevisedSheet struct {
	Sheet *rvt.Sheet

	doc    *rvt.Document
	revIds map[rvt.ElementId]bool
}

func NewRevisedSheet(doc *rvt.Document, sheet *rvt.Sheet) *RevisedSheet {
	rs := &RevisedSheet{
		Sheet:  sheet,
		doc:    doc,
		revIds: make(map[rvt.ElementId]bool),
	}

	views := map[rvt.ElementId]bool{sheet.Id: true}
	for _, vp := range sheet.Viewports {
		views[vp.ViewId] = true
	}

	for _, cloud := range doc.Clouds {
		if views[cloud.OwnerViewId] {
			rs.revIds[cloud.RevisionId] = true
		}
	}

	// sheets can declare revisions without any visual markup
	for _, rid := range sheet.AdditionalRevisionIds {
		rs.revIds[rid] = true
	}

	return rs
}

func (rs *RevisedSheet) RevCount() int {
	return len(rs.revIds)
}

func (rs *RevisedSheet) HasRevision(id rvt.ElementId) bool {
	return rs.revIds[id]
}

func (rs *RevisedSheet) SheetName() string {
	return rs.Sheet.Name
}

// Revisions returns the sheet's revisions in model creation order
// (ascending SequenceNumber, stable). Ids without a backing revision in the
// snapshot are skipped.
func (rs *RevisedSheet) Revisions() []*rvt.Revision {
	revs := make([]*rvt.Revision, 0, len(rs.revIds))
	for _, rev := range rs.doc.Revisions {
		if rs.revIds[rev.Id] {
			revs = append(revs, rs.doc.Revision(rev.Id))
		}
	}
	sortRevisionsByCreation(revs)
	return revs
}

// DrawingNumber joins the non-empty trimmed composition parameters with a
// hyphen. Missing parameters are omitted, not replaced by a placeholder.
func (rs *RevisedSheet) DrawingNumber() string {
	parts := make([]string, 0, len(drawingNumberParams))
	for _, name := range drawingNumberParams {
		v, ok := rs.doc.LookupParameter(rs.Sheet, name)
		if !ok {
			continue
		}
		if v = strings.TrimSpace(v); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, "-")
}

// CollectRevisedSheets applies the eligibility filter over the model's
// sheets in ascending sheet-number order: the sheet must appear in the
// sheet list, have at least one placed viewport and a non-empty revision
// set. Returns the eligible sheets and the total number of revisions in the
// model (informational only).
func CollectRevisedSheets(doc *rvt.Document, logger *zerolog.Logger) ([]*RevisedSheet, int) {
	revisedSheets := make([]*RevisedSheet, 0, len(doc.Sheets))
	for _, sheet := range doc.SheetsByNumber() {
		if !sheet.AppearsInList() {
			continue
		}
		if len(sheet.Viewports) == 0 {
			continue
		}
		rs := NewRevisedSheet(doc, sheet)
		if rs.RevCount() == 0 {
			continue
		}
		logger.Debug().Msgf("sheet %s: %d revisions", sheet.SheetNumber, rs.RevCount())
		revisedSheets = append(revisedSheets, rs)
	}

	logger.Info().Msgf("%d of %d sheets eligible, %d revisions in model", len(revisedSheets), len(doc.Sheets), len(doc.Revisions))
	return revisedSheets, len(doc.Revisions)
}
