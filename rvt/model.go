package rvt

import (
	"strconv"
	"strings"
)

type ElementId int64

const InvalidElementId ElementId = -1

func (id ElementId) IsValid() bool {
	return id > InvalidElementId
}

func (id ElementId) String() string {
	return strconv.FormatInt(int64(id), 10)
}

type NumberType string

const (
	NUMBER_TYPE_NUMERIC      NumberType = "numeric"
	NUMBER_TYPE_ALPHANUMERIC NumberType = "alphanumeric"
)

func (t NumberType) IsNumeric() bool {
	return t == NUMBER_TYPE_NUMERIC
}

// NumericSettings configures label generation for numeric sequences.
type NumericSettings struct {
	Prefix        string `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	Suffix        string `json:"suffix,omitempty" yaml:"suffix,omitempty"`
	StartNumber   int    `json:"start_number,omitempty" yaml:"start_number,omitempty"`
	MinimumDigits int    `json:"minimum_digits,omitempty" yaml:"minimum_digits,omitempty"`
}

type NumberingSequence struct {
	Id         ElementId        `json:"id" yaml:"id"`
	Name       string           `json:"name,omitempty" yaml:"name,omitempty"`
	NumberType NumberType       `json:"number_type,omitempty" yaml:"number_type,omitempty"`
	Numeric    *NumericSettings `json:"numeric,omitempty" yaml:"numeric,omitempty"`
}

// Revision is a tracked change event. SequenceNumber is the model-global
// creation order; SequenceId points to the owning NumberingSequence.
type Revision struct {
	Id             ElementId `json:"id" yaml:"id"`
	SequenceNumber int       `json:"sequence_number,omitempty" yaml:"sequence_number,omitempty"`
	SequenceId     ElementId `json:"sequence_id,omitempty" yaml:"sequence_id,omitempty"`
	RevisionNumber *string   `json:"revision_number,omitempty" yaml:"revision_number,omitempty"`
	RevisionDate   string    `json:"revision_date,omitempty" yaml:"revision_date,omitempty"`
	Description    string    `json:"description,omitempty" yaml:"description,omitempty"`
}

// RevisionCloud is a revision markup placed on exactly one view.
type RevisionCloud struct {
	Id          ElementId `json:"id" yaml:"id"`
	OwnerViewId ElementId `json:"owner_view_id" yaml:"owner_view_id"`
	RevisionId  ElementId `json:"revision_id" yaml:"revision_id"`
}

type Viewport struct {
	Id     ElementId `json:"id" yaml:"id"`
	ViewId ElementId `json:"view_id" yaml:"view_id"`
}

// Sheet mirrors the host's ViewSheet element. Parameters holds the named
// text parameters used for drawing-number composition; RevisionNumbersOnSheet
// holds the host's per-sheet revision numbers keyed by revision id.
type Sheet struct {
	Id                     ElementId            `json:"id" yaml:"id"`
	SheetNumber            string               `json:"sheet_number,omitempty" yaml:"sheet_number,omitempty"`
	Name                   string               `json:"name,omitempty" yaml:"name,omitempty"`
	AppearsInSheetList     *int                 `json:"appears_in_sheet_list,omitempty" yaml:"appears_in_sheet_list,omitempty"`
	Viewports              []Viewport           `json:"viewports,omitempty" yaml:"viewports,omitempty"`
	AdditionalRevisionIds  []ElementId          `json:"additional_revision_ids,omitempty" yaml:"additional_revision_ids,omitempty"`
	RevisionNumbersOnSheet map[ElementId]string `json:"revision_numbers_on_sheet,omitempty" yaml:"revision_numbers_on_sheet,omitempty"`
	Parameters             map[string]string    `json:"parameters,omitempty" yaml:"parameters,omitempty"`
}

// AppearsInList reports whether the "Appears In Sheet List" parameter is
// present and truthy.
func (s Sheet) AppearsInList() bool {
	return s.AppearsInSheetList != nil && *s.AppearsInSheetList != 0
}

// Parameter looks up a named text parameter. `Sheet Number` falls back to
// the sheet's own number when no parameter override is present.
func (s Sheet) Parameter(name string) (string, bool) {
	if v, ok := s.Parameters[name]; ok {
		return v, true
	}
	if name == "Sheet Number" && s.SheetNumber != "" {
		return s.SheetNumber, true
	}
	return "", false
}

// RevisionNumberOnSheet returns the sheet-scoped revision number if the host
// exported one for this revision.
func (s Sheet) RevisionNumberOnSheet(id ElementId) (string, bool) {
	v, ok := s.RevisionNumbersOnSheet[id]
	return v, ok
}

// ProjectInfo carries project-level text parameters, e.g. `Project Name`,
// `Project Number` and the EWP project classification codes.
type ProjectInfo struct {
	Parameters map[string]string `json:"parameters,omitempty" yaml:"parameters,omitempty"`
}

func (p ProjectInfo) Parameter(name string) (string, bool) {
	v, ok := p.Parameters[name]
	return v, ok
}

func (p ProjectInfo) Name() string {
	v := p.Parameters["Project Name"]
	return strings.TrimSpace(v)
}

func (p ProjectInfo) Number() string {
	v := p.Parameters["Project Number"]
	return strings.TrimSpace(v)
}
