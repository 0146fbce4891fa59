package rvt

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/soderasen-au/go-common/util"
	"gopkg.in/yaml.v3"
)

// Document is a read-only snapshot of the host model, exported by the host
// as yaml or json. It is loaded once per run and never mutated; every
// downstream component takes the document as an explicit parameter.
type Document struct {
	Path      string              `json:"-" yaml:"-"`
	Project   ProjectInfo         `json:"project,omitempty" yaml:"project,omitempty"`
	Sheets    []Sheet             `json:"sheets,omitempty" yaml:"sheets,omitempty"`
	Clouds    []RevisionCloud     `json:"clouds,omitempty" yaml:"clouds,omitempty"`
	Revisions []Revision          `json:"revisions,omitempty" yaml:"revisions,omitempty"`
	Sequences []NumberingSequence `json:"sequences,omitempty" yaml:"sequences,omitempty"`

	revById map[ElementId]*Revision
	seqById map[ElementId]*NumberingSequence
}

func LoadDocument(path string) (*Document, *util.Result) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, util.Error("ReadFile", err)
	}

	doc := Document{}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		if err := json.Unmarshal(buf, &doc); err != nil {
			return nil, util.Error("ParseJson", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(buf, &doc); err != nil {
			return nil, util.Error("ParseYaml", err)
		}
	default:
		return nil, util.MsgError("ParseDocument", "unsupported model snapshot format: "+ext)
	}

	doc.Path = path
	if res := doc.Validate(); res != nil {
		return nil, res.With("Validate")
	}

	return &doc, nil
}

// Validate builds the id indices and rejects snapshots with duplicate ids.
func (d *Document) Validate() *util.Result {
	d.revById = make(map[ElementId]*Revision, len(d.Revisions))
	for i := range d.Revisions {
		rev := &d.Revisions[i]
		if !rev.Id.IsValid() {
			return util.MsgError("CheckRevision", "invalid revision id")
		}
		if _, ok := d.revById[rev.Id]; ok {
			return util.MsgError("CheckRevision", "duplicate revision id: "+rev.Id.String())
		}
		d.revById[rev.Id] = rev
	}

	d.seqById = make(map[ElementId]*NumberingSequence, len(d.Sequences))
	for i := range d.Sequences {
		seq := &d.Sequences[i]
		if !seq.Id.IsValid() {
			return util.MsgError("CheckSequence", "invalid sequence id")
		}
		if _, ok := d.seqById[seq.Id]; ok {
			return util.MsgError("CheckSequence", "duplicate sequence id: "+seq.Id.String())
		}
		d.seqById[seq.Id] = seq
	}

	return nil
}

func (d *Document) Revision(id ElementId) *Revision {
	return d.revById[id]
}

func (d *Document) Sequence(id ElementId) *NumberingSequence {
	return d.seqById[id]
}

// SheetsByNumber returns the model's sheets in ascending sheet-number order.
func (d *Document) SheetsByNumber() []*Sheet {
	sheets := make([]*Sheet, 0, len(d.Sheets))
	for i := range d.Sheets {
		sheets = append(sheets, &d.Sheets[i])
	}
	sort.SliceStable(sheets, func(i, j int) bool {
		return sheets[i].SheetNumber < sheets[j].SheetNumber
	})
	return sheets
}

// LookupParameter resolves a named text parameter the way the host does:
// project-scoped names resolve against project info, everything else
// against the sheet.
func (d *Document) LookupParameter(sheet *Sheet, name string) (string, bool) {
	if strings.Contains(name, "Project") {
		return d.Project.Parameter(name)
	}
	if sheet == nil {
		return "", false
	}
	return sheet.Parameter(name)
}
