package report

import (
	"fmt"

	"github.com/soderasen-au/go-rvt/rvt"
)

// SheetLabeler resolves display labels for one sheet's revisions.
//
// Numeric sequences count per sheet: each revision's label position is its
// 1-based creation-order rank among the sheet's own revisions in the same
// sequence, so different sheets can sit at different cycle positions of the
// same sequence. Non-numeric sequences fall through ResolveRevisionNumber.
type SheetLabeler struct {
	labels map[rvt.ElementId]string
}

func NewSheetLabeler(doc *rvt.Document, rs *RevisedSheet) *SheetLabeler {
	l := &SheetLabeler{labels: make(map[rvt.ElementId]string, rs.RevCount())}

	revs := rs.Revisions()

	// group by numbering sequence, groups in first-seen creation order
	groupOrder := make([]rvt.ElementId, 0, len(revs))
	groups := make(map[rvt.ElementId][]*rvt.Revision)
	for _, rev := range revs {
		if _, ok := groups[rev.SequenceId]; !ok {
			groupOrder = append(groupOrder, rev.SequenceId)
		}
		groups[rev.SequenceId] = append(groups[rev.SequenceId], rev)
	}

	for _, seqId := range groupOrder {
		seq := doc.Sequence(seqId)
		for pos, rev := range groups[seqId] {
			if seq != nil && seq.NumberType.IsNumeric() && seq.Numeric != nil {
				s := seq.Numeric
				l.labels[rev.Id] = fmt.Sprintf("%s%0*d%s", s.Prefix, s.MinimumDigits, s.StartNumber+pos, s.Suffix)
			} else {
				l.labels[rev.Id] = ResolveRevisionNumber(rev, rs.Sheet)
			}
		}
	}

	return l
}

func (l *SheetLabeler) Label(id rvt.ElementId) (string, bool) {
	label, ok := l.labels[id]
	return label, ok
}
