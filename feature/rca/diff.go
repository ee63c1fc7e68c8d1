package rca

import (
	"sort"

	"sales-reconciler/core/domain"

	"go.uber.org/zap"
)

// Diff computes dropped and orphaned identifier sets and attributes every
// dropped record to all applicable causes. An unattributed loss is reported
// as unexplained, the most severe finding this engine can produce.
func (e *Engine) Diff() error {
	if err := e.advance(StageCensus, StageDiff); err != nil {
		return err
	}

	e.diffEntity(domain.EntityCustomer,
		idsOfBatches(e.in.RawCustomers), idsOf(e.in.MergedCustomers), idsOf(e.in.FinalCustomers), nil)
	e.diffEntity(domain.EntityProduct,
		idsOfBatches(e.in.RawProducts), idsOf(e.in.MergedProducts), idsOf(e.in.FinalProducts), nil)

	// Sales are additionally dropped by the join; group the violations per
	// sale so a doubly-broken reference still yields one dropped record.
	violated := make(map[int64][]domain.ReferenceViolation)
	for _, v := range e.in.Violations {
		violated[v.SaleID] = append(violated[v.SaleID], v)
	}
	e.diffEntity(domain.EntitySale,
		idsOfBatches(e.in.RawSales), idsOf(e.in.MergedSales), idsOfEnriched(e.in.Final), violated)

	for entity, rep := range e.report.Entities {
		if len(rep.Orphaned) > 0 || len(rep.Unexplained) > 0 {
			e.log.Error("Defect-class findings",
				zap.String("entity", string(entity)),
				zap.Int64s("orphaned", rep.Orphaned),
				zap.Int64s("unexplained", rep.Unexplained))
		}
	}
	return nil
}

// diffEntity fills the dropped/orphaned/unexplained accounting for one
// entity. rawIDs holds the identifiers per source in batch order; violated
// maps sale identifiers to their unresolved references (nil for dimensions).
func (e *Engine) diffEntity(entity domain.EntityType, rawIDs map[string][]int64, mergedIDs, finalIDs map[int64]struct{}, violated map[int64][]domain.ReferenceViolation) {
	rep := e.report.Entities[entity]

	var dropped []domain.DroppedRecord
	attributed := make(map[int64]struct{})

	// Null drops: the merge stage raised one issue per identifier-less
	// record, carrying its source tag.
	for _, issue := range e.in.MergeIssues {
		if issue.Entity != entity || issue.Kind != domain.IssueNullValue {
			continue
		}
		rec := domain.DroppedRecord{Causes: []domain.DropCause{domain.CauseNullValue}}
		if len(issue.Sources) > 0 {
			rec.Source = issue.Sources[0]
		}
		dropped = append(dropped, rec)
	}

	// Duplicate losses: every source past the winner lost its record.
	for _, issue := range e.in.MergeIssues {
		if issue.Entity != entity || issue.Kind != domain.IssueDuplicate || len(issue.IDs) == 0 {
			continue
		}
		id := issue.IDs[0]
		for _, loser := range issue.Sources[1:] {
			dropped = append(dropped, domain.DroppedRecord{
				ID:     id,
				Source: loser,
				Causes: []domain.DropCause{domain.CauseDuplicate},
			})
		}
	}

	// Join exclusions: the surviving merged record never reached the final
	// set because a reference did not resolve.
	violatedIDs := make([]int64, 0, len(violated))
	for id := range violated {
		violatedIDs = append(violatedIDs, id)
	}
	sort.Slice(violatedIDs, func(i, j int) bool { return violatedIDs[i] < violatedIDs[j] })
	for _, id := range violatedIDs {
		dropped = append(dropped, domain.DroppedRecord{
			ID:     id,
			Causes: []domain.DropCause{domain.CauseReferential},
		})
		attributed[id] = struct{}{}
	}

	sort.SliceStable(dropped, func(i, j int) bool {
		if dropped[i].ID != dropped[j].ID {
			return dropped[i].ID < dropped[j].ID
		}
		return dropped[i].Source < dropped[j].Source
	})
	rep.Dropped = dropped

	// Identifiers lost between raw and final with no attributable cause.
	// Duplicate losers do not appear here: their identifier survives via
	// the winning record.
	missing := make(map[int64]struct{})
	for _, ids := range rawIDs {
		for _, id := range ids {
			if _, ok := finalIDs[id]; !ok {
				missing[id] = struct{}{}
			}
		}
	}
	for id := range missing {
		if _, ok := attributed[id]; !ok {
			rep.Unexplained = append(rep.Unexplained, id)
		}
	}
	sortIDs(rep.Unexplained)

	// Orphans: final identifiers with no merged antecedent. Always a
	// pipeline defect, never a data problem.
	for id := range finalIDs {
		if _, ok := mergedIDs[id]; !ok {
			rep.Orphaned = append(rep.Orphaned, id)
		}
	}
	sortIDs(rep.Orphaned)
}

func sortIDs(ids []int64) {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
}

func idsOfBatches[T domain.Record](batches []domain.Batch[T]) map[string][]int64 {
	out := make(map[string][]int64, len(batches))
	for _, b := range batches {
		ids := make([]int64, 0, len(b.Records))
		for _, r := range b.Records {
			if id := r.Key(); id != 0 {
				ids = append(ids, id)
			}
		}
		out[b.Source] = append(out[b.Source], ids...)
	}
	return out
}

func idsOf[T domain.Record](records []T) map[int64]struct{} {
	out := make(map[int64]struct{}, len(records))
	for _, r := range records {
		out[r.Key()] = struct{}{}
	}
	return out
}

func idsOfEnriched(rows []domain.EnrichedSale) map[int64]struct{} {
	out := make(map[int64]struct{}, len(rows))
	for _, r := range rows {
		out[r.SaleID] = struct{}{}
	}
	return out
}
