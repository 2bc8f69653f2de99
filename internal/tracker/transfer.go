package tracker

import (
	"github.com/julianstephens/habitual/internal/logger"
	"github.com/julianstephens/habitual/internal/profile"
	"github.com/julianstephens/habitual/internal/recommend"
	"github.com/julianstephens/habitual/internal/storage"
	"github.com/julianstephens/habitual/internal/transfer"
)

// Export snapshots the full state.
func (t *Tracker) Export() transfer.Document {
	hs := t.store.Habits()
	p := t.profile.Clone()
	a := t.assessment.Clone()
	return transfer.Document{
		Habits:      &hs,
		UserProfile: &p,
		Assessment:  &a,
		ExportDate:  t.Today(),
	}
}

// Report gathers what the spreadsheet export renders.
func (t *Tracker) Report() transfer.Report {
	return transfer.Report{
		Habits:  t.store.Habits(),
		Profile: t.profile.Clone(),
		Stats:   t.Stats(),
		Date:    t.Today(),
	}
}

// Import replaces each section present in data. The document is fully
// checked before anything is swapped, so a rejected import changes nothing.
// Badges are not evaluated; the imported profile's badges are taken as is.
func (t *Tracker) Import(data []byte) (Outcome, error) {
	doc, err := transfer.Parse(data)
	if err != nil {
		return Outcome{}, err
	}

	today := t.sync()
	keys := []string{storage.KeyUserProfile}
	if doc.Habits != nil {
		t.store.Replace(*doc.Habits)
		t.store.Refresh(today)
		keys = append(keys, storage.KeyHabits)
	}
	if doc.UserProfile != nil {
		t.profile = doc.UserProfile.Clone()
	}
	if doc.Assessment != nil {
		t.assessment = doc.Assessment.Clone()
		t.recs = recommend.Recommend(t.assessment, t.maxRecs)
		keys = append(keys, storage.KeyAssessment)
	}
	t.profile = profile.Aggregate(t.profile, t.store.Habits(), today)
	logger.Info("state imported", "habits", t.store.Len(), "exportDate", doc.ExportDate)

	out := Outcome{SaveErr: t.persist(keys...)}
	if out.SaveErr != nil {
		logger.Warn("failed to save import", "error", out.SaveErr)
	}
	t.emit(Event{Op: OpImport, Day: today})
	return out, nil
}
