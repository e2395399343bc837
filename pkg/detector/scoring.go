package detector

import "stackplan/pkg/rules"

// scoreCard accumulates hit confidences per category and collects the
// signals that produced them. Scores are summed, never averaged, so two
// rules feeding the same category both count toward its total.
type scoreCard struct {
	scores  map[rules.AppType]float64
	signals []string
}

func newScoreCard() *scoreCard {
	return &scoreCard{
		scores:  map[rules.AppType]float64{},
		signals: []string{},
	}
}

// Add credits a category with a hit and records its signal
func (s *scoreCard) Add(category rules.AppType, weight float64, signal string) *scoreCard {
	s.scores[category] += weight
	s.signals = append(s.signals, signal)
	return s
}

// Note records a signal that carries no score
func (s *scoreCard) Note(signal string) *scoreCard {
	s.signals = append(s.signals, signal)
	return s
}

// Score returns the accumulated score of a category
func (s *scoreCard) Score(category rules.AppType) float64 {
	return s.scores[category]
}

// Signals returns the collected signals in the order they were recorded
func (s *scoreCard) Signals() []string {
	return s.signals
}

// frameworkSet keeps detected frameworks in first-seen order, one entry per
// name and source
type frameworkSet struct {
	seen  map[string]bool
	items []Framework
}

func newFrameworkSet() *frameworkSet {
	return &frameworkSet{seen: map[string]bool{}, items: []Framework{}}
}

func (f *frameworkSet) add(fw Framework) bool {
	key := string(fw.Source) + "/" + fw.Name
	if f.seen[key] {
		return false
	}
	f.seen[key] = true
	f.items = append(f.items, fw)
	return true
}

// databaseSet keeps detected databases deduplicated by name
type databaseSet struct {
	seen  map[string]bool
	items []Database
}

func newDatabaseSet() *databaseSet {
	return &databaseSet{seen: map[string]bool{}, items: []Database{}}
}

func (d *databaseSet) add(db Database) bool {
	if d.seen[db.Name] {
		return false
	}
	d.seen[db.Name] = true
	d.items = append(d.items, db)
	return true
}

func (d *databaseSet) has(name string) bool {
	return d.seen[name]
}

func (d *databaseSet) len() int {
	return len(d.items)
}
