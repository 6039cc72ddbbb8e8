// Package reconcile joins the roster onto the roll sheet and produces one
// canonical StudentRecord per student.
package reconcile

import (
	"sort"
	"strings"

	"github.com/ninjapark/rollsync/internal/model"
	"github.com/ninjapark/rollsync/internal/normalize"
)

// DefaultAdvancedMarker marks advanced program class names.
const DefaultAdvancedMarker = "advanced"

// Abbreviation shortens a long program name in class labels.
type Abbreviation struct {
	Long  string
	Short string
}

// DefaultAbbreviations are the program names shortened on the dashboard.
var DefaultAbbreviations = []Abbreviation{
	{Long: "Flip Side Ninjas", Short: "FS Ninjas"},
	{Long: "Advanced Ninjas", Short: "Adv Ninjas"},
	{Long: "Homeschool Ninjas", Short: "HS Ninjas"},
	{Long: "Ninja Warrior Training", Short: "NW Training"},
	{Long: "Parent & Me", Short: "P&M"},
}

// Options tune the reconciliation.
type Options struct {
	Abbreviations  []Abbreviation
	AdvancedMarker string
}

// DefaultOptions returns the built-in abbreviation table and advanced marker.
func DefaultOptions() Options {
	return Options{
		Abbreviations:  DefaultAbbreviations,
		AdvancedMarker: DefaultAdvancedMarker,
	}
}

// Reconcile left-joins roster entries onto roll sheet entries by normalized
// name. The roster decides membership: roster students missing from the roll
// sheet get s0 and "Not Found", roll-sheet-only students are dropped. Output
// follows roster order and holds each name at most once.
func Reconcile(roster []model.RawRosterEntry, roll []model.RawRollEntry, opts Options) []model.StudentRecord {
	byName := make(map[string]model.RawRollEntry, len(roll))
	for _, e := range roll {
		name := normalize.Name(e.Name)
		if _, ok := byName[name]; !ok {
			byName[name] = e
		}
	}

	abbrev := sortedAbbreviations(opts.Abbreviations)
	seen := make(map[string]bool, len(roster))
	out := make([]model.StudentRecord, 0, len(roster))

	for _, r := range roster {
		name := normalize.Name(r.Name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		skill, className := model.SkillDefault, model.ClassNotFound
		if e, ok := byName[name]; ok {
			skill = normalize.SkillLevel(string(e.SkillLevel))
			if strings.TrimSpace(e.ClassName) != "" {
				className = e.ClassName
			}
		}

		sched := normalize.ScheduleInfo(className)
		out = append(out, model.StudentRecord{
			Name:             name,
			Age:              strings.TrimSpace(r.Age),
			Attendance:       strings.TrimSpace(r.Attendance),
			Comment:          strings.TrimSpace(r.Comment),
			Keyword:          normalize.Group(string(r.Keyword)),
			SkillLevel:       skill,
			ClassName:        Abbreviate(className, abbrev),
			ScheduleDay:      sched.Day,
			ScheduleSortTime: sched.SortTime,
			ScheduleTime:     sched.DisplayTime,
			Advanced:         isAdvanced(className, opts.AdvancedMarker),
			Order:            len(out),
		})
	}
	return out
}

// Abbreviate applies each substitution in order. Callers that want the
// longest names replaced first should pass a table sorted that way.
func Abbreviate(className string, table []Abbreviation) string {
	for _, a := range table {
		if a.Long == "" {
			continue
		}
		className = strings.ReplaceAll(className, a.Long, a.Short)
	}
	return className
}

func sortedAbbreviations(table []Abbreviation) []Abbreviation {
	out := append([]Abbreviation(nil), table...)
	sort.SliceStable(out, func(i, j int) bool {
		return len(out[i].Long) > len(out[j].Long)
	})
	return out
}

func isAdvanced(className, marker string) bool {
	if marker == "" {
		return false
	}
	return strings.Contains(strings.ToLower(className), strings.ToLower(marker))
}
