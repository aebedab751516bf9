package categories

import "github.com/cleared-dev/clubhouse/internal/model"

// Names of the categories the CLI refers to directly.
const (
	MatchFee = "MATCH_FEE"
	Subs     = "SUBS"
	Kit      = "KIT"
)

// DefaultCategories returns the categories a new club starts with.
func DefaultCategories() []model.Category {
	return []model.Category{
		{Name: MatchFee, Type: model.TypeIncome, Description: "Per-fixture player fees"},
		{Name: Subs, Type: model.TypeIncome, Description: "Season or monthly membership"},
		{Name: Kit, Type: model.TypeIncome, Description: "Kit bought by players"},
		{Name: "FINE", Type: model.TypeIncome, Description: "Disciplinary fines passed on to players"},
		{Name: "SPONSORSHIP", Type: model.TypeIncome},
		{Name: "PITCH_HIRE", Type: model.TypeExpense},
		{Name: "REFEREE", Type: model.TypeExpense, Description: "Match official fees"},
		{Name: "EQUIPMENT", Type: model.TypeExpense},
		{Name: "LEAGUE_FEES", Type: model.TypeExpense, Description: "Affiliation and registration"},
	}
}
