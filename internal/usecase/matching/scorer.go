package matching

import (
	"github.com/pappi-team/pappi-matching/internal/config"
	"github.com/pappi-team/pappi-matching/internal/domain"
)

// Criteria tags, in the fixed evaluation order of the scorer.
const (
	CriterionSpecies    = "species_match"
	CriterionBreed      = "breed_match"
	CriterionGender     = "gender_match"
	CriterionAge        = "age_match"
	CriterionSize       = "size_match"
	CriterionColor      = "color_match"
	CriterionPedigree   = "pedigree_match"
	CriterionVaccinated = "vaccinated_match"
	CriterionPassport   = "passport_match"
)

// scoreAnimal computes the additive compatibility score of one candidate
// against a preference profile. Dimensions are evaluated in a fixed order so
// the criteria list is deterministic. A dimension the user left unset
// contributes nothing and never disqualifies; absent candidate fields are
// plain non-matches.
func scoreAnimal(w config.MatchingWeights, prefs *domain.Preferences, a *domain.Animal) (float64, []string) {
	var score float64
	criteria := []string{}

	if len(prefs.Species) > 0 && contains(prefs.Species, a.Species) {
		score += w.Species
		criteria = append(criteria, CriterionSpecies)
	}

	if len(prefs.Breeds) > 0 && contains(prefs.Breeds, a.Breed) {
		score += w.Breed
		criteria = append(criteria, CriterionBreed)
	}

	if prefs.Gender != nil && a.Gender != "" && a.Gender == *prefs.Gender {
		score += w.Gender
		criteria = append(criteria, CriterionGender)
	}

	// An absent bound is unbounded on that side; a candidate without a known
	// age neither gains nor loses on this dimension.
	if a.Age != nil {
		if (prefs.AgeMin == nil || *a.Age >= *prefs.AgeMin) &&
			(prefs.AgeMax == nil || *a.Age <= *prefs.AgeMax) {
			score += w.Age
			criteria = append(criteria, CriterionAge)
		}
	}

	if len(prefs.Sizes) > 0 && contains(prefs.Sizes, a.Size) {
		score += w.Size
		criteria = append(criteria, CriterionSize)
	}

	if len(prefs.Colors) > 0 && contains(prefs.Colors, a.Color) {
		score += w.Color
		criteria = append(criteria, CriterionColor)
	}

	if prefs.RequiresPedigree && a.Pedigree {
		score += w.Pedigree
		criteria = append(criteria, CriterionPedigree)
	}
	if prefs.RequiresVaccinated && a.Vaccinated {
		score += w.Vaccinated
		criteria = append(criteria, CriterionVaccinated)
	}
	if prefs.RequiresPassport && a.Passport {
		score += w.Passport
		criteria = append(criteria, CriterionPassport)
	}

	return score, criteria
}

func contains(set []string, value string) bool {
	if value == "" {
		return false
	}
	for _, s := range set {
		if s == value {
			return true
		}
	}
	return false
}
