package model

type Account struct {
	ID        string `db:"id"`
	SessionID string `db:"session_id"`
	Username  string `db:"username"`
}

type Meal struct {
	ID          string `db:"id" json:"id"`
	UserID      string `db:"user_id" json:"user_id"`
	Name        string `db:"name" json:"name"`
	Description string `db:"description" json:"description"`
	Date        string `db:"date" json:"date"`
	Hour        string `db:"hour" json:"hour"`
	IsOnDiet    bool   `db:"is_on_diet" json:"is_on_diet"`
}

// MealPatch holds the fields of a partial meal update. A nil field keeps the
// stored value.
type MealPatch struct {
	Name        *string
	Description *string
	Date        *string
	Hour        *string
	IsOnDiet    *bool
}

func (p MealPatch) Empty() bool {
	return p.Name == nil && p.Description == nil && p.Date == nil && p.Hour == nil && p.IsOnDiet == nil
}

// Apply merges the patch over m.
func (p MealPatch) Apply(m *Meal) {
	if p.Name != nil {
		m.Name = *p.Name
	}
	if p.Description != nil {
		m.Description = *p.Description
	}
	if p.Date != nil {
		m.Date = *p.Date
	}
	if p.Hour != nil {
		m.Hour = *p.Hour
	}
	if p.IsOnDiet != nil {
		m.IsOnDiet = *p.IsOnDiet
	}
}

type Metrics struct {
	TotalMeals        int `json:"totalMeals"`
	TotalMealsOnDiet  int `json:"totalMealsOnDiet"`
	TotalMealsOffDiet int `json:"totalMealsOffDiet"`
	BestDietSequence  int `json:"bestDietSequence"`
}
