package service

import (
	"github.com/google/uuid"

	"daily-diet-api/internal/model"
)

const maxUsernameLength = 255

type UsernameInput struct {
	Username *string `json:"username"`
}

func (in UsernameInput) Validate() (string, error) {
	if in.Username == nil || *in.Username == "" {
		return "", invalid("username", ReasonRequired)
	}
	if len(*in.Username) > maxUsernameLength {
		return "", invalid("username", ReasonTooLong)
	}
	return *in.Username, nil
}

// CreateMealInput is the body of a meal creation. Pointer fields tell a
// missing value apart from a zero one, so an explicit false is accepted for
// is_on_diet while an omitted one is not.
type CreateMealInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Date        *string `json:"date"`
	Hour        *string `json:"hour"`
	IsOnDiet    *bool   `json:"is_on_diet"`
}

func (in CreateMealInput) Validate() error {
	required := []struct {
		field string
		value *string
	}{
		{"name", in.Name},
		{"description", in.Description},
		{"date", in.Date},
		{"hour", in.Hour},
	}
	for _, r := range required {
		if r.value == nil || *r.value == "" {
			return invalid(r.field, ReasonRequired)
		}
	}
	if in.IsOnDiet == nil {
		return invalid("is_on_diet", ReasonRequired)
	}
	return nil
}

// UpdateMealInput is the body of a partial meal update. Absent and empty
// string fields keep their stored value; a present is_on_diet always
// overrides, false included.
type UpdateMealInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Date        *string `json:"date"`
	Hour        *string `json:"hour"`
	IsOnDiet    *bool   `json:"is_on_diet"`
}

func (in UpdateMealInput) Patch() (model.MealPatch, error) {
	patch := model.MealPatch{
		Name:        nonEmpty(in.Name),
		Description: nonEmpty(in.Description),
		Date:        nonEmpty(in.Date),
		Hour:        nonEmpty(in.Hour),
		IsOnDiet:    in.IsOnDiet,
	}
	if patch.Empty() {
		return model.MealPatch{}, invalid("", ReasonNoFields)
	}
	return patch, nil
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

// ParseMealID validates a meal id taken from the request path and returns it
// in canonical form.
func ParseMealID(raw string) (string, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", invalid("id", ReasonInvalidUUID)
	}
	return id.String(), nil
}
