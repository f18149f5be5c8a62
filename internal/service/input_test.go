package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func validCreate() CreateMealInput {
	return CreateMealInput{
		Name:        strPtr("New meal"),
		Description: strPtr("Description new meal"),
		Date:        strPtr("31/01/2024"),
		Hour:        strPtr("12:00"),
		IsOnDiet:    boolPtr(false),
	}
}

func requireValidationError(t *testing.T, err error, field, reason string) {
	t.Helper()
	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr), "expected ValidationError, got %v", err)
	assert.Equal(t, field, vErr.Field)
	assert.Equal(t, reason, vErr.Reason)
}

func TestCreateMealInput_AcceptsExplicitFalse(t *testing.T) {
	assert.NoError(t, validCreate().Validate())
}

func TestCreateMealInput_MissingFields(t *testing.T) {
	in := validCreate()
	in.Name = nil
	requireValidationError(t, in.Validate(), "name", ReasonRequired)

	in = validCreate()
	in.Hour = strPtr("")
	requireValidationError(t, in.Validate(), "hour", ReasonRequired)

	in = validCreate()
	in.IsOnDiet = nil
	requireValidationError(t, in.Validate(), "is_on_diet", ReasonRequired)
}

func TestUpdateMealInput_EmptyPayload(t *testing.T) {
	_, err := UpdateMealInput{}.Patch()
	requireValidationError(t, err, "", ReasonNoFields)

	_, err = UpdateMealInput{Name: strPtr(""), Date: strPtr("")}.Patch()
	requireValidationError(t, err, "", ReasonNoFields)
}

func TestUpdateMealInput_FalseAloneIsAField(t *testing.T) {
	patch, err := UpdateMealInput{IsOnDiet: boolPtr(false)}.Patch()
	require.NoError(t, err)
	require.NotNil(t, patch.IsOnDiet)
	assert.False(t, *patch.IsOnDiet)
	assert.Nil(t, patch.Name)
}

func TestUpdateMealInput_EmptyStringKeepsValue(t *testing.T) {
	patch, err := UpdateMealInput{Name: strPtr(""), Hour: strPtr("13:00")}.Patch()
	require.NoError(t, err)
	assert.Nil(t, patch.Name)
	assert.Equal(t, "13:00", *patch.Hour)
}

func TestUsernameInput_Validate(t *testing.T) {
	_, err := UsernameInput{}.Validate()
	requireValidationError(t, err, "username", ReasonRequired)

	_, err = UsernameInput{Username: strPtr(strings.Repeat("a", 256))}.Validate()
	requireValidationError(t, err, "username", ReasonTooLong)

	name, err := UsernameInput{Username: strPtr("John Doe")}.Validate()
	require.NoError(t, err)
	assert.Equal(t, "John Doe", name)
}

func TestParseMealID(t *testing.T) {
	_, err := ParseMealID("not-a-uuid")
	requireValidationError(t, err, "id", ReasonInvalidUUID)

	id, err := ParseMealID("3F2504E0-4F89-11D3-9A0C-0305E82C3301")
	require.NoError(t, err)
	assert.Equal(t, "3f2504e0-4f89-11d3-9a0c-0305e82c3301", id)
}

func TestValidationError_Message(t *testing.T) {
	assert.Equal(t, "name is required", (&ValidationError{Field: "name", Reason: ReasonRequired}).Error())
	assert.Equal(t, ReasonNoFields, (&ValidationError{Reason: ReasonNoFields}).Error())
}
