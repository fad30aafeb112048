package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testActorInput struct {
	Name     string `json:"name" validate:"required,max=150"`
	Gender   string `json:"gender" validate:"required"`
	Age      int    `json:"age" validate:"required,gt=0,lte=150"`
	PhotoURL string `json:"photoUrl" validate:"omitempty,url"`
}

type testSearchInput struct {
	SearchName   string `json:"searchName" validate:"required_without_all=SearchGender"`
	SearchGender string `json:"searchGender"`
}

func TestValidateStruct(t *testing.T) {
	t.Run("valid struct", func(t *testing.T) {
		s := testActorInput{Name: "Tom Hanks", Gender: "male", Age: 67}
		assert.NoError(t, ValidateStruct(&s))
	})

	t.Run("fields are reported by json name", func(t *testing.T) {
		s := testActorInput{Gender: "female", Age: 30}

		err := ValidateStruct(&s)
		require.Error(t, err)
		assert.True(t, IsValidationError(err))

		fields := GetValidationFields(err)
		assert.Equal(t, "name is required", fields["name"])
	})

	t.Run("age must be positive", func(t *testing.T) {
		s := testActorInput{Name: "x", Gender: "male", Age: -1}

		fields := GetValidationFields(ValidateStruct(&s))
		assert.Equal(t, "age must be greater than 0", fields["age"])
	})

	t.Run("invalid photo url", func(t *testing.T) {
		s := testActorInput{Name: "x", Gender: "male", Age: 5, PhotoURL: "not a url"}

		fields := GetValidationFields(ValidateStruct(&s))
		assert.Equal(t, "photoUrl must be a valid URL", fields["photoUrl"])
	})

	t.Run("name too long", func(t *testing.T) {
		long := make([]byte, 151)
		for i := range long {
			long[i] = 'a'
		}
		s := testActorInput{Name: string(long), Gender: "male", Age: 5}

		fields := GetValidationFields(ValidateStruct(&s))
		assert.Equal(t, "name must be at most 150", fields["name"])
	})

	t.Run("at least one search field", func(t *testing.T) {
		err := ValidateStruct(&testSearchInput{})
		require.Error(t, err)
		assert.Contains(t, GetValidationFields(err), "searchName")

		assert.NoError(t, ValidateStruct(&testSearchInput{SearchGender: "male"}))
	})
}

func TestParseUUID(t *testing.T) {
	id, err := ParseUUID("123e4567-e89b-12d3-a456-426614174000")
	require.NoError(t, err)
	assert.Equal(t, "123e4567-e89b-12d3-a456-426614174000", id.String())

	_, err = ParseUUID("42")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid UUID format")
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Message: "Test validation error",
		Fields:  map[string]string{"field1": "error1"},
	}

	assert.Equal(t, "Test validation error", err.Error())
}

func TestIsValidationError(t *testing.T) {
	assert.True(t, IsValidationError(&ValidationError{Message: "test"}))
	assert.False(t, IsValidationError(assert.AnError))
}

func TestGetValidationFields(t *testing.T) {
	fields := map[string]string{"field1": "error1", "field2": "error2"}
	assert.Equal(t, fields, GetValidationFields(&ValidationError{Message: "test", Fields: fields}))
	assert.Nil(t, GetValidationFields(assert.AnError))
}
