package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var intakeRules = Schema{
	{Name: "name", Kind: KindString, Required: true, Max: 255},
	{Name: "contact", Kind: KindString, Required: true, Max: 20},
	{Name: "email", Kind: KindString, Required: true},
	{Name: "cpf", Kind: KindString, Required: true},
	{Name: "observations", Kind: KindString, Required: true},
	{Name: "pet_id", Kind: KindInteger, Required: true},
}

func decode(t *testing.T, body string) Payload {
	t.Helper()
	payload, err := Decode(strings.NewReader(body))
	require.NoError(t, err)
	return payload
}

func TestValidate_AcceptsCompletePayload(t *testing.T) {
	payload := decode(t, `{"name":"Ana","contact":"1199","email":"a@b.c","cpf":"123","observations":"ok","pet_id":4}`)

	require.NoError(t, intakeRules.Validate(payload))
	id, ok := payload.Int("pet_id")
	require.True(t, ok)
	assert.Equal(t, int64(4), id)
}

func TestValidate_EmptyStringsReportTypeAndRequired(t *testing.T) {
	payload := decode(t, `{"name":"","contact":"","email":"","cpf":"","observations":"","pet_id":1}`)

	err := intakeRules.Validate(payload)
	var violations Errors
	require.ErrorAs(t, err, &violations)
	require.Len(t, violations, 10)
	assert.Equal(t, "The name field must be a string. (and 9 more errors)", violations.Summary())
	assert.Equal(t, Violation{Field: "name", Message: "The name field is required."}, violations[1])
}

func TestValidate_AbsentFieldsOnlyReportRequired(t *testing.T) {
	err := intakeRules.Validate(decode(t, `{}`))

	var violations Errors
	require.ErrorAs(t, err, &violations)
	require.Len(t, violations, 6)
	assert.Equal(t, "The name field is required. (and 5 more errors)", violations.Summary())
	assert.Equal(t, "The pet id field is required.", violations[5].Message)
}

func TestValidate_WrongTypeOnlyReportsTypeRule(t *testing.T) {
	payload := decode(t, `{"name":12,"contact":"1","email":"e","cpf":"c","observations":"o","pet_id":"abc"}`)

	err := intakeRules.Validate(payload)
	var violations Errors
	require.ErrorAs(t, err, &violations)
	require.Len(t, violations, 2)
	assert.Equal(t, "The name field must be a string.", violations[0].Message)
	assert.Equal(t, "The pet id field must be an integer.", violations[1].Message)
	assert.Equal(t, "The name field must be a string. (and 1 more error)", violations.Summary())
}

func TestValidate_ZeroValuesAreNotMissing(t *testing.T) {
	payload := decode(t, `{"name":false,"contact":"1","email":"e","cpf":"c","observations":"o","pet_id":false}`)

	err := intakeRules.Validate(payload)
	var violations Errors
	require.ErrorAs(t, err, &violations)
	require.Len(t, violations, 2)
	assert.Equal(t, "The name field must be a string. (and 1 more error)", violations.Summary())
	assert.Equal(t, "The pet id field must be an integer.", violations[1].Message)

	require.NoError(t, Schema{{Name: "age", Kind: KindInteger, Required: true}}.Validate(decode(t, `{"age":0}`)))
	require.Error(t, Schema{{Name: "tags", Required: true}}.Validate(decode(t, `{"tags":[]}`)))
}

func TestValidate_MaxCountsCharacters(t *testing.T) {
	payload := Payload{
		"name":         strings.Repeat("é", 255),
		"contact":      strings.Repeat("9", 21),
		"email":        "e",
		"cpf":          "c",
		"observations": "o",
		"pet_id":       "7",
	}

	err := intakeRules.Validate(payload)
	var violations Errors
	require.ErrorAs(t, err, &violations)
	require.Len(t, violations, 1)
	assert.Equal(t, "The contact field must not be greater than 20 characters.", violations[0].Message)
}

func TestValidate_DecimalIsNotAnInteger(t *testing.T) {
	err := Schema{{Name: "pet_id", Kind: KindInteger, Required: true}}.Validate(decode(t, `{"pet_id":1.5}`))

	var violations Errors
	require.ErrorAs(t, err, &violations)
	assert.Equal(t, "The pet id field must be an integer.", violations.Summary())
}

func TestDecode_RejectsNonObjects(t *testing.T) {
	_, err := Decode(strings.NewReader(`[1,2]`))
	require.ErrorIs(t, err, ErrMalformedPayload)

	payload, err := Decode(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, payload)
}

func TestFromValues_TrimsAndNullsEmptyStrings(t *testing.T) {
	payload := FromValues(map[string][]string{"description": {"  "}, "other": {" x "}})

	assert.False(t, payload.Has("description"))
	assert.Equal(t, "x", payload.String("other"))
}
