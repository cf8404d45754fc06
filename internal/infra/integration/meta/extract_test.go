package meta

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractContactInfoFullName(t *testing.T) {
	lead := Lead{
		ID: "lead-1",
		FieldData: []LeadFieldData{
			{Name: "full_name", Values: []string{"Jane Doe"}},
			{Name: "email", Values: []string{"jane@x.com"}},
			{Name: "phone_number", Values: []string{"+15551234567"}},
		},
	}

	info := ExtractContactInfo(lead)

	assert.Equal(t, "lead-1", info.LeadID)
	assert.Equal(t, "Jane Doe", info.Name)
	assert.Equal(t, "jane@x.com", info.Email)
	assert.Equal(t, "+15551234567", info.Phone)
}

func TestExtractContactInfoJoinsFirstAndLastName(t *testing.T) {
	lead := Lead{
		ID: "lead-2",
		FieldData: []LeadFieldData{
			{Name: "first_name", Values: []string{"Jane"}},
			{Name: "last_name", Values: []string{"Doe"}},
		},
	}

	info := ExtractContactInfo(lead)

	assert.Equal(t, "Jane Doe", info.Name)
}

func TestExtractContactInfoFirstNameOnly(t *testing.T) {
	lead := Lead{
		ID: "lead-3",
		FieldData: []LeadFieldData{
			{Name: "first_name", Values: []string{"Jane"}},
		},
	}

	info := ExtractContactInfo(lead)

	assert.Equal(t, "Jane", info.Name)
}

func TestExtractContactInfoDefaults(t *testing.T) {
	info := ExtractContactInfo(Lead{ID: "lead-4"})

	assert.Equal(t, "N/A", info.Name)
	assert.Equal(t, "no-email-lead-4@example.com", info.Email)
	assert.Equal(t, "N/A", info.Phone)
}

func TestExtractContactInfoMatchesFieldNameSubstring(t *testing.T) {
	// Campaign forms rename fields freely; matching is by substring,
	// case-insensitive.
	lead := Lead{
		ID: "lead-5",
		FieldData: []LeadFieldData{
			{Name: "Your_Full_Name_Please", Values: []string{"Jane Doe"}},
			{Name: "Work_Email_Address", Values: []string{"jane@work.com"}},
			{Name: "PHONE", Values: []string{"+15550001111"}},
		},
	}

	info := ExtractContactInfo(lead)

	assert.Equal(t, "Jane Doe", info.Name)
	assert.Equal(t, "jane@work.com", info.Email)
	assert.Equal(t, "+15550001111", info.Phone)
}

func TestExtractContactInfoUsesFirstMatchAndFirstValue(t *testing.T) {
	lead := Lead{
		ID: "lead-6",
		FieldData: []LeadFieldData{
			{Name: "email", Values: []string{"first@x.com", "second@x.com"}},
			{Name: "work_email", Values: []string{"work@x.com"}},
		},
	}

	info := ExtractContactInfo(lead)

	assert.Equal(t, "first@x.com", info.Email)
}

func TestExtractContactInfoEmptyValuesFallThrough(t *testing.T) {
	// A matching field with no values counts as absent for that concern.
	lead := Lead{
		ID: "lead-7",
		FieldData: []LeadFieldData{
			{Name: "full_name", Values: []string{}},
			{Name: "first_name", Values: []string{"Jane"}},
		},
	}

	info := ExtractContactInfo(lead)

	assert.Equal(t, "Jane", info.Name)
}
