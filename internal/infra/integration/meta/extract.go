package meta

import (
	"fmt"
	"strings"
)

// fieldValue finds the first field whose name contains name
// (case-insensitive) and returns its first value.
func fieldValue(lead Lead, name string) string {
	for _, field := range lead.FieldData {
		if strings.Contains(strings.ToLower(field.Name), strings.ToLower(name)) {
			if len(field.Values) > 0 {
				return field.Values[0]
			}
			return ""
		}
	}
	return ""
}

// ExtractContactInfo normalizes a lead's free-form field data. Form fields
// vary per campaign, so matching is by name substring: "full_name" wins for
// the name, else first/last name are joined, else "N/A". A missing email gets
// a placeholder unique to the lead so the client record never has an empty
// email.
func ExtractContactInfo(lead Lead) ContactInfo {
	name := fieldValue(lead, "full_name")
	if name == "" {
		parts := []string{}
		if first := fieldValue(lead, "first_name"); first != "" {
			parts = append(parts, first)
		}
		if last := fieldValue(lead, "last_name"); last != "" {
			parts = append(parts, last)
		}
		name = strings.Join(parts, " ")
	}
	if name == "" {
		name = "N/A"
	}

	email := fieldValue(lead, "email")
	if email == "" {
		email = fmt.Sprintf("no-email-%s@example.com", lead.ID)
	}

	phone := fieldValue(lead, "phone")
	if phone == "" {
		phone = "N/A"
	}

	return ContactInfo{
		LeadID: lead.ID,
		Name:   name,
		Email:  email,
		Phone:  phone,
	}
}
