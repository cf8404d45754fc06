package meta

// UserProfile is the /me response used to validate an access token.
type UserProfile struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Page is an ad account page; its access token authorizes form/lead reads.
type Page struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	AccessToken string `json:"access_token"`
}

type Form struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

type LeadFieldData struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

type Lead struct {
	ID          string          `json:"id"`
	CreatedTime string          `json:"created_time"`
	FieldData   []LeadFieldData `json:"field_data"`
}

// ContactInfo is the normalized result of extracting a lead's field data,
// ready to become a client-creation request.
type ContactInfo struct {
	LeadID string
	Name   string
	Email  string
	Phone  string
}

type apiError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    int    `json:"code"`
	} `json:"error"`
}
