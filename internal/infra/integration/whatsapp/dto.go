package whatsapp

type SendMessageInput struct {
	PhoneNumber  string   // E.164, ex: "+15551234567"
	TemplateName string   // Ex: "new_lead_notification"
	Parameters   []string // Ex: []string{"Ana García", "Innovate Corp"}
}

type SendMessageResponse struct {
	Contacts []struct {
		Input string `json:"input"`
		WaID  string `json:"wa_id"`
	} `json:"contacts"`
	Error *ErrorResponse `json:"error"`
}

type ErrorResponse struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
	Type    string `json:"type"`
}
