package mail

type LeadAssignedEmailData struct {
	AdvisorName string
	ClientName  string
	ClientEmail string
	Stage       string
}

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}
