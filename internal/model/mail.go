package model

// MailJob is queued in Redis and delivered by the mail worker.
type MailJob struct {
	To       string `json:"to"`
	ToName   string `json:"to_name"`
	Subject  string `json:"subject"`
	BodyHTML string `json:"body_html"`
	BodyText string `json:"body_text"`
	Attempts int    `json:"attempts"`
}
