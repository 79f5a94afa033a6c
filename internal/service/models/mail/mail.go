package mail

// Template identifies which rendered mail the sender should produce.
type Template string

const (
	TemplateOrderConfirmation Template = "order-confirmation"
	TemplateNewOrderAdmin     Template = "new-order-admin"
)

// Message is a templated mail job handed to the mail-sending collaborator.
type Message struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject"`
	Template Template       `json:"template"`
	Model    map[string]any `json:"model"`
}
