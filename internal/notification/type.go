package notification

// CreateInput is the input for creating a notification.
type CreateInput struct {
	Title          string
	Message        string
	RecipientRoles []string
}
