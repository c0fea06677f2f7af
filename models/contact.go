package models

// ContactMessage is a contact-form submission relayed through the email
// capability. Nothing is persisted.
type ContactMessage struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone,omitempty"`
	Message string `json:"message" binding:"required"`
}
