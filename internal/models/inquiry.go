package models

import "time"

// Inquiry categories and statuses.
const (
	InquiryCategoryComplaint      = "complaint"
	InquiryCategoryServiceRequest = "service_request"
	InquiryCategoryGeneral        = "general"

	InquiryStatusOpen       = "open"
	InquiryStatusInProgress = "in_progress"
	InquiryStatusResolved   = "resolved"
)

// Inquiry represents a complaint or service request filed by a user.
type Inquiry struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	Category  string    `json:"category"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateInquiryRequest is the body of POST /inquiries.
type CreateInquiryRequest struct {
	UserID   int64  `json:"user_id" validate:"required,gt=0"`
	Subject  string `json:"subject" validate:"required,min=3"`
	Message  string `json:"message" validate:"required,min=10"`
	Category string `json:"category" validate:"required,oneof=complaint service_request general"`
}

// UpdateInquiryStatusRequest is the body of PUT /inquiries/{id}/status.
type UpdateInquiryStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=open in_progress resolved"`
}
