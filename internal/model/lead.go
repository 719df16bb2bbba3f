package model

// Lead is a demo request submitted from the landing page contact form.
type Lead struct {
	FullName    string `json:"fullName" form:"fullName"`
	Email       string `json:"email" form:"email"`
	CompanyName string `json:"companyName" form:"companyName"`
}
