package model

// User is the logged-in employee's profile as returned by the backend.
type User struct {
	ID           int    `json:"id"`
	Email        string `json:"email"`
	FullName     string `json:"fullName"`
	PhoneNumber  string `json:"phoneNumber"`
	Role         string `json:"role"`
	Organization string `json:"organization"`
	Designation  string `json:"designation"`
	State        string `json:"state"`
	BaseLocation string `json:"baseLocation"`
	CompanyName  string `json:"companyName"`
	CreatedAt    string `json:"createdAt"`
	IsVerified   bool   `json:"isVerified"`
}

// Session holds the credentials and cached profile for a logged-in user.
// It is passed explicitly to collaborators that need it; nothing reads it
// from ambient globals.
type Session struct {
	AccessToken  string
	RefreshToken string
	User         User
}
