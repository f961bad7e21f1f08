package dto

type CredentialsDTO struct {
	Email    string `json:"email" format:"email"`
	Password string `json:"password" minLength:"6"`
}

type SessionDTO struct {
	AccessToken  string `json:"access_token,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
	ExpiresIn    int    `json:"expires_in,omitempty"`
	UserID       string `json:"user_id"`
	Email        string `json:"email"`
	// ConfirmationRequired is set when signup succeeded but the account must
	// be confirmed by e-mail before it can log in.
	ConfirmationRequired bool `json:"confirmation_required"`
}

type DashboardDTO struct {
	TotalCourses   int     `json:"total_courses"`
	ActiveCourses  int     `json:"active_courses"`
	Submissions    int     `json:"submissions"`
	Enrollments    int     `json:"enrollments"`
	ConversionRate float64 `json:"conversion_rate"`
}

type ImageUploadResponseDTO struct {
	URL string `json:"url"`
}
