package request

type SendOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type VerifyOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required,max=16"`
}

// SignupRequest caps the password at 72 bytes, the most bcrypt will hash.
type SignupRequest struct {
	Email         string  `json:"email" validate:"required,email"`
	Password      string  `json:"password" validate:"required,max=72"`
	Name          *string `json:"name,omitempty" validate:"omitempty,max=255"`
	AadhaarNumber *string `json:"aadhaar_number,omitempty" validate:"omitempty,max=32"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
