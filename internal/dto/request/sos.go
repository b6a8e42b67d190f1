package request

// SOSRequest carries coordinates as the device reports them; beyond being
// present they are not checked.
type SOSRequest struct {
	UserEmail *string `json:"user_email,omitempty"`
	Lat       string  `json:"lat" validate:"required"`
	Long      string  `json:"long" validate:"required"`
}
