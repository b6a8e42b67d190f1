package request

import "crime-report/pkg/media"

// CreateComplaintRequest is filled from a multipart form. Image and Video
// are nil when the part was not sent.
type CreateComplaintRequest struct {
	Title       string `form:"title" validate:"required,max=255"`
	Description string `form:"description" validate:"required"`
	CrimeType   string `form:"crime_type" validate:"required,max=64"`
	UserEmail   string `form:"user_email" validate:"required,max=255"`

	Image *media.File `form:"-" validate:"-"`
	Video *media.File `form:"-" validate:"-"`
}
