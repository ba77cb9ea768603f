package auth

// RequestMagicLinkDTO is the transport shape for requesting a kiosk login link.
type RequestMagicLinkDTO struct {
	PropertyCode string `json:"property_code"`
	DeviceID     string `json:"device_id"`
}

// IdentifyDTO carries the passcode presented at the kiosk.
type IdentifyDTO struct {
	Passcode string `json:"passcode"`
}

// ValidationError represents a simple validation error from DTO validation.
type ValidationError struct {
	Msg string
}

func (v ValidationError) Error() string { return v.Msg }

func (d RequestMagicLinkDTO) Validate() error {
	if d.PropertyCode == "" {
		return ValidationError{Msg: "property_code is required"}
	}
	if d.DeviceID == "" {
		return ValidationError{Msg: "device_id is required"}
	}
	return nil
}

func (d IdentifyDTO) Validate() error {
	if d.Passcode == "" {
		return ValidationError{Msg: "passcode is required"}
	}
	return nil
}
