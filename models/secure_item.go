package models

// AccessPolicy describes how a secure storage item may be read back.
type AccessPolicy struct {
	// RequireAuthentication gates every read behind a device authentication
	// prompt.
	RequireAuthentication bool `json:"require_authentication"`

	// WhenPasscodeSetThisDeviceOnly makes the item unavailable when the
	// device has no passcode and forbids migrating it to another device.
	WhenPasscodeSetThisDeviceOnly bool `json:"when_passcode_set_this_device_only"`
}

// StrictAccessPolicy is the policy applied to the stored master key.
var StrictAccessPolicy = AccessPolicy{
	RequireAuthentication:         true,
	WhenPasscodeSetThisDeviceOnly: true,
}
