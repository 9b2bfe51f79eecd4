package models

// User is the platform account shape returned by the user endpoints. The
// password field is only ever populated on outgoing create/login requests.
type User struct {
	Username       string `json:"username"`
	Password       string `json:"password,omitempty"`
	IsModerator    bool   `json:"isModerator"`
	DoNotDisturb   bool   `json:"doNotDisturb"`
	ProfilePicture string `json:"profilePicture,omitempty"`
}
