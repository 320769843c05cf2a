package constants

const (
	MaxNameLen        = 100
	MaxPhoneNumberLen = 32
	MaxDescriptionLen = 255
)

const (
	// DateTimeLayout is how transaction dates are shown in tables.
	DateTimeLayout = "2006-01-02 15:04"
)

// ReservedUsernames can not be registered.
var ReservedUsernames = map[string]bool{
	"admin":  true,
	"root":   true,
	"system": true,
}
