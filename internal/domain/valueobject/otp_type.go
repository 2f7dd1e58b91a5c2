package valueobject

import "fmt"

// OTPType identifies which verification channel an OTP code belongs to.
type OTPType struct {
	value string
}

var validOTPTypes = map[string]struct{}{
	"phone": {},
	"email": {},
}

// NewOTPType creates an OTPType from its string value.
func NewOTPType(value string) (OTPType, error) {
	if _, ok := validOTPTypes[value]; !ok {
		return OTPType{}, fmt.Errorf("invalid otp type: %q", value)
	}
	return OTPType{value: value}, nil
}

func OTPTypePhone() OTPType { return OTPType{value: "phone"} }
func OTPTypeEmail() OTPType { return OTPType{value: "email"} }

// String returns the string value of the type.
func (t OTPType) String() string { return t.value }

// IsZero reports whether the type is the zero value.
func (t OTPType) IsZero() bool { return t.value == "" }

// Equal reports whether two types are the same.
func (t OTPType) Equal(other OTPType) bool { return t.value == other.value }
