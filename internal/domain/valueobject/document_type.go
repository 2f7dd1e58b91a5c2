package valueobject

import "fmt"

// DocumentType identifies the kind of evidence artifact a user uploads.
// Only types on the allow-list are accepted at the intake boundary.
type DocumentType struct {
	value string
}

var validDocumentTypes = map[string]struct{}{
	"salary_slip":    {},
	"bank_statement": {},
	"pan_card":       {},
	"aadhaar_card":   {},
	"kyc":            {},
}

// NewDocumentType creates a DocumentType from its string value.
func NewDocumentType(value string) (DocumentType, error) {
	if _, ok := validDocumentTypes[value]; !ok {
		return DocumentType{}, fmt.Errorf("invalid document type: %q", value)
	}
	return DocumentType{value: value}, nil
}

func DocumentSalarySlip() DocumentType    { return DocumentType{value: "salary_slip"} }
func DocumentBankStatement() DocumentType { return DocumentType{value: "bank_statement"} }
func DocumentPANCard() DocumentType       { return DocumentType{value: "pan_card"} }
func DocumentAadhaarCard() DocumentType   { return DocumentType{value: "aadhaar_card"} }
func DocumentKYC() DocumentType           { return DocumentType{value: "kyc"} }

// String returns the string value of the type.
func (t DocumentType) String() string { return t.value }

// IsZero reports whether the type is the zero value.
func (t DocumentType) IsZero() bool { return t.value == "" }

// Equal reports whether two types are the same.
func (t DocumentType) Equal(other DocumentType) bool { return t.value == other.value }

// IsSalaryProof reports whether this document type counts as salary
// evidence for the conditional underwriting tier.
func (t DocumentType) IsSalaryProof() bool { return t.value == "salary_slip" }
