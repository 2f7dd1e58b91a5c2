// Package dto defines the request and response shapes of the
// application layer. Requests carry validation tags checked at the
// boundary before any state is touched.
package dto

import (
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks a request struct against its validation tags.
func Validate(v any) error {
	return validate.Struct(v)
}

// RegisterUserRequest creates a new user account.
type RegisterUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required,min=10,max=16"`
	FullName string `json:"full_name" validate:"required,min=2"`
	Password string `json:"password" validate:"required,min=8"`
	Address  string `json:"address" validate:"omitempty,max=500"`
	City     string `json:"city" validate:"omitempty,max=100"`
	Age      int    `json:"age" validate:"omitempty,gte=18,lte=120"`
}

// LoginRequest authenticates an existing user.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse carries a session token after registration or login.
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// FinancialProfileResponse mirrors the user's declared income figures.
type FinancialProfileResponse struct {
	MonthlyIncome  string `json:"monthly_income,omitempty"`
	ExistingEMI    string `json:"existing_emi"`
	EmploymentType string `json:"employment_type,omitempty"`
	IncomeVerified bool   `json:"income_verified"`
}

// UserResponse is the external view of a user.
type UserResponse struct {
	ID               string                   `json:"id"`
	Email            string                   `json:"email"`
	Phone            string                   `json:"phone"`
	FullName         string                   `json:"full_name"`
	Address          string                   `json:"address,omitempty"`
	City             string                   `json:"city,omitempty"`
	Age              int                      `json:"age,omitempty"`
	CreditScore      int                      `json:"credit_score"`
	PreApprovedLimit string                   `json:"pre_approved_limit"`
	PhoneVerified    bool                     `json:"phone_verified"`
	EmailVerified    bool                     `json:"email_verified"`
	KYCVerified      bool                     `json:"kyc_verified"`
	Profile          FinancialProfileResponse `json:"financial_profile"`
	CreatedAt        time.Time                `json:"created_at"`
}

// UpdateFinancialProfileRequest replaces the declared income figures.
type UpdateFinancialProfileRequest struct {
	UserID         string   `json:"user_id" validate:"required,uuid"`
	MonthlyIncome  *float64 `json:"monthly_income" validate:"omitempty,gt=0"`
	ExistingEMI    float64  `json:"existing_emi" validate:"gte=0"`
	EmploymentType string   `json:"employment_type" validate:"omitempty,oneof=salaried self_employed"`
}

// CheckAffordabilityRequest runs a what-if affordability assessment.
type CheckAffordabilityRequest struct {
	UserID        string  `json:"user_id" validate:"required,uuid"`
	MonthlyIncome float64 `json:"monthly_income" validate:"required,gt=0"`
	ExistingEMI   float64 `json:"existing_emi" validate:"gte=0"`
	LoanAmount    float64 `json:"loan_amount" validate:"required,gt=0"`
	TenureMonths  int     `json:"tenure_months" validate:"required,gt=0,lte=120"`
}

// AffordabilityResponse is the full assessment report.
type AffordabilityResponse struct {
	ProposedEMI       string `json:"proposed_emi"`
	TotalEMI          string `json:"total_emi"`
	EMIPercentage     string `json:"emi_percentage"`
	DTIRatio          string `json:"dti_ratio"`
	MaxAffordableLoan string `json:"max_affordable_loan"`
	IsAffordable      bool   `json:"is_affordable"`
	Recommendation    string `json:"recommendation"`
	InterestRate      string `json:"interest_rate"`
}

// RequestOTPRequest issues a fresh verification code.
type RequestOTPRequest struct {
	UserID string `json:"user_id" validate:"required,uuid"`
	Type   string `json:"type" validate:"required,oneof=phone email"`
}

// RequestOTPResponse carries the issued code for the demo surface and
// reports whether the delivery attempt succeeded.
type RequestOTPResponse struct {
	Code      string `json:"code"`
	Delivered bool   `json:"delivered"`
	ExpiresAt string `json:"expires_at"`
}

// VerifyOTPRequest consumes a verification code.
type VerifyOTPRequest struct {
	UserID string `json:"user_id" validate:"required,uuid"`
	Type   string `json:"type" validate:"required,oneof=phone email"`
	Code   string `json:"code" validate:"required,len=6,numeric"`
}

// VerifyOTPResponse reports the verification outcome.
type VerifyOTPResponse struct {
	Verified    bool `json:"verified"`
	KYCVerified bool `json:"kyc_verified"`
}

// StartChatSessionRequest opens a new conversation thread.
type StartChatSessionRequest struct {
	UserID string `json:"user_id" validate:"required,uuid"`
}

// ChatSessionResponse is the external view of a session.
type ChatSessionResponse struct {
	ID               string `json:"id"`
	UserID           string `json:"user_id"`
	ApplicationID    string `json:"application_id,omitempty"`
	Status           string `json:"status"`
	Stage            string `json:"stage"`
	DiscoveredIntent string `json:"discovered_intent,omitempty"`
}

// SendChatMessageRequest submits one user turn.
type SendChatMessageRequest struct {
	UserID    string `json:"user_id" validate:"required,uuid"`
	SessionID string `json:"session_id" validate:"required,uuid"`
	Message   string `json:"message" validate:"required,max=4000"`
}

// ChatReplyResponse is the assistant turn produced for a user message.
type ChatReplyResponse struct {
	SessionID string `json:"session_id"`
	Reply     string `json:"reply"`
	Stage     string `json:"stage"`
	AgentName string `json:"agent_name"`
}

// GetChatHistoryRequest fetches all turns of a session in order.
type GetChatHistoryRequest struct {
	UserID    string `json:"user_id" validate:"required,uuid"`
	SessionID string `json:"session_id" validate:"required,uuid"`
}

// ChatMessageResponse is one turn of the history.
type ChatMessageResponse struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	AgentName string    `json:"agent_name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ChatHistoryResponse is the ordered replay of a session.
type ChatHistoryResponse struct {
	SessionID string                `json:"session_id"`
	Messages  []ChatMessageResponse `json:"messages"`
}

// SubmitLoanApplicationRequest creates and underwrites an application.
type SubmitLoanApplicationRequest struct {
	UserID       string  `json:"user_id" validate:"required,uuid"`
	SessionID    string  `json:"session_id" validate:"omitempty,uuid"`
	Amount       float64 `json:"amount" validate:"required,gt=0"`
	TenureMonths int     `json:"tenure_months" validate:"required,gt=0,lte=120"`
	Purpose      string  `json:"purpose" validate:"required,max=200"`
}

// ApplicationResponse is the external view of a loan application.
type ApplicationResponse struct {
	ID              string                 `json:"id"`
	UserID          string                 `json:"user_id"`
	Amount          string                 `json:"amount"`
	TenureMonths    int                    `json:"tenure_months"`
	InterestRate    string                 `json:"interest_rate"`
	Purpose         string                 `json:"purpose"`
	EMI             string                 `json:"emi"`
	TotalPayable    string                 `json:"total_payable"`
	Status          string                 `json:"status"`
	RejectionReason string                 `json:"rejection_reason,omitempty"`
	SanctionRef     string                 `json:"sanction_ref,omitempty"`
	Affordability   *AffordabilityResponse `json:"affordability,omitempty"`
	CreatedAt       time.Time              `json:"created_at"`
}

// SubmitLoanApplicationResponse pairs the stored application with the
// decision message shown to the user.
type SubmitLoanApplicationResponse struct {
	Application          ApplicationResponse `json:"application"`
	Message              string              `json:"message"`
	Approved             bool                `json:"approved"`
	RequiresDocuments    bool                `json:"requires_documents"`
	RequiresVerification bool                `json:"requires_verification"`
}

// GetApplicationRequest fetches one application owned by the caller.
type GetApplicationRequest struct {
	UserID        string `json:"user_id" validate:"required,uuid"`
	ApplicationID string `json:"application_id" validate:"required,uuid"`
}

// ListApplicationsRequest fetches all applications owned by the caller.
type ListApplicationsRequest struct {
	UserID string `json:"user_id" validate:"required,uuid"`
}

// ListApplicationsResponse is the caller's application history.
type ListApplicationsResponse struct {
	Applications []ApplicationResponse `json:"applications"`
}

// UploadDocumentRequest stores evidence bytes for underwriting.
type UploadDocumentRequest struct {
	UserID        string `json:"user_id" validate:"required,uuid"`
	ApplicationID string `json:"application_id" validate:"omitempty,uuid"`
	Type          string `json:"type" validate:"required,oneof=salary_slip bank_statement pan_card aadhaar_card kyc"`
	FileName      string `json:"file_name" validate:"required,max=255"`
	Data          []byte `json:"data" validate:"required"`
}

// DownloadSanctionLetterRequest fetches the sanction artifact of an
// approved application.
type DownloadSanctionLetterRequest struct {
	UserID        string `json:"user_id" validate:"required,uuid"`
	ApplicationID string `json:"application_id" validate:"required,uuid"`
}

// DownloadSanctionLetterResponse carries the artifact bytes.
type DownloadSanctionLetterResponse struct {
	FileName string `json:"file_name"`
	Content  []byte `json:"content"`
}

// UploadDocumentResponse reports the stored document and any
// re-evaluation it triggered.
type UploadDocumentResponse struct {
	DocumentID  string `json:"document_id"`
	StorageRef  string `json:"storage_ref"`
	Reevaluated bool   `json:"reevaluated"`
	NewStatus   string `json:"new_status,omitempty"`
}
