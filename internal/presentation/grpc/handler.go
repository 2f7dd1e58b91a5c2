package grpc

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/finncap/origination/internal/application/dto"
	"github.com/finncap/origination/internal/application/usecase"
	"github.com/finncap/origination/internal/domain/model"
	"github.com/finncap/origination/internal/domain/port"
	"github.com/finncap/origination/pkg/auth"
)

// userIDFromContext extracts the authenticated user ID from JWT claims.
func userIDFromContext(ctx context.Context) (string, error) {
	claims, ok := auth.ClaimsFromContext(ctx)
	if !ok {
		return "", status.Error(codes.Unauthenticated, "authentication required")
	}
	return claims.UserID, nil
}

// Compile-time assertion that Handler implements OriginationServiceServer.
var _ OriginationServiceServer = (*Handler)(nil)

// Handler implements the OriginationServiceServer gRPC interface.
type Handler struct {
	UnimplementedOriginationServiceServer
	register      *usecase.RegisterUserUseCase
	login         *usecase.LoginUseCase
	profile       *usecase.ProfileUseCase
	affordability *usecase.CheckAffordabilityUseCase
	requestOTP    *usecase.RequestOTPUseCase
	verifyOTP     *usecase.VerifyOTPUseCase
	startChat     *usecase.StartChatSessionUseCase
	sendMessage   *usecase.SendChatMessageUseCase
	chatHistory   *usecase.GetChatHistoryUseCase
	submit        *usecase.SubmitLoanApplicationUseCase
	applications  *usecase.ApplicationQueryUseCase
	upload        *usecase.UploadDocumentUseCase
	sanction      *usecase.DownloadSanctionUseCase
	logger        *slog.Logger
}

// HandlerDeps bundles the use cases a Handler delegates to.
type HandlerDeps struct {
	Register      *usecase.RegisterUserUseCase
	Login         *usecase.LoginUseCase
	Profile       *usecase.ProfileUseCase
	Affordability *usecase.CheckAffordabilityUseCase
	RequestOTP    *usecase.RequestOTPUseCase
	VerifyOTP     *usecase.VerifyOTPUseCase
	StartChat     *usecase.StartChatSessionUseCase
	SendMessage   *usecase.SendChatMessageUseCase
	ChatHistory   *usecase.GetChatHistoryUseCase
	Submit        *usecase.SubmitLoanApplicationUseCase
	Applications  *usecase.ApplicationQueryUseCase
	Upload        *usecase.UploadDocumentUseCase
	Sanction      *usecase.DownloadSanctionUseCase
}

// NewHandler creates a new gRPC Handler.
func NewHandler(deps HandlerDeps, logger *slog.Logger) *Handler {
	return &Handler{
		register:      deps.Register,
		login:         deps.Login,
		profile:       deps.Profile,
		affordability: deps.Affordability,
		requestOTP:    deps.RequestOTP,
		verifyOTP:     deps.VerifyOTP,
		startChat:     deps.StartChat,
		sendMessage:   deps.SendMessage,
		chatHistory:   deps.ChatHistory,
		submit:        deps.Submit,
		applications:  deps.Applications,
		upload:        deps.Upload,
		sanction:      deps.Sanction,
		logger:        logger,
	}
}

// toStatus maps application errors to gRPC status codes. Unrecognized
// errors are logged and hidden behind codes.Internal.
func (h *Handler) toStatus(method string, err error) error {
	var vErrs validator.ValidationErrors
	switch {
	case errors.As(err, &vErrs):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, port.ErrUserNotFound),
		errors.Is(err, port.ErrApplicationNotFound),
		errors.Is(err, port.ErrSessionNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, port.ErrDuplicateEmail):
		return status.Error(codes.AlreadyExists, "email already registered")
	case errors.Is(err, usecase.ErrInvalidCredentials):
		return status.Error(codes.Unauthenticated, "invalid email or password")
	case errors.Is(err, usecase.ErrDocumentTooLarge),
		errors.Is(err, model.ErrInvalidLoanRequest),
		errors.Is(err, model.ErrInvalidFinancialProfile):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, usecase.ErrSanctionNotAvailable),
		errors.Is(err, model.ErrApplicationTerminal):
		return status.Error(codes.FailedPrecondition, err.Error())
	default:
		h.logger.Error(method+" failed", "error", err)
		return status.Error(codes.Internal, "internal error")
	}
}

// Proto-aligned request/response message types.

// FinancialProfileMsg represents the proto FinancialProfile message.
type FinancialProfileMsg struct {
	MonthlyIncome  string `json:"monthly_income,omitempty"`
	ExistingEMI    string `json:"existing_emi"`
	EmploymentType string `json:"employment_type,omitempty"`
	IncomeVerified bool   `json:"income_verified"`
}

// UserMsg represents the proto User message.
type UserMsg struct {
	ID               string               `json:"id"`
	Email            string               `json:"email"`
	Phone            string               `json:"phone"`
	FullName         string               `json:"full_name"`
	Address          string               `json:"address,omitempty"`
	City             string               `json:"city,omitempty"`
	Age              int32                `json:"age,omitempty"`
	CreditScore      int32                `json:"credit_score"`
	PreApprovedLimit string               `json:"pre_approved_limit"`
	PhoneVerified    bool                 `json:"phone_verified"`
	EmailVerified    bool                 `json:"email_verified"`
	KYCVerified      bool                 `json:"kyc_verified"`
	FinancialProfile *FinancialProfileMsg `json:"financial_profile,omitempty"`
	CreatedAt        string               `json:"created_at"`
}

// AffordabilityMsg represents the proto AffordabilityReport message.
type AffordabilityMsg struct {
	ProposedEMI       string `json:"proposed_emi"`
	TotalEMI          string `json:"total_emi"`
	EMIPercentage     string `json:"emi_percentage"`
	DTIRatio          string `json:"dti_ratio"`
	MaxAffordableLoan string `json:"max_affordable_loan"`
	IsAffordable      bool   `json:"is_affordable"`
	Recommendation    string `json:"recommendation"`
	InterestRate      string `json:"interest_rate"`
}

// ApplicationMsg represents the proto LoanApplication message.
type ApplicationMsg struct {
	ID              string            `json:"id"`
	UserID          string            `json:"user_id"`
	Amount          string            `json:"amount"`
	TenureMonths    int32             `json:"tenure_months"`
	InterestRate    string            `json:"interest_rate"`
	Purpose         string            `json:"purpose"`
	EMI             string            `json:"emi"`
	TotalPayable    string            `json:"total_payable"`
	Status          string            `json:"status"`
	RejectionReason string            `json:"rejection_reason,omitempty"`
	SanctionRef     string            `json:"sanction_ref,omitempty"`
	Affordability   *AffordabilityMsg `json:"affordability,omitempty"`
	CreatedAt       string            `json:"created_at"`
}

// ChatSessionMsg represents the proto ChatSession message.
type ChatSessionMsg struct {
	ID               string `json:"id"`
	UserID           string `json:"user_id"`
	ApplicationID    string `json:"application_id,omitempty"`
	Status           string `json:"status"`
	Stage            string `json:"stage"`
	DiscoveredIntent string `json:"discovered_intent,omitempty"`
}

// ChatMessageMsg represents the proto ChatMessage message.
type ChatMessageMsg struct {
	ID        string `json:"id"`
	Role      string `json:"role"`
	Content   string `json:"content"`
	AgentName string `json:"agent_name,omitempty"`
	CreatedAt string `json:"created_at"`
}

// RegisterUserRequest represents the proto RegisterUserRequest message.
type RegisterUserRequest struct {
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	FullName string `json:"full_name"`
	Password string `json:"password"`
	Address  string `json:"address,omitempty"`
	City     string `json:"city,omitempty"`
	Age      int32  `json:"age,omitempty"`
}

// AuthResponse represents the proto AuthResponse message.
type AuthResponse struct {
	Token string   `json:"token"`
	User  *UserMsg `json:"user"`
}

// LoginRequest represents the proto LoginRequest message.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// GetProfileRequest represents the proto GetProfileRequest message.
type GetProfileRequest struct{}

// GetProfileResponse represents the proto GetProfileResponse message.
type GetProfileResponse struct {
	User *UserMsg `json:"user"`
}

// UpdateFinancialProfileRequest represents the proto UpdateFinancialProfileRequest message.
type UpdateFinancialProfileRequest struct {
	MonthlyIncome  *float64 `json:"monthly_income,omitempty"`
	ExistingEMI    float64  `json:"existing_emi"`
	EmploymentType string   `json:"employment_type,omitempty"`
}

// UpdateFinancialProfileResponse represents the proto UpdateFinancialProfileResponse message.
type UpdateFinancialProfileResponse struct {
	User *UserMsg `json:"user"`
}

// CheckAffordabilityRequest represents the proto CheckAffordabilityRequest message.
type CheckAffordabilityRequest struct {
	MonthlyIncome float64 `json:"monthly_income"`
	ExistingEMI   float64 `json:"existing_emi"`
	LoanAmount    float64 `json:"loan_amount"`
	TenureMonths  int32   `json:"tenure_months"`
}

// CheckAffordabilityResponse represents the proto CheckAffordabilityResponse message.
type CheckAffordabilityResponse struct {
	Report *AffordabilityMsg `json:"report"`
}

// RequestOTPRequest represents the proto RequestOTPRequest message.
type RequestOTPRequest struct {
	Type string `json:"type"`
}

// RequestOTPResponse represents the proto RequestOTPResponse message.
type RequestOTPResponse struct {
	Code      string `json:"code"`
	Delivered bool   `json:"delivered"`
	ExpiresAt string `json:"expires_at"`
}

// VerifyOTPRequest represents the proto VerifyOTPRequest message.
type VerifyOTPRequest struct {
	Type string `json:"type"`
	Code string `json:"code"`
}

// VerifyOTPResponse represents the proto VerifyOTPResponse message.
type VerifyOTPResponse struct {
	Verified    bool `json:"verified"`
	KYCVerified bool `json:"kyc_verified"`
}

// StartChatSessionRequest represents the proto StartChatSessionRequest message.
type StartChatSessionRequest struct{}

// StartChatSessionResponse represents the proto StartChatSessionResponse message.
type StartChatSessionResponse struct {
	Session *ChatSessionMsg `json:"session"`
}

// SendChatMessageRequest represents the proto SendChatMessageRequest message.
type SendChatMessageRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

// SendChatMessageResponse represents the proto SendChatMessageResponse message.
type SendChatMessageResponse struct {
	SessionID string `json:"session_id"`
	Reply     string `json:"reply"`
	Stage     string `json:"stage"`
	AgentName string `json:"agent_name"`
}

// GetChatHistoryRequest represents the proto GetChatHistoryRequest message.
type GetChatHistoryRequest struct {
	SessionID string `json:"session_id"`
}

// GetChatHistoryResponse represents the proto GetChatHistoryResponse message.
type GetChatHistoryResponse struct {
	SessionID string            `json:"session_id"`
	Messages  []*ChatMessageMsg `json:"messages"`
}

// SubmitApplicationRequest represents the proto SubmitApplicationRequest message.
type SubmitApplicationRequest struct {
	SessionID    string  `json:"session_id,omitempty"`
	Amount       float64 `json:"amount"`
	TenureMonths int32   `json:"tenure_months"`
	Purpose      string  `json:"purpose"`
}

// SubmitApplicationResponse represents the proto SubmitApplicationResponse message.
type SubmitApplicationResponse struct {
	Application          *ApplicationMsg `json:"application"`
	Message              string          `json:"message"`
	Approved             bool            `json:"approved"`
	RequiresDocuments    bool            `json:"requires_documents"`
	RequiresVerification bool            `json:"requires_verification"`
}

// GetApplicationRequest represents the proto GetApplicationRequest message.
type GetApplicationRequest struct {
	ApplicationID string `json:"application_id"`
}

// GetApplicationResponse represents the proto GetApplicationResponse message.
type GetApplicationResponse struct {
	Application *ApplicationMsg `json:"application"`
}

// ListApplicationsRequest represents the proto ListApplicationsRequest message.
type ListApplicationsRequest struct{}

// ListApplicationsResponse represents the proto ListApplicationsResponse message.
type ListApplicationsResponse struct {
	Applications []*ApplicationMsg `json:"applications"`
}

// UploadDocumentRequest represents the proto UploadDocumentRequest message.
type UploadDocumentRequest struct {
	ApplicationID string `json:"application_id,omitempty"`
	Type          string `json:"type"`
	FileName      string `json:"file_name"`
	Data          []byte `json:"data"`
}

// UploadDocumentResponse represents the proto UploadDocumentResponse message.
type UploadDocumentResponse struct {
	DocumentID  string `json:"document_id"`
	StorageRef  string `json:"storage_ref"`
	Reevaluated bool   `json:"reevaluated"`
	NewStatus   string `json:"new_status,omitempty"`
}

// DownloadSanctionLetterRequest represents the proto DownloadSanctionLetterRequest message.
type DownloadSanctionLetterRequest struct {
	ApplicationID string `json:"application_id"`
}

// DownloadSanctionLetterResponse represents the proto DownloadSanctionLetterResponse message.
type DownloadSanctionLetterResponse struct {
	FileName string `json:"file_name"`
	Content  []byte `json:"content"`
}

// Message mapping helpers.

func toUserMsg(u dto.UserResponse) *UserMsg {
	return &UserMsg{
		ID:               u.ID,
		Email:            u.Email,
		Phone:            u.Phone,
		FullName:         u.FullName,
		Address:          u.Address,
		City:             u.City,
		Age:              int32(u.Age),
		CreditScore:      int32(u.CreditScore),
		PreApprovedLimit: u.PreApprovedLimit,
		PhoneVerified:    u.PhoneVerified,
		EmailVerified:    u.EmailVerified,
		KYCVerified:      u.KYCVerified,
		FinancialProfile: &FinancialProfileMsg{
			MonthlyIncome:  u.Profile.MonthlyIncome,
			ExistingEMI:    u.Profile.ExistingEMI,
			EmploymentType: u.Profile.EmploymentType,
			IncomeVerified: u.Profile.IncomeVerified,
		},
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}

func toAffordabilityMsg(r dto.AffordabilityResponse) *AffordabilityMsg {
	return &AffordabilityMsg{
		ProposedEMI:       r.ProposedEMI,
		TotalEMI:          r.TotalEMI,
		EMIPercentage:     r.EMIPercentage,
		DTIRatio:          r.DTIRatio,
		MaxAffordableLoan: r.MaxAffordableLoan,
		IsAffordable:      r.IsAffordable,
		Recommendation:    r.Recommendation,
		InterestRate:      r.InterestRate,
	}
}

func toApplicationMsg(a dto.ApplicationResponse) *ApplicationMsg {
	msg := &ApplicationMsg{
		ID:              a.ID,
		UserID:          a.UserID,
		Amount:          a.Amount,
		TenureMonths:    int32(a.TenureMonths),
		InterestRate:    a.InterestRate,
		Purpose:         a.Purpose,
		EMI:             a.EMI,
		TotalPayable:    a.TotalPayable,
		Status:          a.Status,
		RejectionReason: a.RejectionReason,
		SanctionRef:     a.SanctionRef,
		CreatedAt:       a.CreatedAt.Format(time.RFC3339),
	}
	if a.Affordability != nil {
		msg.Affordability = toAffordabilityMsg(*a.Affordability)
	}
	return msg
}

func toSessionMsg(s dto.ChatSessionResponse) *ChatSessionMsg {
	return &ChatSessionMsg{
		ID:               s.ID,
		UserID:           s.UserID,
		ApplicationID:    s.ApplicationID,
		Status:           s.Status,
		Stage:            s.Stage,
		DiscoveredIntent: s.DiscoveredIntent,
	}
}

// RegisterUser creates a new user account and returns a session token.
func (h *Handler) RegisterUser(ctx context.Context, req *RegisterUserRequest) (*AuthResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	resp, err := h.register.Execute(ctx, dto.RegisterUserRequest{
		Email:    req.Email,
		Phone:    req.Phone,
		FullName: req.FullName,
		Password: req.Password,
		Address:  req.Address,
		City:     req.City,
		Age:      int(req.Age),
	})
	if err != nil {
		return nil, h.toStatus("RegisterUser", err)
	}

	h.logger.Info("user registered", "user_id", resp.User.ID)
	return &AuthResponse{Token: resp.Token, User: toUserMsg(resp.User)}, nil
}

// Login authenticates an existing user.
func (h *Handler) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	resp, err := h.login.Execute(ctx, dto.LoginRequest{Email: req.Email, Password: req.Password})
	if err != nil {
		return nil, h.toStatus("Login", err)
	}
	return &AuthResponse{Token: resp.Token, User: toUserMsg(resp.User)}, nil
}

// GetProfile returns the caller's profile.
func (h *Handler) GetProfile(ctx context.Context, _ *GetProfileRequest) (*GetProfileResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := h.profile.Get(ctx, userID)
	if err != nil {
		return nil, h.toStatus("GetProfile", err)
	}
	return &GetProfileResponse{User: toUserMsg(resp)}, nil
}

// UpdateFinancialProfile replaces the caller's declared income figures.
func (h *Handler) UpdateFinancialProfile(ctx context.Context, req *UpdateFinancialProfileRequest) (*UpdateFinancialProfileResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	resp, err := h.profile.UpdateFinancialProfile(ctx, dto.UpdateFinancialProfileRequest{
		UserID:         userID,
		MonthlyIncome:  req.MonthlyIncome,
		ExistingEMI:    req.ExistingEMI,
		EmploymentType: req.EmploymentType,
	})
	if err != nil {
		return nil, h.toStatus("UpdateFinancialProfile", err)
	}
	return &UpdateFinancialProfileResponse{User: toUserMsg(resp)}, nil
}

// CheckAffordability runs a what-if affordability assessment.
func (h *Handler) CheckAffordability(ctx context.Context, req *CheckAffordabilityRequest) (*CheckAffordabilityResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	resp, err := h.affordability.Execute(ctx, dto.CheckAffordabilityRequest{
		UserID:        userID,
		MonthlyIncome: req.MonthlyIncome,
		ExistingEMI:   req.ExistingEMI,
		LoanAmount:    req.LoanAmount,
		TenureMonths:  int(req.TenureMonths),
	})
	if err != nil {
		return nil, h.toStatus("CheckAffordability", err)
	}
	return &CheckAffordabilityResponse{Report: toAffordabilityMsg(resp)}, nil
}

// RequestOTP issues a fresh verification code for the caller.
func (h *Handler) RequestOTP(ctx context.Context, req *RequestOTPRequest) (*RequestOTPResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	resp, err := h.requestOTP.Execute(ctx, dto.RequestOTPRequest{UserID: userID, Type: req.Type})
	if err != nil {
		return nil, h.toStatus("RequestOTP", err)
	}
	return &RequestOTPResponse{Code: resp.Code, Delivered: resp.Delivered, ExpiresAt: resp.ExpiresAt}, nil
}

// VerifyOTP consumes a verification code. A wrong or expired code is not
// an error at this boundary, it is a negative verification outcome.
func (h *Handler) VerifyOTP(ctx context.Context, req *VerifyOTPRequest) (*VerifyOTPResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	resp, err := h.verifyOTP.Execute(ctx, dto.VerifyOTPRequest{UserID: userID, Type: req.Type, Code: req.Code})
	if err != nil {
		if errors.Is(err, model.ErrOTPInvalidOrExpired) {
			return &VerifyOTPResponse{Verified: false}, nil
		}
		return nil, h.toStatus("VerifyOTP", err)
	}
	return &VerifyOTPResponse{Verified: resp.Verified, KYCVerified: resp.KYCVerified}, nil
}

// StartChatSession opens a new conversation thread for the caller.
func (h *Handler) StartChatSession(ctx context.Context, _ *StartChatSessionRequest) (*StartChatSessionResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := h.startChat.Execute(ctx, dto.StartChatSessionRequest{UserID: userID})
	if err != nil {
		return nil, h.toStatus("StartChatSession", err)
	}

	h.logger.Info("chat session started", "user_id", userID, "session_id", resp.ID)
	return &StartChatSessionResponse{Session: toSessionMsg(resp)}, nil
}

// SendChatMessage submits one user turn and returns the assistant reply.
func (h *Handler) SendChatMessage(ctx context.Context, req *SendChatMessageRequest) (*SendChatMessageResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	resp, err := h.sendMessage.Execute(ctx, dto.SendChatMessageRequest{
		UserID:    userID,
		SessionID: req.SessionID,
		Message:   req.Message,
	})
	if err != nil {
		return nil, h.toStatus("SendChatMessage", err)
	}
	return &SendChatMessageResponse{
		SessionID: resp.SessionID,
		Reply:     resp.Reply,
		Stage:     resp.Stage,
		AgentName: resp.AgentName,
	}, nil
}

// GetChatHistory returns all turns of a session in order.
func (h *Handler) GetChatHistory(ctx context.Context, req *GetChatHistoryRequest) (*GetChatHistoryResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	resp, err := h.chatHistory.Execute(ctx, dto.GetChatHistoryRequest{UserID: userID, SessionID: req.SessionID})
	if err != nil {
		return nil, h.toStatus("GetChatHistory", err)
	}

	messages := make([]*ChatMessageMsg, 0, len(resp.Messages))
	for _, m := range resp.Messages {
		messages = append(messages, &ChatMessageMsg{
			ID:        m.ID,
			Role:      m.Role,
			Content:   m.Content,
			AgentName: m.AgentName,
			CreatedAt: m.CreatedAt.Format(time.RFC3339),
		})
	}
	return &GetChatHistoryResponse{SessionID: resp.SessionID, Messages: messages}, nil
}

// SubmitApplication creates and underwrites a loan application.
func (h *Handler) SubmitApplication(ctx context.Context, req *SubmitApplicationRequest) (*SubmitApplicationResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	resp, err := h.submit.Execute(ctx, dto.SubmitLoanApplicationRequest{
		UserID:       userID,
		SessionID:    req.SessionID,
		Amount:       req.Amount,
		TenureMonths: int(req.TenureMonths),
		Purpose:      req.Purpose,
	})
	if err != nil {
		return nil, h.toStatus("SubmitApplication", err)
	}

	h.logger.Info("application submitted",
		"user_id", userID,
		"application_id", resp.Application.ID,
		"status", resp.Application.Status,
	)
	return &SubmitApplicationResponse{
		Application:          toApplicationMsg(resp.Application),
		Message:              resp.Message,
		Approved:             resp.Approved,
		RequiresDocuments:    resp.RequiresDocuments,
		RequiresVerification: resp.RequiresVerification,
	}, nil
}

// GetApplication fetches one application owned by the caller.
func (h *Handler) GetApplication(ctx context.Context, req *GetApplicationRequest) (*GetApplicationResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	resp, err := h.applications.Get(ctx, dto.GetApplicationRequest{UserID: userID, ApplicationID: req.ApplicationID})
	if err != nil {
		return nil, h.toStatus("GetApplication", err)
	}
	return &GetApplicationResponse{Application: toApplicationMsg(resp)}, nil
}

// ListApplications fetches the caller's application history.
func (h *Handler) ListApplications(ctx context.Context, _ *ListApplicationsRequest) (*ListApplicationsResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := h.applications.List(ctx, dto.ListApplicationsRequest{UserID: userID})
	if err != nil {
		return nil, h.toStatus("ListApplications", err)
	}

	applications := make([]*ApplicationMsg, 0, len(resp.Applications))
	for _, a := range resp.Applications {
		applications = append(applications, toApplicationMsg(a))
	}
	return &ListApplicationsResponse{Applications: applications}, nil
}

// UploadDocument stores evidence bytes and re-evaluates the linked
// application when one is named.
func (h *Handler) UploadDocument(ctx context.Context, req *UploadDocumentRequest) (*UploadDocumentResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	resp, err := h.upload.Execute(ctx, dto.UploadDocumentRequest{
		UserID:        userID,
		ApplicationID: req.ApplicationID,
		Type:          req.Type,
		FileName:      req.FileName,
		Data:          req.Data,
	})
	if err != nil {
		return nil, h.toStatus("UploadDocument", err)
	}

	h.logger.Info("document uploaded",
		"user_id", userID,
		"document_id", resp.DocumentID,
		"reevaluated", resp.Reevaluated,
	)
	return &UploadDocumentResponse{
		DocumentID:  resp.DocumentID,
		StorageRef:  resp.StorageRef,
		Reevaluated: resp.Reevaluated,
		NewStatus:   resp.NewStatus,
	}, nil
}

// DownloadSanctionLetter fetches the sanction artifact of an approved
// application owned by the caller.
func (h *Handler) DownloadSanctionLetter(ctx context.Context, req *DownloadSanctionLetterRequest) (*DownloadSanctionLetterResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	resp, err := h.sanction.Execute(ctx, dto.DownloadSanctionLetterRequest{UserID: userID, ApplicationID: req.ApplicationID})
	if err != nil {
		return nil, h.toStatus("DownloadSanctionLetter", err)
	}
	return &DownloadSanctionLetterResponse{FileName: resp.FileName, Content: resp.Content}, nil
}
