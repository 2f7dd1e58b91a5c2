package usecase

import (
	"github.com/finncap/origination/internal/application/dto"
	"github.com/finncap/origination/internal/domain/model"
	"github.com/finncap/origination/internal/domain/valueobject"
)

func toUserResponse(user model.User) dto.UserResponse {
	profile := dto.FinancialProfileResponse{
		ExistingEMI:    user.Profile().ExistingEMI.StringFixed(2),
		EmploymentType: user.Profile().EmploymentType,
		IncomeVerified: user.Profile().IncomeVerified,
	}
	if income := user.Profile().MonthlyIncome; income != nil {
		profile.MonthlyIncome = income.StringFixed(2)
	}
	return dto.UserResponse{
		ID:               user.ID().String(),
		Email:            user.Email(),
		Phone:            user.Phone(),
		FullName:         user.FullName(),
		Address:          user.Contact().Address,
		City:             user.Contact().City,
		Age:              user.Contact().Age,
		CreditScore:      user.CreditScore(),
		PreApprovedLimit: user.PreApprovedLimit().StringFixed(2),
		PhoneVerified:    user.PhoneVerified(),
		EmailVerified:    user.EmailVerified(),
		KYCVerified:      user.KYCVerified(),
		Profile:          profile,
		CreatedAt:        user.CreatedAt(),
	}
}

func toAffordabilityResponse(snap valueobject.AffordabilitySnapshot) dto.AffordabilityResponse {
	return dto.AffordabilityResponse{
		ProposedEMI:       snap.ProposedEMI.StringFixed(2),
		TotalEMI:          snap.TotalEMI.StringFixed(2),
		EMIPercentage:     snap.EMIPercentage.StringFixed(2),
		DTIRatio:          snap.DTIRatio.StringFixed(2),
		MaxAffordableLoan: snap.MaxAffordableLoan.StringFixed(2),
		IsAffordable:      snap.Affordable,
		Recommendation:    snap.Recommendation,
	}
}

func toApplicationResponse(app model.LoanApplication) dto.ApplicationResponse {
	resp := dto.ApplicationResponse{
		ID:              app.ID().String(),
		UserID:          app.UserID().String(),
		Amount:          app.Amount().StringFixed(2),
		TenureMonths:    app.TenureMonths(),
		InterestRate:    app.InterestRate().StringFixed(2),
		Purpose:         app.Purpose(),
		EMI:             app.EMI().StringFixed(2),
		TotalPayable:    app.TotalPayable().StringFixed(2),
		Status:          app.Status().String(),
		RejectionReason: app.RejectionReason(),
		SanctionRef:     app.SanctionRef(),
		CreatedAt:       app.CreatedAt(),
	}
	if snap := app.Affordability(); snap != nil {
		affordability := toAffordabilityResponse(*snap)
		resp.Affordability = &affordability
	}
	return resp
}

func toSessionResponse(session model.ChatSession) dto.ChatSessionResponse {
	resp := dto.ChatSessionResponse{
		ID:               session.ID().String(),
		UserID:           session.UserID().String(),
		Status:           session.Status().String(),
		Stage:            session.Stage().String(),
		DiscoveredIntent: session.DiscoveredIntent(),
	}
	if appID := session.ApplicationID(); appID != nil {
		resp.ApplicationID = appID.String()
	}
	return resp
}

func toMessageResponse(msg model.ChatMessage) dto.ChatMessageResponse {
	return dto.ChatMessageResponse{
		ID:        msg.ID().String(),
		Role:      msg.Role().String(),
		Content:   msg.Content(),
		AgentName: msg.AgentName(),
		CreatedAt: msg.CreatedAt(),
	}
}
