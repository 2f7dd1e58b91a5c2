package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/finncap/origination/internal/application/dto"
	"github.com/finncap/origination/internal/domain/event"
	"github.com/finncap/origination/internal/domain/model"
	"github.com/finncap/origination/internal/domain/port"
	"github.com/finncap/origination/internal/domain/valueobject"
)

// RequestOTPUseCase issues a fresh verification code and attempts
// delivery. Issuing succeeds even when delivery fails; previously
// issued unexpired codes stay valid.
type RequestOTPUseCase struct {
	users     port.UserRepository
	otps      port.OTPRepository
	notifier  port.Notifier
	publisher port.EventPublisher
	logger    *slog.Logger
}

// NewRequestOTPUseCase creates a RequestOTPUseCase.
func NewRequestOTPUseCase(
	users port.UserRepository,
	otps port.OTPRepository,
	notifier port.Notifier,
	publisher port.EventPublisher,
	logger *slog.Logger,
) *RequestOTPUseCase {
	return &RequestOTPUseCase{
		users:     users,
		otps:      otps,
		notifier:  notifier,
		publisher: publisher,
		logger:    logger,
	}
}

// Execute issues the code.
func (uc *RequestOTPUseCase) Execute(ctx context.Context, req dto.RequestOTPRequest) (dto.RequestOTPResponse, error) {
	if err := dto.Validate(req); err != nil {
		return dto.RequestOTPResponse{}, fmt.Errorf("invalid otp request: %w", err)
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return dto.RequestOTPResponse{}, fmt.Errorf("invalid user id: %w", err)
	}
	otpType, err := valueobject.NewOTPType(req.Type)
	if err != nil {
		return dto.RequestOTPResponse{}, err
	}

	user, err := uc.users.FindByID(ctx, userID)
	if err != nil {
		return dto.RequestOTPResponse{}, err
	}

	otp, err := model.NewOTP(userID, otpType)
	if err != nil {
		return dto.RequestOTPResponse{}, err
	}
	if err := uc.otps.Save(ctx, otp); err != nil {
		return dto.RequestOTPResponse{}, fmt.Errorf("save otp: %w", err)
	}

	if err := uc.publisher.Publish(ctx, event.NewOTPIssued(otp.ID().String(), userID.String(), otpType.String())); err != nil {
		uc.logger.Error("publishing otp event failed", "user_id", userID, "error", err)
	}

	// Stamp the channel's last-sent time. Losing this race is harmless.
	if err := uc.users.Save(ctx, user.MarkOTPSent(otpType, otp.CreatedAt())); err != nil {
		uc.logger.Warn("recording otp sent time failed", "user_id", userID, "error", err)
	}

	destination := user.Email()
	if otpType.Equal(valueobject.OTPTypePhone()) {
		destination = user.Phone()
	}
	body := fmt.Sprintf("Your verification code is %s. It expires in %d minutes.",
		otp.Code(), int(model.OTPValidity/time.Minute))
	delivered := true
	if err := uc.notifier.Notify(ctx, destination, "Your verification code", body, nil); err != nil {
		delivered = false
		uc.logger.Error("otp delivery failed", "user_id", userID, "type", otpType.String(), "error", err)
	}

	return dto.RequestOTPResponse{
		Code:      otp.Code(),
		Delivered: delivered,
		ExpiresAt: otp.ExpiresAt().Format(time.RFC3339),
	}, nil
}
