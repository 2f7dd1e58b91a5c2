package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/finncap/origination/internal/application/dto"
	"github.com/finncap/origination/internal/domain/model"
	"github.com/finncap/origination/internal/domain/port"
	"github.com/finncap/origination/internal/domain/valueobject"
)

// VerifyOTPUseCase consumes a verification code, flips the matching
// user flag and re-evaluates any applications waiting on verification.
// All failure modes report the same uniform error so a caller cannot
// probe which codes exist.
type VerifyOTPUseCase struct {
	users     port.UserRepository
	otps      port.OTPRepository
	lifecycle *LoanLifecycle
	publisher port.EventPublisher
	logger    *slog.Logger
}

// NewVerifyOTPUseCase creates a VerifyOTPUseCase.
func NewVerifyOTPUseCase(
	users port.UserRepository,
	otps port.OTPRepository,
	lifecycle *LoanLifecycle,
	publisher port.EventPublisher,
	logger *slog.Logger,
) *VerifyOTPUseCase {
	return &VerifyOTPUseCase{
		users:     users,
		otps:      otps,
		lifecycle: lifecycle,
		publisher: publisher,
		logger:    logger,
	}
}

// Execute verifies the code.
func (uc *VerifyOTPUseCase) Execute(ctx context.Context, req dto.VerifyOTPRequest) (dto.VerifyOTPResponse, error) {
	// 1. Validate the request shape.
	if err := dto.Validate(req); err != nil {
		return dto.VerifyOTPResponse{}, fmt.Errorf("invalid verify request: %w", err)
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return dto.VerifyOTPResponse{}, fmt.Errorf("invalid user id: %w", err)
	}
	otpType, err := valueobject.NewOTPType(req.Type)
	if err != nil {
		return dto.VerifyOTPResponse{}, err
	}

	// 2. Find unconsumed records matching the submitted code. Several
	// may coexist when the user re-requested a code.
	candidates, err := uc.otps.FindCandidates(ctx, userID, otpType, req.Code)
	if err != nil {
		return dto.VerifyOTPResponse{}, fmt.Errorf("find otp records: %w", err)
	}

	// 3. Consume the first record the domain accepts. MarkVerified is
	// conditional on the stored row being unconsumed, so two racing
	// verifies have exactly one winner.
	now := time.Now().UTC()
	consumed := false
	for _, candidate := range candidates {
		if _, err := candidate.Consume(req.Code, now); err != nil {
			continue
		}
		won, err := uc.otps.MarkVerified(ctx, candidate.ID())
		if err != nil {
			return dto.VerifyOTPResponse{}, fmt.Errorf("mark otp verified: %w", err)
		}
		if won {
			consumed = true
			break
		}
	}
	if !consumed {
		return dto.VerifyOTPResponse{}, model.ErrOTPInvalidOrExpired
	}

	// 4. Flip the user's verification flag.
	user, err := uc.users.FindByID(ctx, userID)
	if err != nil {
		return dto.VerifyOTPResponse{}, err
	}
	if otpType.Equal(valueobject.OTPTypePhone()) {
		user = user.VerifyPhone()
	} else {
		user = user.VerifyEmail()
	}
	if err := uc.users.Save(ctx, user); err != nil {
		return dto.VerifyOTPResponse{}, fmt.Errorf("save user: %w", err)
	}
	if err := uc.publisher.Publish(ctx, user.DomainEvents()...); err != nil {
		uc.logger.Error("publishing verification events failed", "user_id", userID, "error", err)
	}

	// 5. New evidence arrived; re-run underwriting for anything waiting.
	if err := uc.lifecycle.ReevaluateAllPending(ctx, userID); err != nil {
		uc.logger.Error("re-evaluation after verification failed", "user_id", userID, "error", err)
	}

	return dto.VerifyOTPResponse{Verified: true, KYCVerified: user.KYCVerified()}, nil
}
