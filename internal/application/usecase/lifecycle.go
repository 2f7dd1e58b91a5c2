package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/finncap/origination/internal/domain/model"
	"github.com/finncap/origination/internal/domain/port"
	"github.com/finncap/origination/internal/domain/service"
	"github.com/finncap/origination/internal/domain/valueobject"
	"github.com/finncap/origination/pkg/events"
)

// sideEffectTimeout bounds the rendering and notification calls that
// follow an approval. They are best-effort and never roll back the
// decision.
const sideEffectTimeout = 10 * time.Second

// LoanLifecycle runs the underwriting ladder for an application,
// persists the outcome and triggers the post-approval side effects. It
// is shared by submission and by the evidence-triggered re-evaluation
// paths.
type LoanLifecycle struct {
	apps      port.LoanApplicationRepository
	users     port.UserRepository
	documents port.DocumentRepository
	engine    *service.UnderwritingEngine
	publisher port.EventPublisher
	renderer  port.SanctionRenderer
	sanctions port.DocumentStorage
	notifier  port.Notifier
	logger    *slog.Logger
}

// NewLoanLifecycle creates a LoanLifecycle. The storage must be rooted
// at the directory the renderer writes to.
func NewLoanLifecycle(
	apps port.LoanApplicationRepository,
	users port.UserRepository,
	documents port.DocumentRepository,
	engine *service.UnderwritingEngine,
	publisher port.EventPublisher,
	renderer port.SanctionRenderer,
	sanctions port.DocumentStorage,
	notifier port.Notifier,
	logger *slog.Logger,
) *LoanLifecycle {
	return &LoanLifecycle{
		apps:      apps,
		users:     users,
		documents: documents,
		engine:    engine,
		publisher: publisher,
		renderer:  renderer,
		sanctions: sanctions,
		notifier:  notifier,
		logger:    logger,
	}
}

// Decide runs the ladder against fresh evidence, persists the resulting
// status and fires the approval side effects when the application
// reaches approved for the first time.
func (l *LoanLifecycle) Decide(ctx context.Context, app model.LoanApplication, user model.User) (model.LoanApplication, model.Decision, error) {
	hasSalaryProof, err := l.documents.HasSalaryProof(ctx, user.ID())
	if err != nil {
		return model.LoanApplication{}, model.Decision{}, fmt.Errorf("check salary proof: %w", err)
	}

	decision, err := l.engine.Evaluate(user, app.Amount(), hasSalaryProof)
	if err != nil {
		return model.LoanApplication{}, model.Decision{}, fmt.Errorf("evaluate application: %w", err)
	}

	wasApproved := app.Status().Equal(valueobject.StatusApproved())
	decided, err := app.ApplyDecision(decision)
	if err != nil {
		return model.LoanApplication{}, model.Decision{}, fmt.Errorf("apply decision: %w", err)
	}

	if err := l.apps.Save(ctx, decided); err != nil {
		return model.LoanApplication{}, model.Decision{}, fmt.Errorf("save application: %w", err)
	}
	l.publish(ctx, decided.DomainEvents())
	decided = decided.ClearEvents()

	if decided.Status().Equal(valueobject.StatusApproved()) && !wasApproved {
		decided = l.onApproved(ctx, decided, user)
	}
	return decided, decision, nil
}

// Reevaluate re-runs the ladder for an application after new evidence
// arrived. Terminal applications are returned unchanged with
// reevaluated=false.
func (l *LoanLifecycle) Reevaluate(ctx context.Context, applicationID, userID uuid.UUID) (model.LoanApplication, bool, error) {
	app, err := l.apps.FindByID(ctx, applicationID)
	if err != nil {
		return model.LoanApplication{}, false, err
	}
	if app.UserID() != userID {
		return model.LoanApplication{}, false, port.ErrApplicationNotFound
	}
	if !app.CanReevaluate() {
		return app, false, nil
	}

	user, err := l.users.FindByID(ctx, userID)
	if err != nil {
		return model.LoanApplication{}, false, err
	}

	decided, _, err := l.Decide(ctx, app, user)
	if err != nil {
		return model.LoanApplication{}, false, err
	}
	return decided, true, nil
}

// ReevaluateAllPending re-runs the ladder for every non-terminal
// application of a user. Used when a verification flag flips.
func (l *LoanLifecycle) ReevaluateAllPending(ctx context.Context, userID uuid.UUID) error {
	apps, err := l.apps.FindByUserID(ctx, userID)
	if err != nil {
		return err
	}
	for _, app := range apps {
		if !app.CanReevaluate() {
			continue
		}
		if _, _, err := l.Reevaluate(ctx, app.ID(), userID); err != nil {
			return fmt.Errorf("reevaluate application %s: %w", app.ID(), err)
		}
	}
	return nil
}

// onApproved renders the sanction artifact and notifies the user,
// attaching the rendered letter when it could be read back. Failures
// are logged for the operator and never undo the approval.
func (l *LoanLifecycle) onApproved(ctx context.Context, app model.LoanApplication, user model.User) model.LoanApplication {
	sideCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sideEffectTimeout)
	defer cancel()

	var letter []byte
	ref, err := l.renderer.Render(sideCtx, app, user)
	if err != nil {
		l.logger.Error("sanction artifact rendering failed",
			"application_id", app.ID(), "error", err)
	} else {
		if letter, err = l.sanctions.Load(sideCtx, ref); err != nil {
			l.logger.Error("loading sanction artifact failed",
				"application_id", app.ID(), "ref", ref, "error", err)
			letter = nil
		}
		withRef, err := app.AttachSanctionRef(ref)
		if err != nil {
			l.logger.Error("attaching sanction reference failed",
				"application_id", app.ID(), "error", err)
		} else if err := l.apps.Save(sideCtx, withRef); err != nil {
			l.logger.Error("saving sanction reference failed",
				"application_id", app.ID(), "error", err)
		} else {
			l.publish(sideCtx, withRef.DomainEvents())
			app = withRef.ClearEvents()
		}
	}

	subject := "Your loan application has been approved"
	body := fmt.Sprintf(
		"Dear %s,\n\nYour loan application for %s over %d months has been approved. Your EMI will be %s per month.\n",
		user.FullName(), app.Amount().StringFixed(2), app.TenureMonths(), app.EMI().StringFixed(2))
	if err := l.notifier.Notify(sideCtx, user.Email(), subject, body, letter); err != nil {
		l.logger.Error("approval notification failed",
			"application_id", app.ID(), "destination", user.Email(), "error", err)
	}
	return app
}

func (l *LoanLifecycle) publish(ctx context.Context, evts []events.DomainEvent) {
	if len(evts) == 0 {
		return
	}
	if err := l.publisher.Publish(ctx, evts...); err != nil {
		l.logger.Error("publishing domain events failed", "count", len(evts), "error", err)
	}
}
