package reconcile

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/workbridge/unified-identity/internal/models"
	"github.com/workbridge/unified-identity/internal/platform"
)

// MasterStore is the slice of the master-store access layer the job
// depends on. Satisfied by *store.Store.
type MasterStore interface {
	LookupOrCreateUser(ctx context.Context, user *models.UnifiedUser) (*models.UnifiedUser, bool, error)
	MarkPlatformProfile(ctx context.Context, userID uuid.UUID, p platform.ID) error
	CreateLink(ctx context.Context, link *models.PlatformLink) (bool, error)
	CountUsers(ctx context.Context) (int64, error)
	CountLinks(ctx context.Context) (int64, error)
}

// Summary reports what one reconciliation pass did.
type Summary struct {
	Processed    int
	UsersCreated int
	LinksCreated int
	Failed       int
	TotalUsers   int64
	TotalLinks   int64
}

// Job backfills canonical identities for platform accounts that predate
// the unified store and links them. A single sequential pass; safe to
// rerun, a clean second run creates no new rows.
type Job struct {
	master    MasterStore
	platforms []platform.Store
}

func New(master MasterStore, platforms ...platform.Store) *Job {
	return &Job{master: master, platforms: platforms}
}

func (j *Job) Run(ctx context.Context) (*Summary, error) {
	sum := &Summary{}

	for _, ps := range j.platforms {
		j.runPlatform(ctx, ps, sum)
	}

	var err error
	if sum.TotalUsers, err = j.master.CountUsers(ctx); err != nil {
		return sum, fmt.Errorf("count unified users: %w", err)
	}
	if sum.TotalLinks, err = j.master.CountLinks(ctx); err != nil {
		return sum, fmt.Errorf("count platform links: %w", err)
	}

	slog.Info("reconciliation complete",
		"processed", sum.Processed,
		"users_created", sum.UsersCreated,
		"links_created", sum.LinksCreated,
		"failed", sum.Failed,
		"total_unified_users", sum.TotalUsers,
		"total_platform_links", sum.TotalLinks,
	)
	return sum, nil
}

func (j *Job) runPlatform(ctx context.Context, ps platform.Store, sum *Summary) {
	// Only accounts without a canonical back-reference are scanned, so
	// already-reconciled rows cost nothing on reruns.
	accounts, err := ps.Unreconciled(ctx)
	if err != nil {
		slog.Error("unreconciled scan failed", "platform", string(ps.ID()), "error", err.Error())
		return
	}
	slog.Info("scanning platform accounts", "platform", string(ps.ID()), "count", len(accounts))

	for _, acct := range accounts {
		sum.Processed++
		if err := j.reconcileAccount(ctx, ps, acct, sum); err != nil {
			sum.Failed++
			slog.Error("account reconciliation failed",
				"platform", string(ps.ID()),
				"account_id", acct.ID.String(),
				"error", err.Error(),
			)
		}
	}
}

// reconcileAccount links one platform account to a canonical identity,
// creating the identity when no unified user carries the account's email
// (real or synthesized placeholder).
func (j *Job) reconcileAccount(ctx context.Context, ps platform.Store, acct platform.Account, sum *Summary) error {
	p := ps.ID()

	candidate := models.UnifiedUser{
		ID:                   uuid.New(),
		Email:                acct.DedupEmail(p),
		FullName:             acct.FullName,
		Phone:                acct.Phone,
		HasFreelancerProfile: p == platform.Freelancer,
		HasLearningProfile:   p == platform.CareerCopilot,
		RegistrationStatus:   models.RegistrationComplete,
		// Preserve the account's original creation time.
		CreatedAt: acct.CreatedAt,
	}

	user, created, err := j.master.LookupOrCreateUser(ctx, &candidate)
	if err != nil {
		return fmt.Errorf("lookup-or-create: %w", err)
	}
	if created {
		sum.UsersCreated++
	} else if err := j.master.MarkPlatformProfile(ctx, user.ID, p); err != nil {
		return fmt.Errorf("mark platform profile: %w", err)
	}

	isPrimary := p == platform.Freelancer || created

	linkCreated, err := j.master.CreateLink(ctx, &models.PlatformLink{
		ID:             uuid.New(),
		UnifiedUserID:  user.ID,
		Platform:       string(p),
		PlatformUserID: acct.ID,
		IsPrimary:      isPrimary,
	})
	if err != nil {
		return fmt.Errorf("create link: %w", err)
	}
	if linkCreated {
		sum.LinksCreated++
	}

	if err := ps.SetUnifiedID(ctx, acct.ID, user.ID); err != nil {
		return fmt.Errorf("write back-reference: %w", err)
	}
	return nil
}
