package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/Ihsas01/admin-project-management/internal/domain"
)

type invitesRepo struct {
	db dbtx
}

const inviteColumns = `id, email, role, token_hash, invited_by, expires_at, redeemed_at, created_at`

func (r *invitesRepo) CreateInvite(ctx context.Context, inv domain.Invite) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO invites (id, email, role, token_hash, invited_by, expires_at, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		inv.ID, inv.Email, string(inv.Role), inv.TokenHash, inv.InvitedBy, inv.ExpiresAt, inv.CreatedAt)
	if err != nil {
		return mapConflict(err)
	}
	return nil
}

func (r *invitesRepo) GetUnredeemedInviteByEmail(ctx context.Context, email string) (domain.Invite, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+inviteColumns+` FROM invites WHERE email = ? AND redeemed_at IS NULL`, email)
	return scanInvite(row)
}

func (r *invitesRepo) GetUnredeemedInviteByTokenHash(ctx context.Context, hash string) (domain.Invite, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+inviteColumns+` FROM invites WHERE token_hash = ? AND redeemed_at IS NULL`, hash)
	return scanInvite(row)
}

func (r *invitesRepo) MarkInviteRedeemed(ctx context.Context, inviteID string, at time.Time) (bool, error) {
	// Conditional on redeemed_at still being null so concurrent redemptions
	// of the same invite produce exactly one winner.
	res, err := r.db.ExecContext(ctx,
		`UPDATE invites SET redeemed_at = ? WHERE id = ? AND redeemed_at IS NULL`,
		at, inviteID)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

func (r *invitesRepo) DeleteRedeemedInvitesBefore(ctx context.Context, cutoff time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM invites WHERE redeemed_at IS NOT NULL AND redeemed_at < ?`, cutoff)
	return err
}

func (r *invitesRepo) DeleteExpiredInvites(ctx context.Context, now time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM invites WHERE redeemed_at IS NULL AND expires_at < ?`, now)
	return err
}

func scanInvite(row rowScanner) (domain.Invite, error) {
	var (
		inv        domain.Invite
		role       string
		redeemedAt sql.NullTime
	)
	err := row.Scan(&inv.ID, &inv.Email, &role, &inv.TokenHash, &inv.InvitedBy,
		&inv.ExpiresAt, &redeemedAt, &inv.CreatedAt)
	if err != nil {
		return domain.Invite{}, mapNotFound(err)
	}
	inv.Role = domain.Role(role)
	inv.RedeemedAt = mapNullTimePtr(redeemedAt)
	return inv, nil
}
