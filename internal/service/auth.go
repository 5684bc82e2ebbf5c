package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/Ihsas01/admin-project-management/internal/domain"
	"github.com/Ihsas01/admin-project-management/internal/store"
	"github.com/Ihsas01/admin-project-management/pkg/cryptox"
	"github.com/Ihsas01/admin-project-management/pkg/idx"
	"github.com/Ihsas01/admin-project-management/pkg/jwtx"
	"github.com/Ihsas01/admin-project-management/pkg/slogx"
)

var (
	// ErrInvalidCredentials covers both unknown email and wrong password.
	// The two cases are deliberately indistinguishable to avoid user
	// enumeration.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAccountDeactivated is distinct from ErrInvalidCredentials; account
	// existence is already implied by other channels in this design.
	ErrAccountDeactivated = errors.New("account is deactivated")

	ErrEmailTaken     = errors.New("user with this email already exists")
	ErrInvitePending  = errors.New("an invite for this email is already pending")
	ErrInviteNotFound = errors.New("invite not found or already redeemed")
	ErrInviteExpired  = errors.New("invite has expired")
)

// AuthService orchestrates login and the invite lifecycle.
type AuthService struct {
	Store  store.Store
	Signer jwtx.Signer
	Issuer string

	TokenTTL  time.Duration
	InviteTTL time.Duration
	HashCost  int

	// ReinviteAfterExpiry lets a new invite replace an expired unredeemed
	// one. Off by default: the literal policy is that any unredeemed invite
	// blocks, expired or not.
	ReinviteAfterExpiry bool
}

// AuthResult is what a successful login or invite redemption returns.
type AuthResult struct {
	Token string
	User  domain.PublicUser
}

// CreatedInvite is the invite summary plus the raw redemption token. The
// token exists only in this value; delivery (e.g. email) is the caller's
// concern and the store keeps only its fingerprint.
type CreatedInvite struct {
	ID        string
	Email     string
	Role      domain.Role
	ExpiresAt time.Time
	Token     string
}

// Login verifies credentials and issues a bearer token.
func (s *AuthService) Login(ctx context.Context, email, password string) (AuthResult, error) {
	log := slogx.FromContext(ctx)
	email = domain.CanonicalEmail(email)

	// 1. Look up the user. A missing user reports the same failure as a
	// wrong password.
	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Info("login attempt for unknown email")
			return AuthResult{}, ErrInvalidCredentials
		}
		log.Error("failed to fetch user", slog.Any("error", err))
		return AuthResult{}, err
	}

	// 2. Deactivated accounts never authenticate, regardless of password.
	if user.Status != domain.StatusActive {
		log.Info("login attempt for deactivated account", slog.String("user_id", user.ID))
		return AuthResult{}, ErrAccountDeactivated
	}

	// 3. Verify the password against the stored digest.
	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		log.Info("login attempt with wrong password", slog.String("user_id", user.ID))
		return AuthResult{}, ErrInvalidCredentials
	}

	// 4. Issue the token.
	token, err := s.issueToken(user)
	if err != nil {
		log.Error("failed to sign token", slog.Any("error", err))
		return AuthResult{}, err
	}

	log.Info("user logged in", slog.String("user_id", user.ID), slog.String("role", user.Role.String()))
	return AuthResult{Token: token, User: user.Public()}, nil
}

// CreateInvite mints a single-use invite for a new user. The caller must
// already be authorized as ADMIN; that is enforced at the HTTP boundary.
func (s *AuthService) CreateInvite(
	ctx context.Context,
	email string,
	role domain.Role,
	invitedBy string,
) (CreatedInvite, error) {
	log := slogx.FromContext(ctx)
	email = domain.CanonicalEmail(email)
	now := time.Now().UTC()

	// 1. An existing user for the email always blocks.
	_, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err == nil {
		return CreatedInvite{}, ErrEmailTaken
	}
	if !errors.Is(err, store.ErrNotFound) {
		log.Error("failed to check user existence", slog.Any("error", err))
		return CreatedInvite{}, err
	}

	// 2. An unredeemed invite blocks too. Expired invites only stop
	// blocking when the re-invite policy is enabled.
	existing, err := s.Store.Invites().GetUnredeemedInviteByEmail(ctx, email)
	var replaceExpired bool
	switch {
	case err == nil:
		if !s.ReinviteAfterExpiry || now.Before(existing.ExpiresAt) {
			return CreatedInvite{}, ErrInvitePending
		}
		replaceExpired = true
	case errors.Is(err, store.ErrNotFound):
		// No live invite; proceed.
	default:
		log.Error("failed to check pending invite", slog.Any("error", err))
		return CreatedInvite{}, err
	}

	// 3. Generate the unguessable redemption token; only its fingerprint
	// is persisted.
	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		log.Error("failed to generate invite token", slog.Any("error", err))
		return CreatedInvite{}, err
	}

	invite := domain.Invite{
		ID:        idx.New().String(),
		Email:     email,
		Role:      role,
		TokenHash: cryptox.FingerprintToken(token),
		InvitedBy: invitedBy,
		ExpiresAt: now.Add(s.InviteTTL),
		CreatedAt: now,
	}

	// 4. Persist, replacing the expired invite in the same transaction when
	// policy allows. The partial unique index turns a concurrent duplicate
	// into ErrConflict rather than two live invites.
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if replaceExpired {
			if err := tx.Invites().DeleteExpiredInvites(ctx, now); err != nil {
				return err
			}
		}
		return tx.Invites().CreateInvite(ctx, invite)
	})
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			return CreatedInvite{}, ErrInvitePending
		}
		log.Error("failed to create invite", slog.String("invite_id", invite.ID), slog.Any("error", err))
		return CreatedInvite{}, err
	}

	log.Info("invite created",
		slog.String("invite_id", invite.ID),
		slog.String("role", role.String()),
		slog.String("invited_by", invitedBy),
		slog.Time("expires_at", invite.ExpiresAt),
	)

	return CreatedInvite{
		ID:        invite.ID,
		Email:     invite.Email,
		Role:      invite.Role,
		ExpiresAt: invite.ExpiresAt,
		Token:     token,
	}, nil
}

// RedeemInvite consumes a valid invite and creates the invited user. The
// user creation and invite consumption commit atomically: two concurrent
// redemptions of the same token yield exactly one user.
func (s *AuthService) RedeemInvite(
	ctx context.Context,
	token, name, password string,
) (AuthResult, error) {
	log := slogx.FromContext(ctx)
	now := time.Now().UTC()

	// 1. Fingerprint the token and look up the live invite.
	invite, err := s.Store.Invites().GetUnredeemedInviteByTokenHash(ctx, cryptox.FingerprintToken(token))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Info("redemption attempt with unknown or used invite token")
			return AuthResult{}, ErrInviteNotFound
		}
		log.Error("failed to fetch invite", slog.Any("error", err))
		return AuthResult{}, err
	}

	// 2. Expiry is evaluated lazily, here. Distinct from not-found.
	if !now.Before(invite.ExpiresAt) {
		log.Info("redemption attempt with expired invite", slog.String("invite_id", invite.ID))
		return AuthResult{}, ErrInviteExpired
	}

	// 3. A user may have been created through another path since the
	// invite was issued.
	_, err = s.Store.Users().GetUserByEmail(ctx, invite.Email)
	if err == nil {
		return AuthResult{}, ErrEmailTaken
	}
	if !errors.Is(err, store.ErrNotFound) {
		log.Error("failed to check user existence", slog.Any("error", err))
		return AuthResult{}, err
	}

	// 4. Hash outside the transaction; bcrypt is deliberately slow.
	passwordHash, err := cryptox.HashPassword(password, s.HashCost)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return AuthResult{}, err
	}

	user := domain.User{
		ID:           idx.New().String(),
		Name:         name,
		Email:        invite.Email,
		PasswordHash: passwordHash,
		Role:         invite.Role,
		Status:       domain.StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// 5. Consume the invite and create the user as a unit. The conditional
	// update arbitrates concurrent redemptions; the loser rolls back.
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		redeemed, err := tx.Invites().MarkInviteRedeemed(ctx, invite.ID, now)
		if err != nil {
			return err
		}
		if !redeemed {
			return ErrInviteNotFound
		}
		if err := tx.Users().CreateUser(ctx, user); err != nil {
			if errors.Is(err, store.ErrConflict) {
				return ErrEmailTaken
			}
			return err
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInviteNotFound) || errors.Is(err, ErrEmailTaken) {
			return AuthResult{}, err
		}
		log.Error("failed to redeem invite", slog.String("invite_id", invite.ID), slog.Any("error", err))
		return AuthResult{}, err
	}

	// 6. Issue a token exactly as login does.
	authToken, err := s.issueToken(user)
	if err != nil {
		log.Error("failed to sign token", slog.Any("error", err))
		return AuthResult{}, err
	}

	log.Info("user registered via invite",
		slog.String("user_id", user.ID),
		slog.String("invite_id", invite.ID),
		slog.String("role", user.Role.String()),
	)
	return AuthResult{Token: authToken, User: user.Public()}, nil
}

func (s *AuthService) issueToken(user domain.User) (string, error) {
	claims := jwtx.NewAccessClaims(
		user.ID,
		user.Email,
		user.Role.String(),
		s.Issuer,
		s.TokenTTL,
		time.Now().UTC(),
	)
	return s.Signer.Sign(claims)
}
