package service

import (
	"context"
	"fmt"
	"time"

	"github.com/arbormail/arbormail/internal/crypto"
	"github.com/arbormail/arbormail/internal/logger"
	"github.com/arbormail/arbormail/internal/utils"
	"github.com/arbormail/arbormail/models"
)

// tokenIssuer is the "iss" claim embedded in every issued session token.
// Tokens whose issuer does not match are rejected during parsing.
const tokenIssuer = "arbormail"

// AuthParams carries the management-plane credentials the boot manager
// assembles for the session service.
type AuthParams struct {
	// AdminLogin is the administrator account name accepted at login.
	AdminLogin string

	// SecretDigest is the encoded argon2id digest of the administrator
	// secret, taken from the config document or the store. Empty when no
	// secret is configured anywhere; sessions are then impossible.
	SecretDigest string

	// TokenSignKey is the HMAC secret used to sign and verify session
	// tokens: the settings override when set, otherwise the generated
	// management auth key.
	TokenSignKey string

	// TokenLifetime controls how long a newly issued token remains valid.
	TokenLifetime time.Duration
}

// authService is the concrete implementation of AuthService.
// It verifies the administrator secret against its argon2id digest and
// issues HS256 session tokens for the management API.
type authService struct {
	params AuthParams

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService from the boot-assembled
// management credentials.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(params AuthParams, logger *logger.Logger) AuthService {
	return &authService{
		params: params,
		logger: logger,
	}
}

// Login authenticates the administrator account.
//
// It validates that both Login and Secret are non-empty, matches the login
// against the configured administrator account, and verifies the secret
// against its argon2id digest. On success it issues a signed session token.
//
// Returns the session token or:
//   - ErrInvalidDataProvided if Login or Secret is empty.
//   - ErrSessionsNotConfigured if no secret digest is configured.
//   - ErrWrongSecret if the login is unknown or the secret does not match.
//     The two cases are deliberately indistinguishable to the caller.
//   - A wrapped error if the stored digest is malformed or signing fails.
func (a *authService) Login(ctx context.Context, credentials models.Credentials) (models.Token, error) {
	log := logger.FromContext(ctx)

	if credentials.Login == "" || credentials.Secret == "" {
		log.Error().Str("login", credentials.Login).Msg("invalid credentials provided")
		return models.Token{}, ErrInvalidDataProvided
	}

	if a.params.SecretDigest == "" {
		log.Error().Msg("login rejected: no administrator secret is configured")
		return models.Token{}, ErrSessionsNotConfigured
	}

	if credentials.Login != a.params.AdminLogin {
		log.Error().Str("login", credentials.Login).Msg("unknown administrator login")
		return models.Token{}, ErrWrongSecret
	}

	match, err := crypto.VerifySecret(credentials.Secret, a.params.SecretDigest)
	if err != nil {
		log.Err(err).Msg("administrator secret digest is malformed")
		return models.Token{}, fmt.Errorf("secret verification failed: %w", err)
	}
	if !match {
		log.Error().Str("login", credentials.Login).Msg("wrong administrator secret")
		return models.Token{}, ErrWrongSecret
	}

	token, err := utils.GenerateJWTToken(tokenIssuer, credentials.Login, a.params.TokenLifetime, a.params.TokenSignKey)
	if err != nil {
		log.Err(err).Msg("session token creation failed")
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw session token string.
//
// It delegates to utils.ValidateAndParseJWTToken, verifying the signature
// and the issuer claim. Any validation failure (expired, wrong issuer,
// malformed) is normalised to ErrTokenIsExpiredOrInvalid so that callers do
// not need to inspect low-level JWT errors.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.params.TokenSignKey, tokenIssuer)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}
