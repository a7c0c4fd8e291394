package auth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/alwitt/goutils"
	"github.com/alwitt/scribe/models"
	"github.com/apex/log"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
)

// Verifier checks post creation authorizations
type Verifier interface {
	/*
		VerifyCreatePost verify the token authorizes the post intent

			@param ctx context.Context - execution context
			@param token string - the compact signed token
			@param intent PostIntent - the post being created
			@returns the principal which authorized the post
	*/
	VerifyCreatePost(ctx context.Context, token string, intent PostIntent) (Principal, error)
}

// VerifierParams verifier init parameters
type VerifierParams struct {
	// MaxTokenAge oldest acceptable token, measured from its issue time
	MaxTokenAge time.Duration `validate:"required,gt=0"`
	// Now time source; defaults to time.Now
	Now func() time.Time `validate:"-"`
}

// jwtVerifier implements Verifier
type jwtVerifier struct {
	goutils.Component
	maxTokenAge time.Duration
	now         func() time.Time
}

/*
NewVerifier define new post authorization verifier

	@param params VerifierParams - verifier parameters
	@returns verifier
*/
func NewVerifier(params VerifierParams) (Verifier, error) {
	if err := validator.New().Struct(&params); err != nil {
		return nil, fmt.Errorf("invalid verifier parameters [%w]", err)
	}
	if params.Now == nil {
		params.Now = time.Now
	}
	return &jwtVerifier{
		Component: goutils.Component{
			LogTags: log.Fields{"package": "scribe", "module": "auth", "component": "verifier"},
			LogTagModifiers: []goutils.LogMetadataModifier{
				goutils.ModifyLogMetadataByRestRequestParam,
			},
		},
		maxTokenAge: params.MaxTokenAge,
		now:         params.Now,
	}, nil
}

func (v *jwtVerifier) VerifyCreatePost(
	ctx context.Context, token string, intent PostIntent,
) (Principal, error) {
	principal, err := v.verify(token, intent)
	if err != nil {
		log.WithFields(v.GetLogTagsForContext(ctx)).
			WithError(err).
			WithField("post-id", intent.Identity).
			Debug("Rejected post authorization")
		return "", fmt.Errorf("%s [%w]", err.Error(), models.ErrUnauthorized)
	}
	return principal, nil
}

func (v *jwtVerifier) verify(token string, intent PostIntent) (Principal, error) {
	if token == "" {
		return "", fmt.Errorf("no authorization token")
	}

	var claims Claims
	parsed, err := jwt.ParseWithClaims(
		token,
		&claims,
		func(t *jwt.Token) (interface{}, error) {
			subject, err := t.Claims.GetSubject()
			if err != nil {
				return nil, err
			}
			principal, err := ParsePrincipal(subject)
			if err != nil {
				return nil, err
			}
			return principal.PublicKey()
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodEdDSA.Alg()}),
		jwt.WithAudience(CreatePostAudience),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(v.now),
	)
	if err != nil {
		return "", fmt.Errorf("token rejected [%w]", err)
	}
	if !parsed.Valid {
		return "", fmt.Errorf("token not valid")
	}

	if claims.IssuedAt == nil {
		return "", fmt.Errorf("token has no issue time")
	}
	if age := v.now().Sub(claims.IssuedAt.Time); age > v.maxTokenAge {
		return "", fmt.Errorf("token is %s old, past %s", age, v.maxTokenAge)
	}

	expected := intent.Digest()
	if subtle.ConstantTimeCompare([]byte(expected), []byte(claims.Digest)) != 1 {
		return "", fmt.Errorf("token authorizes a different post")
	}

	return Principal(claims.Subject), nil
}
