// Package scribe - append-only signed post store
package scribe

import (
	"context"
	"fmt"
	"time"

	"github.com/alwitt/scribe/auth"
	"github.com/alwitt/scribe/db"
	"github.com/alwitt/scribe/encryption"
	"github.com/alwitt/scribe/posts"
	"github.com/alwitt/scribe/store"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ServiceParams post service init parameters
type ServiceParams struct {
	// DBDialector GORM dialector
	DBDialector gorm.Dialector
	// DBLogLevel SQL log level
	DBLogLevel logger.LogLevel
	// PrimaryRSACertFile file path to the primary RSA certificate PEM
	PrimaryRSACertFile string
	// PrimaryRSAKeyFile file path to the primary RSA certificate private key PEM
	PrimaryRSAKeyFile string
	// MaxTokenAge oldest acceptable post authorization
	MaxTokenAge time.Duration
	// Clock creation stamp time source; defaults to the system clock
	Clock posts.Clock
}

// PostService an assembled post service
type PostService struct {
	posts.Handler
	// Identities fresh post identity source, backed by the crypto engine RNG
	Identities *posts.IdentityGenerator
	// Persistence the persistence layer client
	Persistence db.Client
}

/*
NewPostService initialize a post service backed by sealed storage in a SQL database.

Two instances on the same database share the same posts.

	@param ctx context.Context - execution context
	@param params ServiceParams - service parameters
	@returns the service
*/
func NewPostService(ctx context.Context, params ServiceParams) (*PostService, error) {
	persistence, err := db.NewConnection(params.DBDialector, params.DBLogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to initialized persistence client [%w]", err)
	}

	cryptoEngine, err := encryption.NewCryptographyEngine(ctx, encryption.CryptographyEngineParams{
		Persistence:        persistence,
		PrimaryRSACertFile: params.PrimaryRSACertFile,
		PrimaryRSAKeyFile:  params.PrimaryRSAKeyFile,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialized cryptography engine [%w]", err)
	}

	records, err := store.NewSealedStore(ctx, persistence, cryptoEngine)
	if err != nil {
		return nil, fmt.Errorf("failed to initialized sealed post store [%w]", err)
	}

	verifierParams := auth.VerifierParams{MaxTokenAge: params.MaxTokenAge}
	if params.Clock != nil {
		verifierParams.Now = params.Clock.Now
	}
	verifier, err := auth.NewVerifier(verifierParams)
	if err != nil {
		return nil, fmt.Errorf("failed to initialized authorization verifier [%w]", err)
	}

	handler, err := posts.NewHandler(records, verifier, params.Clock)
	if err != nil {
		return nil, fmt.Errorf("failed to initialized post handler [%w]", err)
	}

	return &PostService{
		Handler:     handler,
		Identities:  posts.NewIdentityGenerator(cryptoEngine.RandomSource()),
		Persistence: persistence,
	}, nil
}
