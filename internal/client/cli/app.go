package cli

import (
	"bufio"
	"context"
	"os"

	"archivedb/internal/client/config"
	"archivedb/internal/client/localstore"
	"archivedb/internal/client/remote"
	"archivedb/internal/client/repositories/documents"
	"archivedb/internal/client/repositories/dossiers"
	"archivedb/internal/client/repositories/images"
	"archivedb/internal/client/session"
	"archivedb/internal/logging"
)

// App wires the archive client together: local store, optional remote
// mirror, session manager and the entity repositories, plus the interactive
// loop on top.
type App struct {
	config    *config.Config
	sessions  *session.Manager
	dossiers  *dossiers.Repository
	documents *documents.Repository
	images    *images.Repository
	remote    remote.Store
	logger    logging.Logger
	reader    *bufio.Reader
}

// The session signing key is local to one client process; sessions do not
// survive a key change, which is acceptable for a single-operator tool.
var sessionSigningKey = []byte("archivedb-session-signing-key")

func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	db, err := localstore.Open(ctx, c.LocalDBPath)
	if err != nil {
		logger.Error("failed to initialize local database", "error", err)
		return nil, err
	}

	local := localstore.New(db, c.LocalQuotaBytes)
	if err := local.Initialize(ctx); err != nil {
		return nil, err
	}

	rs, err := buildRemote(c, logger)
	if err != nil {
		return nil, err
	}

	probeCtx, cancel := context.WithTimeout(ctx, c.ProbeTimeout)
	defer cancel()
	// probe failure is not fatal; the client runs local-only until the
	// next probe succeeds
	_ = rs.Probe(probeCtx)

	sessions := session.NewManager(local, sessionSigningKey, logger)
	guard := session.NewGuard(sessions)

	return &App{
		config:    c,
		sessions:  sessions,
		dossiers:  dossiers.New(local, rs, guard, logger),
		documents: documents.New(local, rs, guard, logger),
		images:    images.New(local, rs, guard, logger),
		remote:    rs,
		logger:    logger,
		reader:    bufio.NewReader(os.Stdin),
	}, nil
}

func buildRemote(c *config.Config, logger logging.Logger) (remote.Store, error) {
	if c.RemoteDatabaseDSN == "" {
		logger.Info("no remote mirror configured, running local-only")
		return remote.Noop{}, nil
	}

	blobs, err := remote.NewMinioBlobStore(remote.MinioConfig{
		Endpoint:  c.MinioEndpoint,
		AccessKey: c.MinioAccessKey,
		SecretKey: c.MinioSecretKey,
		Bucket:    c.MinioBucket,
		UseSSL:    c.MinioUseSSL,
	})
	if err != nil {
		return nil, err
	}

	return remote.Dial(c.RemoteDatabaseDSN, blobs, logger)
}

// Run starts the interactive loop and blocks until the user exits.
func (a *App) Run(ctx context.Context) {
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.sessions.IsAuthenticated(context.Background())
}

func (a *App) isAdmin() bool {
	return a.sessions.IsAdmin(context.Background())
}
