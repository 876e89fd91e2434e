package cli

import (
	"bufio"
	"context"
	"database/sql"
	"log"
	"log/slog"
	"os"

	"github.com/kgarud95/learningx-cli/internal/client/api"
	"github.com/kgarud95/learningx-cli/internal/client/config"
	"github.com/kgarud95/learningx-cli/internal/client/models"
	"github.com/kgarud95/learningx-cli/internal/client/repositories/metadata"
	"github.com/kgarud95/learningx-cli/internal/client/services"
	"github.com/kgarud95/learningx-cli/internal/client/session"
	"github.com/kgarud95/learningx-cli/internal/client/storage"
	"github.com/kgarud95/learningx-cli/internal/logging"

	_ "modernc.org/sqlite"
)

// App glues the session store, services, and REPL together. It is built
// once in NewApp; the session store constructed here is the single instance
// handed to every consumer.
type App struct {
	config      *config.Config
	apiClient   api.Client
	session     *session.Store
	courses     *services.CourseService
	enrollments *services.EnrollmentService
	db          *sql.DB
	reader      *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {

	ctx := context.Background()
	logger := logging.NewSlogLogger(slog.Default())

	db, err := storage.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		log.Printf("error initializing database: %s", err.Error())
		return nil, err
	}

	apiClient := api.NewHTTPClient(c.APIBaseURL, c.RequestTimeout, logger)

	store := session.New(apiClient, metadata.NewSQLiteRepository(db), logger)
	courseService := services.NewCourseService(apiClient, store)
	enrollmentService := services.NewEnrollmentService(apiClient, store, logger)

	// Identity transitions drive the dependent enrollment fetch through an
	// explicit subscription rather than an implicit reactive re-run.
	store.Subscribe(func(id *models.Identity) {
		if id == nil {
			enrollmentService.Clear()
			return
		}
		refreshCtx, cancel := context.WithTimeout(context.Background(), c.RequestTimeout)
		defer cancel()
		if err := enrollmentService.Refresh(refreshCtx); err != nil {
			log.Printf("could not load enrollments: %v", err)
		}
	})

	return &App{
		config:      c,
		apiClient:   apiClient,
		session:     store,
		courses:     courseService,
		enrollments: enrollmentService,
		db:          db,
		reader:      bufio.NewReader(os.Stdin),
	}, nil
}

// Run restores a persisted session (if any) and enters the REPL.
func (a *App) Run(ctx context.Context) {
	defer a.Close()
	a.session.Restore(ctx)
	a.Root(ctx)
}

func (a *App) Close() {
	if a.apiClient != nil {
		_ = a.apiClient.Close()
	}
	if a.db != nil {
		_ = a.db.Close()
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.LoggedIn()
}
