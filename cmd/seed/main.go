package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"os"
	"strings"

	loremgen "github.com/bozaro/golorem"
	"github.com/joho/godotenv"

	"liteboard/internal/auth"
	"liteboard/internal/config"
	"liteboard/internal/domain"
	"liteboard/internal/domain/models"
	"liteboard/internal/domain/services"
	"liteboard/internal/repository/postgres"
	"liteboard/internal/service"
	svcauth "liteboard/internal/service/auth"
)

func main() {
	dropTables := flag.Bool("drop-tables", false, "Drop all tables before seeding (fresh start)")
	schemaOnly := flag.Bool("schema-only", false, "Only set up schema, don't seed a board")
	clearData := flag.Bool("clear-data", false, "Clear all projects, lists and entries (keep schema)")
	username := flag.String("user", "demo", "Username that owns the seeded board")
	filler := flag.Int("filler", 0, "Extra lorem ipsum cards to put in Todo")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && (*dropTables || *clearData) {
		log.Fatalf("BLOCKED: Cannot run destructive operations (--drop-tables or --clear-data) in production environment")
	}
	if cfg.DatabaseURL == "" {
		log.Fatalf("DATABASE_URL is required")
	}

	logger := config.NewLogger(os.Stdout, true, false)

	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	tables := postgres.NewTableNames(cfg.TablePrefix)

	if *dropTables {
		log.Println("Dropping all tables...")
		if err := postgres.DropSchema(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
	}

	log.Printf("Ensuring schema (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)
	if err := postgres.EnsureSchema(ctx, pool, tables, cfg.TablePrefix); err != nil {
		log.Fatalf("Failed to run schema: %v", err)
	}

	if *schemaOnly {
		log.Println("Schema setup complete (schema-only mode)")
		return
	}

	if *clearData {
		if err := postgres.ClearData(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to clear data: %v", err)
		}
		log.Println("Data cleared")
		return
	}

	repoConfig := &postgres.RepositoryConfig{Pool: pool, Tables: tables, Logger: logger}
	projectRepo := postgres.NewProjectRepository(repoConfig)
	listRepo := postgres.NewListRepository(repoConfig)
	entryRepo := postgres.NewEntryRepository(repoConfig)
	authorizer := svcauth.NewOwnerBasedAuthorizer(projectRepo)

	seeder := &seeder{
		projects: service.NewProjectService(projectRepo, listRepo, entryRepo, postgres.NewTransactionManager(pool, logger), logger),
		lists:    service.NewListService(listRepo, authorizer, logger),
		entries:  service.NewEntryService(entryRepo, authorizer, logger),
		userID:   auth.UserIDFor(*username),
		filler:   *filler,
		lorem:    loremgen.New(),
		logger:   logger,
	}

	project, err := seeder.run(ctx)
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
	log.Printf("Seeded board %q (id %d) for user %q", project.Name, project.ID, *username)
}

type seeder struct {
	projects services.ProjectService
	lists    services.ListService
	entries  services.EntryService
	userID   string
	filler   int
	lorem    *loremgen.Lorem
	logger   *slog.Logger
}

// run creates the demo board: a Todo list holding "Write spec" plus any
// filler cards, and an empty Done list. An existing demo project is replaced.
func (s *seeder) run(ctx context.Context) (*models.Project, error) {
	const name = "Demo board"

	project, err := s.projects.CreateProject(ctx, &services.CreateProjectRequest{
		UserID:      s.userID,
		Name:        name,
		Description: "Drag the card from Todo to Done",
	})
	var conflict *domain.ConflictError
	if errors.As(err, &conflict) {
		if err := s.projects.DeleteProject(ctx, conflict.ResourceID, s.userID); err != nil {
			return nil, err
		}
		return s.run(ctx)
	}
	if err != nil {
		return nil, err
	}

	card, err := s.entries.CreateEntry(ctx, &services.SaveEntryRequest{
		UserID:    s.userID,
		Type:      models.EntryType,
		Title:     "Write spec",
		Content:   "Write spec",
		ProjectID: project.ID,
	})
	if err != nil {
		return nil, err
	}
	todo := models.Items{models.EntryItem{Entry: *card}}

	for i := 0; i < s.filler; i++ {
		extra, err := s.entries.CreateEntry(ctx, &services.SaveEntryRequest{
			UserID:    s.userID,
			Type:      models.EntryType,
			Title:     strings.TrimSuffix(s.lorem.Sentence(2, 5), "."),
			Content:   s.lorem.Paragraph(1, 2),
			ProjectID: project.ID,
		})
		if err != nil {
			return nil, err
		}
		todo = append(todo, models.EntryItem{Entry: *extra})
	}

	for _, l := range []struct {
		title string
		items models.Items
	}{
		{"Todo", todo},
		{"Done", models.Items{}},
	} {
		if _, err := s.lists.CreateList(ctx, &services.SaveListRequest{
			UserID:    s.userID,
			Type:      models.ListType,
			Title:     l.title,
			Items:     l.items,
			ProjectID: project.ID,
		}); err != nil {
			return nil, err
		}
	}

	s.logger.Info("seeded board", "project_id", project.ID, "card_id", card.ID)
	return project, nil
}
