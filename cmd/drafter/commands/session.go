package commands

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dyluth/drafter/internal/config"
	"github.com/dyluth/drafter/internal/controller"
	"github.com/dyluth/drafter/internal/genexec"
	"github.com/dyluth/drafter/internal/printer"
	"github.com/dyluth/drafter/pkg/workspace"
)

// session bundles everything a command needs: the validated config, the
// persistence gateway, and a controller restored from the stored snapshot.
type session struct {
	cfg    *config.DrafterConfig
	client *workspace.Client
	ctrl   *controller.Controller
}

// close releases the session's Redis connection.
func (s *session) close() {
	s.client.Close()
}

// newSession loads the config, connects to Redis, and restores the
// controller state. Every failure is reported through the printer so Cobra
// only sees a terse error.
func newSession(ctx context.Context) (*session, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, printer.Error(
			"Cannot load configuration",
			err.Error(),
			[]string{"Run 'drafter init' to create a drafter.yml in the current directory"},
		)
	}

	client, err := workspace.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}, cfg.Instance)
	if err != nil {
		return nil, printer.Error("Cannot create Redis client", err.Error(), nil)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx); err != nil {
		client.Close()
		return nil, printer.Error(
			"Cannot reach Redis",
			err.Error(),
			[]string{"Check that Redis is running at " + cfg.Redis.Addr},
		)
	}

	gen, err := genexec.New(cfg.Generator.Command, time.Duration(cfg.Generator.TimeoutSeconds)*time.Second)
	if err != nil {
		client.Close()
		return nil, printer.Error("Invalid generator configuration", err.Error(), nil)
	}

	graph := workspace.NewGraph(cfg.IncludeKnowledgeBase())
	ctrl := controller.New(graph, gen, client, controller.Role(cfg.Role))

	if err := ctrl.Restore(ctx); err != nil {
		client.Close()
		return nil, printer.Error("Cannot restore project state", err.Error(), nil)
	}

	return &session{cfg: cfg, client: client, ctrl: ctrl}, nil
}
