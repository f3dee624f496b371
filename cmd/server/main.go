package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"poker_club_backend/internal/config"
	"poker_club_backend/internal/database"
	"poker_club_backend/internal/metrics"
	"poker_club_backend/internal/repositories"
	"poker_club_backend/internal/router"
	"poker_club_backend/internal/services"
	"poker_club_backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

const shutdownTimeout = 10 * time.Second

func main() {
	app := &cli.App{
		Name:  "poker-club-hub",
		Usage: "poker club directory API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "config.yaml",
				Usage:   "path to the configuration file",
				EnvVars: []string{"CONFIG_PATH"},
			},
		},
		Commands: []*cli.Command{
			serveCommand(),
			migrateCommand(),
			clubCommand(),
		},
		DefaultCommand: "serve",
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("poker-club-hub exited with error")
	}
}

// loadConfig reads the config file named by --config and sets up logging.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	utils.InitLogger(cfg.Log.Level, cfg.Log.Format)
	return cfg, nil
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the HTTP API",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "migrate", Usage: "apply the schema before serving"},
		},
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			if err := utils.ConfigureJWT(cfg.JWT.Secret, cfg.JWT.TTL); err != nil {
				return fmt.Errorf("jwt.secret (or JWT_SECRET) must be set: %w", err)
			}

			db, err := database.InitDB(cfg.Postgres.DSN())
			if err != nil {
				return err
			}
			defer db.Close()

			if c.Bool("migrate") {
				if err := database.ApplySchema(db); err != nil {
					return err
				}
			}

			if os.Getenv(gin.EnvGinMode) == "" {
				gin.SetMode(gin.ReleaseMode)
			}
			m := metrics.New()
			engine := router.NewEngine(cfg, m)
			if err := router.Setup(engine, db, cfg, m); err != nil {
				return err
			}

			srv := &http.Server{
				Addr:              ":" + cfg.Server.Port,
				Handler:           engine,
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				utils.LogInfo("Server starting", map[string]interface{}{"port": cfg.Server.Port})
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				if err != nil {
					return fmt.Errorf("server failed: %w", err)
				}
				return nil
			case <-ctx.Done():
			}

			utils.LogInfo("Shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
}

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "create or update the database schema",
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			db, err := database.InitDB(cfg.Postgres.DSN())
			if err != nil {
				return err
			}
			defer db.Close()
			return database.ApplySchema(db)
		},
	}
}

func clubCommand() *cli.Command {
	return &cli.Command{
		Name:  "club",
		Usage: "manage club operator accounts",
		Subcommands: []*cli.Command{
			{
				Name:  "set-password",
				Usage: "set the login password of a club, optionally approving it",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "club", Required: true, Usage: "club id (the slug used in its URL)"},
					&cli.StringFlag{Name: "password", Required: true, EnvVars: []string{"CLUB_PASSWORD"}},
					&cli.BoolFlag{Name: "approve", Usage: "also mark the club approved so it is listed"},
				},
				Action: func(c *cli.Context) error {
					cfg, err := loadConfig(c)
					if err != nil {
						return err
					}
					db, err := database.InitDB(cfg.Postgres.DSN())
					if err != nil {
						return err
					}
					defer db.Close()

					authService := services.NewAuthService(repositories.NewClubRepository(db), db, nil)
					if err := authService.SetPassword(c.String("club"), c.String("password"), c.Bool("approve")); err != nil {
						return err
					}
					fmt.Fprintf(c.App.Writer, "password updated for club %s\n", c.String("club"))
					return nil
				},
			},
		},
	}
}
