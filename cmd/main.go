package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"college/backend/foundation/web"
	"college/backend/internal/auth"
	"college/backend/internal/commands"
	"college/backend/internal/pkg/config"
	"college/backend/internal/pkg/repository/postgresql"
	"college/backend/internal/router"

	"github.com/ardanlabs/conf"
	"github.com/redis/go-redis/v9"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("startup error: %v", err)
	}
}

func run() error {
	var flags struct {
		Port    string `conf:"default::8080"`
		Migrate bool   `conf:"default:true"`
	}

	if err := conf.Parse(os.Args[1:], "SERVER", &flags); err != nil {
		if err == conf.ErrHelpWanted {
			usage, err := conf.Usage("SERVER", &flags)
			if err != nil {
				return err
			}
			fmt.Println(usage)
			return nil
		}
		return err
	}

	cfg, err := config.NewConfig()
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}

	postgresDB := postgresql.NewDB(postgresql.Config{
		Username:   cfg.DBUsername,
		Password:   cfg.DBPassword,
		Host:       cfg.DBHost,
		Port:       cfg.DBPort,
		Name:       cfg.DBName,
		DisableTLS: cfg.DisableTLS,
	})

	if flags.Migrate {
		commands.MigrateUP(postgresDB)
	}

	redisDB := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})

	a, err := auth.New(cfg.JWTKeyFile)
	if err != nil {
		return fmt.Errorf("constructing auth: %w", err)
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	app := web.NewApp(shutdown)

	r := router.NewRouter(app, postgresDB, redisDB, flags.Port, a, cfg)

	return r.Init()
}
