package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ardanlabs/conf"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"hrms/backend/foundation/web"
	"hrms/backend/internal/auth"
	"hrms/backend/internal/commands"
	"hrms/backend/internal/pkg/config"
	"hrms/backend/internal/pkg/repository/postgresql"
	"hrms/backend/internal/router"
)

func main() {
	if err := run(); err != nil {
		log.Println("main: error:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := struct {
		conf.Version
		Web struct {
			Port          string `conf:"default::8080"`
			MediaBasePath string `conf:"default:./statics"`
		}
	}{
		Version: conf.Version{
			SVN:  "1.0.0",
			Desc: "HR administration backend",
		},
	}

	if err := conf.Parse(os.Args[1:], "HRMS", &cfg); err != nil {
		switch err {
		case conf.ErrHelpWanted:
			usage, err := conf.Usage("HRMS", &cfg)
			if err != nil {
				return errors.Wrap(err, "generating config usage")
			}
			fmt.Println(usage)
			return nil
		case conf.ErrVersionWanted:
			version, err := conf.VersionString("HRMS", &cfg)
			if err != nil {
				return errors.Wrap(err, "generating config version")
			}
			fmt.Println(version)
			return nil
		}
		return errors.Wrap(err, "parsing config")
	}

	yamlConfig, err := config.NewConfig()
	if err != nil {
		return errors.Wrap(err, "reading config.yaml")
	}

	postgresDB := postgresql.New(postgresql.Config{
		Host:       yamlConfig.DBHost,
		Port:       yamlConfig.DBPort,
		User:       yamlConfig.DBUsername,
		Password:   yamlConfig.DBPassword,
		Name:       yamlConfig.DBName,
		DisableTLS: yamlConfig.DisableTLS,
	})
	defer postgresDB.Close()

	commands.MigrateUP(postgresDB)

	redisDB := redis.NewClient(&redis.Options{
		Addr:     yamlConfig.RedisAddr,
		Password: yamlConfig.RedisPassword,
	})
	defer redisDB.Close()

	authenticator, err := auth.NewAuth(yamlConfig.PrivateKeyPath)
	if err != nil {
		return errors.Wrap(err, "constructing authenticator")
	}

	app := web.NewApp()

	r := router.NewRouter(
		app,
		postgresDB,
		redisDB,
		cfg.Web.Port,
		authenticator,
		*yamlConfig.Policy,
		yamlConfig.PrivateKeyPath,
		cfg.Web.MediaBasePath,
	)

	return r.Init()
}
