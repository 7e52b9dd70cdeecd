package main

import (
	"log"
	"os"

	"github.com/steliasaustin/outreach/core"
	logsvc "github.com/steliasaustin/outreach/services/logger"
	"github.com/steliasaustin/outreach/storage/database"
)

func main() {
	defer os.Exit(0)

	conf := core.NewConfig()

	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	// set up DB
	if err := database.CreateIfNotExist(conf); err != nil {
		logger.Fatal(err.Error(), err)
	}
	db, err := database.Open(conf)
	if err != nil {
		logger.Fatal(err.Error(), err)
	}
	defer func() { _ = database.Close(db) }()

	// start CLI
	cli := commandLine{
		conf:   conf,
		db:     db,
		logger: logger,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Error(err.Error(), err)
		}
		os.Exit(1)
	}
}
