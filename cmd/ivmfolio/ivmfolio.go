package main

import (
	"context"
	"flag"
	"log"
	"os"

	"cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"

	"github.com/dasiyes/ivmfolio/configs/config"
	"github.com/dasiyes/ivmfolio/internal/data/firestoredb"
	"github.com/dasiyes/ivmfolio/internal/data/gcstorage"
	"github.com/dasiyes/ivmfolio/internal/mailer"
	"github.com/dasiyes/ivmfolio/internal/ratelimit"
	"github.com/dasiyes/ivmfolio/internal/server"
	"github.com/dasiyes/ivmfolio/internal/server/router"
	"github.com/dasiyes/ivmfolio/pkg/fspool"
	"github.com/dasiyes/ivmfolio/tools"

	lgrs "github.com/sirupsen/logrus"
)

func main() {
	var (
		debug = flag.Bool("debug", false, "debug mode")
		vers  = flag.Bool("version", false, "prints version")
		cfgfn = flag.String("config", "configs/config.yaml", "--config=<file_name> configuration file name. Default is configs/config.yaml")
	)

	flag.Parse()
	ctx := context.Background()

	// Request to print out the build version
	if *vers {
		tools.PrintVersion()
		os.Exit(0)
	}

	var (
		ml *log.Logger = log.New(os.Stderr, "[main] ", log.LstdFlags)
		al              = lgrs.New()
	)

	// Check debug mode request
	if *debug {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
		al.Level = lgrs.DebugLevel
	}

	// Load the configuration file
	cfg, err := config.LoadConfig(*cfgfn)
	if err != nil {
		ml.Printf("Error loading configuration file %s \nExit, unable to proceed", *cfgfn)
		panic(err)
	}

	// Initialize the firestore clients pool and the repositories
	prj := cfg.GetProjectID()
	if prj == "" {
		ml.Printf("Firestore project id %v is empty. Exit: unable to proceed.", prj)
		panic(nil)
	}
	pool, err := fspool.NewConnectionPool(ctx, prj, cfg.GetPoolSize())
	if err != nil {
		ml.Printf("firestore pool init error %s.\n Exit: unable to proceed.", err.Error())
		panic(err)
	}
	defer pool.Close()

	projectRepo, err := firestoredb.NewProjectRepository(pool, cfg.GetProjectsCollectionName())
	if err != nil {
		ml.Printf("firestore repository init error %s.\n Exit: unable to proceed.", err.Error())
		panic(err)
	}
	rlStore, err := firestoredb.NewRateLimitRepository(pool, cfg.GetRateLimitsCollectionName())
	if err != nil {
		ml.Printf("firestore repository init error %s.\n Exit: unable to proceed.", err.Error())
		panic(err)
	}

	// Initialize the Cloud Storage backed image store
	stc, err := storage.NewClient(ctx)
	if err != nil {
		ml.Printf("cloud storage client init error %s.\n Exit: unable to proceed.", err.Error())
		panic(err)
	}
	defer stc.Close()

	images, err := gcstorage.NewImageStore(stc, cfg.GetBucket())
	if err != nil {
		ml.Printf("image store init error %s.\n Exit: unable to proceed.", err.Error())
		panic(err)
	}

	// Initialize the notification mailer
	mail, err := mailer.NewResendMailer(cfg.GetMailAPIKey(), cfg.GetMailFrom(), cfg.GetMailTo(), al)
	if err != nil {
		ml.Printf("mailer init error %s.\n Exit: unable to proceed.", err.Error())
		panic(err)
	}

	// Initialize the admin token verifier when the auth gate is on
	var verifier router.TokenVerifier
	if cfg.GetAuthEnabled() {
		app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: prj})
		if err != nil {
			ml.Printf("firebase app init error %s.\n Exit: unable to proceed.", err.Error())
			panic(err)
		}
		verifier, err = app.Auth(ctx)
		if err != nil {
			ml.Printf("firebase auth client init error %s.\n Exit: unable to proceed.", err.Error())
			panic(err)
		}
	}

	limiter := ratelimit.NewLimiter(rlStore, ratelimit.Defaults, al)

	// Init a new HTTP server instance
	httpServer := server.NewInstance()
	hdlr := router.NewHandler(projectRepo, images, mail, limiter, verifier, cfg)
	errs := make(chan error, 2)
	go func() {
		addr := ":" + cfg.Port
		ml.Printf("...starting ivmfolio instance at %s...", addr)
		errs <- httpServer.Start(addr, hdlr)
	}()

	ml.Printf("ivmfolio http server terminated! %v", <-errs)
}
