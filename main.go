package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/harrisonrobin/classync/pkg/auth"
	"github.com/harrisonrobin/classync/pkg/canvas"
	"github.com/harrisonrobin/classync/pkg/config"
	"github.com/harrisonrobin/classync/pkg/discover"
	"github.com/harrisonrobin/classync/pkg/sync"
	"github.com/harrisonrobin/classync/pkg/todoist"
)

func main() {
	// 1. Parse Flags
	linkFile := flag.String("file", "", "Path to the link file (overrides config)")
	setCanvasURL := flag.String("set-canvas-url", "", "Set the Canvas instance base URL")
	showIDs := flag.Bool("ids", false, "Print Canvas course and Todoist project identifiers")
	deleteTask := flag.String("delete", "", "Delete the Todoist task with the given ID")
	verbose := flag.Bool("verbose", false, "Enable debug logging")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false})
	if *verbose {
		logger.SetLevel(log.DebugLevel)
	}

	// 2. Handle Set Canvas URL
	if *setCanvasURL != "" {
		cfg, err := config.Load()
		if err != nil {
			cfg = &config.Config{}
		}
		cfg.CanvasURL = *setCanvasURL
		if err := config.Save(cfg); err != nil {
			logger.Fatal("could not save config", "err", err)
		}
		fmt.Printf("Canvas base URL set to: %s\n", *setCanvasURL)
		return
	}

	// 3. Determine Link File (Priority: Flag > Config > Default)
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("could not load config", "err", err)
	}
	path := cfg.LinkFile
	if path == "" {
		path = config.DefaultLinkFile
	}
	if *linkFile != "" {
		path = *linkFile
	}

	// 4. Authenticate Against Both Services
	creds, err := auth.Load()
	if err != nil {
		logger.Fatal("missing credentials", "err", err)
	}

	ctx := context.Background()

	cv, err := canvas.NewClient(cfg.CanvasURL, auth.HTTPClient(ctx, creds.CanvasToken))
	if err != nil {
		logger.Fatal("could not create Canvas client", "err", err)
	}
	user, err := cv.Self(ctx)
	if err != nil {
		logger.Fatal("failed to log into Canvas, make sure your token is valid", "err", err)
	}
	logger.Info("logged into Canvas", "user", user.Name)

	td := todoist.NewClient(auth.HTTPClient(ctx, creds.TodoistToken))
	if _, err := td.Projects(ctx); err != nil {
		logger.Fatal("failed to log into Todoist, make sure your token is valid", "err", err)
	}
	logger.Info("logged into Todoist")

	// 5. Handle One-Off Modes
	if *deleteTask != "" {
		if err := td.DeleteTask(ctx, *deleteTask); err != nil {
			logger.Fatal("could not delete task", "task", *deleteTask, "err", err)
		}
		logger.Info("deleted task", "task", *deleteTask)
		return
	}

	if *showIDs {
		if err := discover.Courses(ctx, cv); err != nil {
			logger.Error("listing courses", "err", err)
		}
		if err := discover.Projects(ctx, td); err != nil {
			logger.Error("listing projects", "err", err)
		}
		return
	}

	// 6. Push
	links, err := config.LoadLinks(path)
	if err != nil {
		logger.Fatal("could not load link file", "err", err)
	}
	logger.Info("link file found, beginning push", "links", len(links))

	res := sync.New(cv, td, logger).Push(ctx, links)
	logger.Info("push complete",
		"created", res.Created,
		"subtasks", res.Subtasks,
		"duplicates", res.Duplicates,
		"failed", res.Failed)
}
