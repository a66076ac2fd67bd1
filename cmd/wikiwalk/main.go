package main

import (
	"context"
	"flag"
	"math/rand"
	"os"
	"os/signal"
	"path"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/hikmetazimzade/wiki-philosophy-finder/pkg/config"
	"github.com/hikmetazimzade/wiki-philosophy-finder/pkg/fetch"
	wflog "github.com/hikmetazimzade/wiki-philosophy-finder/pkg/log"
	"github.com/hikmetazimzade/wiki-philosophy-finder/pkg/models"
	"github.com/hikmetazimzade/wiki-philosophy-finder/pkg/process"
	"github.com/hikmetazimzade/wiki-philosophy-finder/pkg/selector"
	"github.com/hikmetazimzade/wiki-philosophy-finder/pkg/traverse"
)

func main() {
	// --- Early Initialization & Flags ---
	log := logrus.New()
	log.SetFormatter(&wflog.ColoredFormatter{})
	log.SetLevel(logrus.InfoLevel) // Default level

	configFileFlag := flag.String("config", "", "Path to YAML config file (optional)")
	startFlag := flag.String("start", "", "Starting article URL (overrides config)")
	attemptsFlag := flag.Int("attempts", 0, "Iteration budget (overrides config)")
	logLevelFlag := flag.String("loglevel", "info", "Log level (debug, info, warn, error, fatal)")
	seedFlag := flag.Int64("seed", 0, "Random seed for link selection (0 = time-based)")
	flag.Parse()

	// --- Logger Configuration ---
	level, err := logrus.ParseLevel(*logLevelFlag)
	if err != nil {
		log.Warnf("Invalid log level '%s', using default 'info'. Error: %v", *logLevelFlag, err)
	} else {
		log.SetLevel(level)
	}

	// --- Load Application Configuration ---
	var appCfg config.AppConfig
	if *configFileFlag != "" {
		yamlFile, err := os.ReadFile(*configFileFlag)
		if err != nil {
			log.Fatalf("Read config file '%s' error: %v", *configFileFlag, err)
		}
		if err := yaml.Unmarshal(yamlFile, &appCfg); err != nil {
			log.Fatalf("Parse config file '%s' error: %v", *configFileFlag, err)
		}
	}
	if *startFlag != "" {
		appCfg.StartURL = *startFlag
	}
	if *attemptsFlag > 0 {
		appCfg.MaxAttempts = *attemptsFlag
	}

	warnings, err := appCfg.Validate()
	for _, w := range warnings {
		log.Warn(w)
	}
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	// --- Global Context & Signal Handling ---
	runCtx, cancelRun := context.WithCancel(context.Background())
	defer cancelRun()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		sig := <-sigChan
		log.Warnf("Received signal: %v. Stopping traversal...", sig)
		cancelRun()
	}()

	// --- Initialize Components ---
	seed := *seedFlag
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	runLog := log.WithField("run_id", uuid.NewString())

	httpClient := fetch.NewClient(appCfg.HTTPClientSettings, log)
	fetcher := fetch.NewFetcher(httpClient, appCfg.UserAgent, log)
	pacer := fetch.NewPacer(appCfg.MinDelay, appCfg.MaxDelay, rng, log)
	extractor := process.NewHrefExtractor(appCfg.ContentSelector, appCfg.LinkPrefix, appCfg.SandboxSuffix, log)
	sel := selector.NewSelector(strings.ToLower(path.Base(appCfg.TargetPath)), rng, log)

	engine := traverse.NewEngine(fetcher, extractor, sel, pacer, traverse.Options{
		SiteOrigin:  appCfg.SiteOrigin,
		TargetPath:  appCfg.TargetPath,
		LinkPrefix:  appCfg.LinkPrefix,
		MaxAttempts: appCfg.MaxAttempts,
	}, runLog)

	// --- Run Traversal ---
	result := engine.Run(runCtx, appCfg.StartURL)

	if result.Outcome == models.OutcomeFound {
		runLog.Infof("Found %s after %d hops!", path.Base(appCfg.TargetPath), result.Hops)
		os.Exit(0)
	}

	runLog.Infof("%s link not found! (outcome: %s)", path.Base(appCfg.TargetPath), result.Outcome)
	os.Exit(1)
}
