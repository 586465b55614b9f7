package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"HandSketch/internal/config"
	"HandSketch/internal/logging"
	"HandSketch/internal/posenet"
	"HandSketch/internal/session"
	"HandSketch/internal/ui"
)

const frameInterval = time.Second / 72

func main() {
	var (
		configPath  = flag.String("config", "handsketch.toml", "path to the TOML config file")
		headless    = flag.Bool("headless", false, "run without a window, driven only by the network pose feed")
		discover    = flag.Bool("discover", false, "list pose feeds advertised on the LAN and exit")
		writeConfig = flag.String("write-config", "", "write the default config to this path and exit")
		verbose     = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logging.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	switch {
	case *writeConfig != "":
		if err := config.Save(*writeConfig, config.Default()); err != nil {
			log.Fatalf("Failed to write config: %v", err)
		}
		log.Printf("Default config written to %s", *writeConfig)
		return
	case *discover:
		runDiscover()
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	feed, err := startPoseFeed(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to start pose feed: %v", err)
	}

	if *headless {
		runHeadless(ctx, cfg, feed)
	} else {
		runSimulator(cfg, feed)
	}
}

func runHeadless(ctx context.Context, cfg config.Config, feed *posenet.Feed) {
	log.Println("Starting HEADLESS")
	sess, err := session.New(cfg, session.Options{Poses: feed})
	if err != nil {
		log.Fatalf("Failed to create session: %v", err)
	}
	sess.OnStatus = func(msg string) { log.Printf("[SESSION] %s", msg) }
	if cfg.Storage.Enabled {
		if _, err := sess.Load(); err != nil {
			log.Printf("[SESSION] Could not restore drawing: %v", err)
		}
	}

	sess.Run(ctx, frameInterval)

	if cfg.Storage.Enabled {
		if err := sess.Save(); err != nil {
			log.Printf("[SESSION] Could not save drawing on exit: %v", err)
		}
	}
	log.Println("Stopped")
}

func runSimulator(cfg config.Config, feed *posenet.Feed) {
	log.Println("Starting SIMULATOR")
	sim, err := ui.NewSimulator(cfg, feed)
	if err != nil {
		log.Fatalf("Failed to create simulator: %v", err)
	}
	sim.Run()
}

// startPoseFeed serves the websocket pose endpoint and, if configured,
// advertises it over mDNS. Both stop when ctx is cancelled.
func startPoseFeed(ctx context.Context, cfg config.Config) (*posenet.Feed, error) {
	age, err := cfg.PoseFeed.Age()
	if err != nil {
		return nil, err
	}
	feed := posenet.NewFeed(age)
	if cfg.PoseFeed.Listen == "" {
		return feed, nil
	}

	ln, err := net.Listen("tcp", cfg.PoseFeed.Listen)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", cfg.PoseFeed.Listen, err)
	}
	port := ln.Addr().(*net.TCPAddr).Port
	go func() {
		if err := posenet.NewServer(feed).ServeListener(ctx, ln); err != nil {
			log.Printf("[POSENET] %v", err)
		}
	}()
	log.Printf("[POSENET] Companion URL: %s", posenet.URL(posenet.OutgoingIP(), port))

	if cfg.PoseFeed.Advertise {
		server, err := posenet.Advertise(port)
		if err != nil {
			log.Printf("[POSENET] mDNS advertise failed: %v", err)
			return feed, nil
		}
		go func() {
			<-ctx.Done()
			server.Shutdown()
		}()
	}
	return feed, nil
}

func runDiscover() {
	found := 0
	err := posenet.Browse(3*time.Second, func(addr string) {
		u, err := feedURL(addr)
		if err != nil {
			log.Printf("[POSENET] Skipping %q: %v", addr, err)
			return
		}
		found++
		fmt.Println(u)
	})
	if err != nil {
		log.Fatalf("Discovery failed: %v", err)
	}
	if found == 0 {
		log.Println("No pose feeds found")
	}
}

// feedURL turns a discovered host:port into the companion URL.
func feedURL(addr string) (string, error) {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "", err
	}
	p, err := strconv.Atoi(port)
	if err != nil || p <= 0 || p > 65535 {
		return "", fmt.Errorf("bad port %q", port)
	}
	if host == "" {
		return "", fmt.Errorf("missing host")
	}
	return posenet.URL(host, p), nil
}
