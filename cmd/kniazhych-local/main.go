package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"kniazhych/internal/config"
	httpserver "kniazhych/internal/server/http"
)

func openBrowser(url string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default: // linux / bsd
		cmd = exec.Command("xdg-open", url)
	}

	// headless machines have no browser; that is fine
	if err := cmd.Start(); err != nil {
		log.Printf("open browser: %v", err)
	}
}

func main() {
	cfg, err := config.InitConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// Flags override the config file; env vars override both defaults.
	addr := flag.String("addr", getenv("KNIAZHYCH_ADDR", cfg.Addr), "listen address")
	webDir := flag.String("web", getenv("KNIAZHYCH_WEB", cfg.WebDir), "directory with index.html / js / svg")
	mobileDir := flag.String("web-mobile", getenv("KNIAZHYCH_WEB_MOBILE", cfg.MobileDir), "directory with the mobile UI (defaults to -web)")
	browser := flag.Bool("browser", getenb("KNIAZHYCH_BROWSER", cfg.OpenBrowser), "open the UI in the default browser")
	save := flag.Bool("save-config", false, "write the effective settings to the user config file and exit")
	flag.Parse()

	cfg.Addr, cfg.WebDir, cfg.MobileDir, cfg.OpenBrowser = *addr, *webDir, *mobileDir, *browser
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}
	if *save {
		path, err := cfg.Save()
		if err != nil {
			log.Fatalf("save config: %v", err)
		}
		log.Printf("config written to %s", path)
		return
	}

	srv := httpserver.NewServer(cfg.WebDir, cfg.MobileDir)
	log.Printf("serving static from %s", cfg.WebDir)

	if cfg.OpenBrowser {
		// give the listener a moment to come up
		go func() {
			time.Sleep(100 * time.Millisecond)
			openBrowser(cfg.BrowserURL())
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Close(shutdown); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	if err := srv.Listen(cfg.Addr); err != nil {
		log.Fatal(err)
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenb(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "t", "yes", "y", "on":
			return true
		case "0", "false", "f", "no", "n", "off":
			return false
		}
	}
	return def
}
