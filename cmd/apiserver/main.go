package main

import (
	"flag"
	"log"
	"net/http"

	"github.com/dunamismax/go-cli/app"
	"github.com/dunamismax/go-cli/store"
	"github.com/dunamismax/go-cli/web"
)

func main() {
	configPath := flag.String("config", "", "Path to configuration file")
	listenAddr := flag.String("listen", "", "Address to listen on (overrides config)")
	flag.Parse()

	cfg, err := app.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	closeLog, err := app.SetupLogging(cfg.LogsDir, "apiserver", cfg.Debug)
	if err != nil {
		log.Fatalf("failed to set up logging: %v", err)
	}
	defer closeLog()

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to open database %s: %v", cfg.DBPath, err)
	}
	defer st.Close()

	srv := web.NewServer(cfg, st)
	addr := srv.ListenAddr()
	if *listenAddr != "" {
		addr = *listenAddr
	}

	log.Printf("starting api server on %s", addr)
	if err := http.ListenAndServe(addr, srv.Router()); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
