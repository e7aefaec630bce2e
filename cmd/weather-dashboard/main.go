package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/i474232898/weather-dashboard/internal/config"
	"github.com/i474232898/weather-dashboard/internal/dashboard"
	"github.com/i474232898/weather-dashboard/internal/scheduler"
)

func main() {
	cfg, err := config.LoadDashboard()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	gatewayURL := flag.String("gateway", cfg.GatewayURL, "Base URL of the weather proxy")
	city := flag.String("city", "", "City to look up")
	locate := flag.Bool("locate", false, "Look up the current location instead of a city")
	lat := flag.String("lat", "", "Latitude used by -locate instead of geocoding")
	lon := flag.String("lon", "", "Longitude used by -locate instead of geocoding")
	refresh := flag.Duration("refresh", cfg.Refresh, "Refresh interval (0 disables)")
	flag.Parse()

	logger := cfg.Log.NewLogger(os.Stderr)
	renderer := dashboard.NewTerminalRenderer(os.Stdout)

	opts := []dashboard.Option{}
	if *lat != "" && *lon != "" {
		la, errLat := strconv.ParseFloat(*lat, 64)
		lo, errLon := strconv.ParseFloat(*lon, 64)
		if errLat != nil || errLon != nil {
			log.Fatalf("invalid -lat/-lon: %q, %q", *lat, *lon)
		}
		opts = append(opts, dashboard.WithLocator(dashboard.StaticLocator{Lat: la, Lon: lo}))
	} else if cfg.GeocoderAPIKey != "" && cfg.HomeAddress != "" {
		opts = append(opts, dashboard.WithLocator(dashboard.NewGeocoderLocator(cfg.GeocoderAPIKey, cfg.HomeAddress)))
	}

	client := dashboard.NewClient(&http.Client{}, *gatewayURL)
	orch := dashboard.New(client, renderer, renderer, logger, opts...)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *locate {
		err = orch.Locate(ctx)
	} else {
		err = orch.Search(ctx, *city)
	}

	if *refresh <= 0 {
		stop()
		if err != nil {
			os.Exit(1)
		}
		return
	}

	sched := scheduler.New(orch, *refresh, logger)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	<-ctx.Done()
}
