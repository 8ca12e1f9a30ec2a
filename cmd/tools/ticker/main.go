package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"crisp-interview/internal/models"

	apihttp "crisp-interview/pkg/http"
)

// ticker drives the interview countdown from outside the service, posting one
// tick per second the way a browser tab's clock would.
func main() {
	var baseURL string
	var interval time.Duration
	flag.StringVar(&baseURL, "addr", "http://localhost:8080", "Interview service base URL")
	flag.DurationVar(&interval, "interval", time.Second, "Tick interval")
	flag.Parse()

	client := apihttp.NewClient(baseURL, 10*time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		cancel()
	}()

	log.Printf("Ticking %s every %v", baseURL, interval)

	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Ticker stopped")
			return
		case <-t.C:
			var resp struct {
				Timer   models.TimerState `json:"timer"`
				Expired bool              `json:"expired"`
			}
			if err := client.PostJSON(ctx, "/api/interview/tick", nil, &resp); err != nil {
				log.Printf("tick failed: %v", err)
				continue
			}
			if resp.Expired {
				log.Printf("Question time expired (budget %ds)", resp.Timer.TotalTime)
			}
		}
	}
}
