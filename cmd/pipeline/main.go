package main

import (
	"context"
	"flag"
	"log"
	"strings"
	"time"

	"gitscout-be/internal/bootstrap"
	"gitscout-be/internal/config"
	"gitscout-be/internal/dto"
	"gitscout-be/internal/service"
	"gitscout-be/pkg/database"

	"github.com/fatih/color"
)

// The pipeline entrypoint runs a full discovery pass from the console:
// scrape trending for each requested language, then re-match every
// active project against the refreshed pool. Meant for cron.
func main() {
	languages := flag.String("languages", "", "comma-separated trending languages, empty = all languages page")
	since := flag.String("since", "daily", "trending period: daily, weekly or monthly")
	skipCollect := flag.Bool("skip-collect", false, "skip the trending scrape, only run matching")
	skipMatch := flag.Bool("skip-match", false, "skip matching, only collect trending repos")
	flag.Parse()

	cfg := config.Load()

	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatalf("Unable to connect to GORM DB: %v", err)
	}

	container := bootstrap.NewContainer(gormDB, cfg)

	// The embedding worker must run so freshly discovered repos get
	// vectors before matching reads the pool.
	go func() {
		if err := container.ConsumerService.Consume(context.Background()); err != nil {
			log.Printf("Background Consumer Error: %v", err)
		}
	}()

	ctx := context.Background()
	start := time.Now()
	color.Cyan("🚀 GitScout pipeline run (%s)\n", start.Format(time.RFC3339))

	if !*skipCollect {
		runCollect(ctx, container.TrendingService, *languages, *since)
	}

	if !*skipMatch {
		runMatchAll(ctx, container.MatcherService)
	}

	// Give the in-process embedding queue a moment to drain before the
	// process exits and drops pending jobs.
	time.Sleep(2 * time.Second)

	color.Cyan("\nDone in %s", time.Since(start).Round(time.Millisecond))
}

func runCollect(ctx context.Context, trendingService service.ITrendingService, languages, since string) {
	color.Yellow("\n[1] Collecting trending repositories (%s)", since)

	targets := []string{""}
	if languages != "" {
		targets = strings.Split(languages, ",")
	}

	for _, lang := range targets {
		lang = strings.TrimSpace(lang)
		label := lang
		if label == "" {
			label = "all languages"
		}

		resp, err := trendingService.Collect(ctx, &dto.CollectTrendingRequest{
			Language: lang,
			Since:    since,
		})
		if err != nil {
			color.Red("  %-16s failed: %v", label, err)
			continue
		}
		color.Green("  %-16s %d repos (%d new)", label, resp.RepoCount, resp.NewRepos)
	}
}

func runMatchAll(ctx context.Context, matcherService service.IMatcherService) {
	color.Yellow("\n[2] Matching active projects")

	resp, err := matcherService.MatchAll(ctx)
	if err != nil {
		color.Red("  match run failed: %v", err)
		return
	}

	for _, p := range resp.Projects {
		color.Green("  project %s: %d candidates, %d stored", p.ProjectId, p.Candidates, p.Stored)
	}
	for _, f := range resp.Failures {
		color.Red("  project %s failed: %s", f.ProjectId, f.Error)
	}
	if len(resp.Projects) == 0 {
		color.Yellow("  no active projects to match")
	}
}
