// Copyright 2025 Joblens Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/joblens/joblens"
	"github.com/joblens/joblens/ai"
	"github.com/joblens/joblens/core"
	"github.com/joblens/joblens/ingestion"
	"github.com/joblens/joblens/lifecycle"
	"github.com/joblens/joblens/search"
)

func main() {
	// Pick up OPENAI_API_KEY and friends from a local .env if present.
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "joblens",
		Usage: "Semantic job listing aggregation and search",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "update",
				Usage:  "Run the daily update cycle, or individual maintenance steps",
				Action: updateCommand,
				Flags: storeFlags(
					&cli.StringSliceFlag{
						Name:    "input",
						Aliases: []string{"i"},
						Usage:   "JSON file of raw listings to collect (repeatable)",
					},
					&cli.DurationFlag{
						Name:  "ttl",
						Usage: "Listing time-to-live before expiry",
						Value: lifecycle.DefaultTTL,
					},
					&cli.IntFlag{
						Name:  "max-listings",
						Usage: "Maximum number of active listings to retain",
						Value: lifecycle.DefaultMaxListings,
					},
					&cli.BoolFlag{
						Name:  "mark-expired",
						Usage: "Only mark expired listings",
					},
					&cli.BoolFlag{
						Name:  "remove-duplicates",
						Usage: "Only find and mark duplicate listings",
					},
					&cli.BoolFlag{
						Name:  "maintain-count",
						Usage: "Only enforce the maximum listing count",
					},
					outputFlag(),
				),
			},
			{
				Name:   "search",
				Usage:  "Search job listings",
				Action: searchCommand,
				Flags: storeFlags(
					&cli.StringFlag{
						Name:    "query",
						Aliases: []string{"q"},
						Usage:   "Free text search query",
					},
					&cli.StringFlag{
						Name:  "skills",
						Usage: "Search by skills (comma-separated)",
					},
					&cli.StringFlag{
						Name:  "company",
						Usage: "Search by company (requires --role)",
					},
					&cli.StringFlag{
						Name:  "role",
						Usage: "Role to search for at --company",
					},
					&cli.StringFlag{
						Name:  "field",
						Usage: "Search by engineering field",
					},
					&cli.Uint64Flag{
						Name:  "similar-to",
						Usage: "Find listings similar to this listing ID",
					},
					&cli.Uint64Flag{
						Name:  "cluster",
						Usage: "Find listings in a specific cluster",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of results to return",
					},
					&cli.Float64Flag{
						Name:  "threshold",
						Usage: "Similarity threshold (0-1)",
					},
					outputFlag(),
				),
			},
			{
				Name:   "clusters",
				Usage:  "List clusters or show a cluster summary",
				Action: clustersCommand,
				Flags: storeFlags(
					&cli.Uint64Flag{
						Name:  "summary",
						Usage: "Show the summary for this cluster ID",
					},
					outputFlag(),
				),
			},
			{
				Name:   "process",
				Usage:  "Collect and process raw listings from JSON files",
				Action: processCommand,
				Flags: storeFlags(
					&cli.StringSliceFlag{
						Name:     "input",
						Aliases:  []string{"i"},
						Usage:    "JSON file of raw listings to collect (repeatable)",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "pool-size",
						Usage: "Number of concurrent processing workers",
					},
				),
			},
			{
				Name:   "stats",
				Usage:  "Show corpus statistics and the latest update report",
				Action: statsCommand,
				Flags:  storeFlags(outputFlag()),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// storeFlags returns the flags every command shares, plus any extras.
func storeFlags(extra ...cli.Flag) []cli.Flag {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:     "db",
			Aliases:  []string{"d"},
			Usage:    "Path to BadgerDB database directory",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "host",
			Usage: "OpenAI-compatible API host URL",
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Embedding model name",
		},
		&cli.StringFlag{
			Name:  "chat-model",
			Usage: "Chat model name",
		},
	}
	return append(flags, extra...)
}

func outputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "output",
		Usage: "Output format (text, json)",
		Value: "text",
	}
}

func openDatabase(c *cli.Context) (*joblens.Database, error) {
	var opts []ai.ConfigOption
	if host := c.String("host"); host != "" {
		opts = append(opts, ai.WithHost(host))
	}
	if model := c.String("embedding-model"); model != "" {
		opts = append(opts, ai.WithEmbeddingModel(model))
	}
	if model := c.String("chat-model"); model != "" {
		opts = append(opts, ai.WithChatModel(model))
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		opts = append(opts, ai.WithAPIKey(key))
	}

	db, err := joblens.NewDatabase(c.String("db"), joblens.WithAIConfig(ai.NewConfig(opts...)))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

func fileCollectors(paths []string) []ingestion.Collector {
	collectors := make([]ingestion.Collector, 0, len(paths))
	for _, path := range paths {
		collectors = append(collectors, ingestion.NewFileCollector(path))
	}
	return collectors
}

func updateCommand(c *cli.Context) error {
	ctx := context.Background()

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	config := lifecycle.Config{
		TTL:         c.Duration("ttl"),
		MaxListings: c.Int("max-listings"),
	}

	// Individual step flags bypass the full daily cycle.
	if c.Bool("mark-expired") || c.Bool("remove-duplicates") || c.Bool("maintain-count") {
		return runUpdateSteps(ctx, c, db, config)
	}

	collectors := fileCollectors(c.StringSlice("input"))
	maintainer, processor, err := db.NewMaintainer(config, lifecycle.WithCollectors(collectors...))
	if err != nil {
		return fmt.Errorf("failed to build maintainer: %w", err)
	}
	defer processor.Release()

	report, runErr := maintainer.RunDailyUpdate(ctx)
	if report != nil {
		if err := printReport(report, c.String("output")); err != nil {
			return err
		}
	}
	if runErr != nil {
		return fmt.Errorf("daily update failed: %w", runErr)
	}
	return nil
}

func runUpdateSteps(ctx context.Context, c *cli.Context, db *joblens.Database, config lifecycle.Config) error {
	maintainer, processor, err := db.NewMaintainer(config)
	if err != nil {
		return fmt.Errorf("failed to build maintainer: %w", err)
	}
	defer processor.Release()

	if c.Bool("mark-expired") {
		expired, err := maintainer.MarkExpired(ctx)
		if err != nil {
			return fmt.Errorf("failed to mark expired listings: %w", err)
		}
		fmt.Printf("Marked %d listings as expired\n", expired)
	}

	if c.Bool("remove-duplicates") {
		resolver, err := db.NewResolver()
		if err != nil {
			return fmt.Errorf("failed to build resolver: %w", err)
		}
		duplicates, err := resolver.Sweep(ctx)
		if err != nil {
			return fmt.Errorf("duplicate sweep failed: %w", err)
		}
		fmt.Printf("Marked %d listings as duplicates\n", duplicates)
	}

	if c.Bool("maintain-count") {
		removed, err := maintainer.MaintainListingCount(ctx)
		if err != nil {
			return fmt.Errorf("failed to maintain listing count: %w", err)
		}
		fmt.Printf("Expired %d listings over the size limit\n", removed)
	}

	return nil
}

func searchCommand(c *cli.Context) error {
	ctx := context.Background()

	query := c.String("query")
	skills := c.String("skills")
	company := c.String("company")
	field := c.String("field")
	similarTo := c.Uint64("similar-to")
	clusterID := c.Uint64("cluster")

	modes := 0
	for _, set := range []bool{
		query != "",
		skills != "",
		company != "",
		field != "",
		similarTo != 0,
		clusterID != 0,
	} {
		if set {
			modes++
		}
	}
	if modes != 1 {
		return fmt.Errorf("exactly one of --query, --skills, --company, --field, --similar-to, --cluster is required")
	}
	if company != "" && c.String("role") == "" {
		return fmt.Errorf("--company requires --role")
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	var searchOpts []search.Option
	if threshold := c.Float64("threshold"); threshold > 0 {
		searchOpts = append(searchOpts, search.WithThreshold(float32(threshold)))
	}
	searcher, err := db.NewSearcher(searchOpts...)
	if err != nil {
		return fmt.Errorf("failed to build searcher: %w", err)
	}

	limit := c.Int("limit")
	var (
		results   []*core.SearchResult
		queryInfo string
	)
	switch {
	case query != "":
		queryInfo = fmt.Sprintf("query %q", query)
		results, err = searcher.Search(ctx, query, limit)
	case skills != "":
		list := splitSkills(skills)
		queryInfo = fmt.Sprintf("skills %s", strings.Join(list, ", "))
		results, err = searcher.SearchBySkills(ctx, list, limit)
	case company != "":
		role := c.String("role")
		queryInfo = fmt.Sprintf("%s at %s", role, company)
		results, err = searcher.SearchByCompany(ctx, company, role, limit)
	case field != "":
		queryInfo = fmt.Sprintf("field %s", field)
		results, err = searcher.SearchByField(ctx, field, limit)
	case similarTo != 0:
		queryInfo = fmt.Sprintf("similar to listing %d", similarTo)
		results, err = searcher.FindSimilar(ctx, core.ID(similarTo), limit)
	default:
		queryInfo = fmt.Sprintf("cluster %d", clusterID)
		results, err = searcher.ClusterListings(ctx, core.ID(clusterID), limit)
	}
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	return printResults(results, c.String("output"), queryInfo)
}

func splitSkills(s string) []string {
	var skills []string
	for _, skill := range strings.Split(s, ",") {
		if skill = strings.TrimSpace(skill); skill != "" {
			skills = append(skills, skill)
		}
	}
	return skills
}

func clustersCommand(c *cli.Context) error {
	ctx := context.Background()

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	if clusterID := c.Uint64("summary"); clusterID != 0 {
		return printClusterSummary(ctx, db, core.ID(clusterID), c.String("output"))
	}

	clusters, err := db.ClusterRepository().ListClusters(ctx)
	if err != nil {
		return fmt.Errorf("failed to list clusters: %w", err)
	}

	if c.String("output") == "json" {
		return printJSON(clusters)
	}

	if len(clusters) == 0 {
		fmt.Println("No clusters found.")
		return nil
	}
	fmt.Printf("Found %d clusters:\n\n", len(clusters))
	for _, cluster := range clusters {
		fmt.Printf("#%d %s (%d listings)\n", cluster.Id, cluster.Name, cluster.Size)
		if cluster.Metadata.DominantField != "" {
			fmt.Printf("   Field: %s\n", cluster.Metadata.DominantField)
		}
		if len(cluster.Metadata.Companies) > 0 {
			fmt.Printf("   Companies: %s\n", strings.Join(cluster.Metadata.Companies, ", "))
		}
		if len(cluster.Metadata.TopSkills) > 0 {
			fmt.Printf("   Skills: %s\n", strings.Join(cluster.Metadata.TopSkills, ", "))
		}
		fmt.Println()
	}
	return nil
}

func printClusterSummary(ctx context.Context, db *joblens.Database, clusterID core.ID, output string) error {
	summary, err := db.ClusterRepository().GetSummary(ctx, clusterID)
	if err != nil {
		return fmt.Errorf("failed to get cluster summary: %w", err)
	}

	if output == "json" {
		return printJSON(summary)
	}

	fmt.Printf("\n%s\n", summary.Name)
	fmt.Println(strings.Repeat("=", 80))
	fmt.Printf("Based on %d of %d listings\n\n", summary.SampleSize, summary.TotalListings)
	fmt.Println(summary.Summary)
	return nil
}

func processCommand(c *cli.Context) error {
	ctx := context.Background()

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	var procOpts []ingestion.Option
	if size := c.Int("pool-size"); size > 0 {
		procOpts = append(procOpts, ingestion.WithPoolSize(size))
	}
	processor, err := db.NewProcessor(procOpts...)
	if err != nil {
		return fmt.Errorf("failed to build processor: %w", err)
	}
	defer processor.Release()

	result, err := processor.CollectAndProcess(ctx, fileCollectors(c.StringSlice("input"))...)
	if err != nil {
		return fmt.Errorf("processing failed: %w", err)
	}

	fmt.Printf("Collected: %d\n", result.Collected)
	fmt.Printf("Processed: %d\n", result.Processed)
	fmt.Printf("Succeeded: %d\n", result.Succeeded)
	fmt.Printf("Skipped:   %d\n", result.Skipped)
	fmt.Printf("Failed:    %d\n", result.Failed)
	return nil
}

func statsCommand(c *cli.Context) error {
	ctx := context.Background()

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	maintainer, processor, err := db.NewMaintainer(lifecycle.DefaultConfig())
	if err != nil {
		return fmt.Errorf("failed to build maintainer: %w", err)
	}
	defer processor.Release()

	stats, err := maintainer.Stats(ctx)
	if err != nil {
		return fmt.Errorf("failed to gather stats: %w", err)
	}

	fields, err := db.ListingRepository().CountByField(ctx)
	if err != nil {
		return fmt.Errorf("failed to count listings by field: %w", err)
	}

	if c.String("output") == "json" {
		return printJSON(map[string]any{
			"stats":  stats,
			"fields": fields,
		})
	}

	fmt.Println("Database Statistics")
	fmt.Println(strings.Repeat("=", 80))
	fmt.Printf("Total listings:     %d\n", stats.TotalListings)
	fmt.Printf("Active listings:    %d\n", stats.ActiveListings)
	fmt.Printf("Expired listings:   %d\n", stats.ExpiredListings)
	fmt.Printf("Duplicate listings: %d\n", stats.DuplicateListings)
	fmt.Printf("Clusters:           %d\n", stats.Clusters)
	if !stats.OldestListing.IsZero() {
		fmt.Printf("Oldest listing:     %s\n", stats.OldestListing.Format("2006-01-02"))
		fmt.Printf("Newest listing:     %s\n", stats.NewestListing.Format("2006-01-02"))
	}

	if len(fields) > 0 {
		fmt.Println("\nActive listings by field:")
		for field, count := range fields {
			fmt.Printf("  %-30s %d\n", field, count)
		}
	}

	report, err := db.ReportRepository().GetLatestReport(ctx)
	if err == nil && report != nil {
		fmt.Println("\nLatest update report:")
		fmt.Printf("  Run at:     %s\n", report.UpdateTime.Format("2006-01-02 15:04:05"))
		fmt.Printf("  Collected:  %d\n", report.CollectedCount)
		fmt.Printf("  Processed:  %d\n", report.ProcessedCount)
		fmt.Printf("  Expired:    %d\n", report.ExpiredCount)
		fmt.Printf("  Duplicates: %d\n", report.DuplicateCount)
		fmt.Printf("  Clusters:   %d\n", report.ClusterCount)
		if report.Error != "" {
			fmt.Printf("  Error:      %s\n", report.Error)
		}
	}
	return nil
}

func printResults(results []*core.SearchResult, output, queryInfo string) error {
	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	if output == "json" {
		type jsonResult struct {
			Id         core.ID  `json:"id"`
			URL        string   `json:"url"`
			Source     string   `json:"source"`
			Title      string   `json:"title"`
			Company    string   `json:"company"`
			Location   string   `json:"location"`
			Field      string   `json:"field"`
			Skills     []string `json:"skills"`
			Similarity float32  `json:"similarity"`
		}
		out := struct {
			Query   string       `json:"query"`
			Results []jsonResult `json:"results"`
		}{Query: queryInfo}
		for _, r := range results {
			out.Results = append(out.Results, jsonResult{
				Id:         r.Listing.Id,
				URL:        r.Listing.URL,
				Source:     r.Listing.Source,
				Title:      r.Listing.Title,
				Company:    r.Listing.Company,
				Location:   r.Listing.Location,
				Field:      r.Listing.Field,
				Skills:     r.Listing.Skills,
				Similarity: r.Score,
			})
		}
		return printJSON(out)
	}

	fmt.Printf("\nSearch Results: %s\n", queryInfo)
	fmt.Printf("Found %d matches:\n\n", len(results))
	for i, r := range results {
		fmt.Printf("#%d %s\n", i+1, formatListing(r.Listing, r.Score))
	}
	return nil
}

func formatListing(l *core.Listing, score float32) string {
	title := l.Title
	if title == "" {
		title = "No Title"
	}
	company := l.Company
	if company == "" {
		company = "Unknown Company"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n%s - %s (Similarity: %.2f)\n", title, company, score)
	b.WriteString(strings.Repeat("=", 80) + "\n")
	if l.Field != "" {
		fmt.Fprintf(&b, "Field: %s\n", l.Field)
	}
	if len(l.Skills) > 0 {
		fmt.Fprintf(&b, "Skills: %s\n", strings.Join(l.Skills, ", "))
	}
	if l.URL != "" {
		fmt.Fprintf(&b, "URL: %s\n", l.URL)
	}
	return b.String()
}

func printReport(report *core.UpdateReport, output string) error {
	if output == "json" {
		return printJSON(report)
	}

	fmt.Println("Daily Update Report")
	fmt.Println(strings.Repeat("=", 80))
	fmt.Printf("Run at:      %s\n", report.UpdateTime.Format("2006-01-02 15:04:05"))
	fmt.Printf("Expired:     %d\n", report.ExpiredCount)
	fmt.Printf("Duplicates:  %d\n", report.DuplicateCount)
	fmt.Printf("Collected:   %d\n", report.CollectedCount)
	fmt.Printf("Processed:   %d\n", report.ProcessedCount)
	fmt.Printf("Clusters:    %d\n", report.ClusterCount)
	fmt.Printf("Summaries:   %d\n", report.SummaryCount)
	fmt.Printf("Removed:     %d\n", report.RemovedCount)
	fmt.Printf("Active:      %d\n", report.ActiveListings)
	if report.Error != "" {
		fmt.Printf("Error:       %s\n", report.Error)
	}
	return nil
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
