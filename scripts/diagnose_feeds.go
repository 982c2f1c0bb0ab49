// Command diagnose_feeds probes every feed in the embedded catalog and
// reports which ones are broken and why: HTTP errors, wrong content type,
// parse failures, empty feeds, timeouts. Useful when curating the catalog.
//
// Usage:
//
//	go run ./scripts [-name "Feed Name"] [-timeout 15s] [-json]
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"cybernewshub/internal/feeds"
)

// FeedDiagnostic is the probe result for one feed.
type FeedDiagnostic struct {
	Name           string `json:"name"`
	URL            string `json:"url"`
	Status         string `json:"status"` // OK, HTTP_ERROR, PARSE_ERROR, EMPTY, TIMEOUT, ERROR
	HTTPCode       int    `json:"http_code,omitempty"`
	ItemCount      int    `json:"item_count"`
	LatestDate     string `json:"latest_date,omitempty"`
	ErrorMessage   string `json:"error_message,omitempty"`
	ResponseTimeMS int64  `json:"response_time_ms"`
}

func main() {
	nameFilter := flag.String("name", "", "probe only feeds whose name contains this string")
	timeout := flag.Duration("timeout", 15*time.Second, "per-feed HTTP timeout")
	asJSON := flag.Bool("json", false, "emit JSON instead of a text report")
	flag.Parse()

	catalog, err := feeds.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load catalog: %v\n", err)
		os.Exit(1)
	}

	var sources []feeds.Source
	for _, src := range catalog.All() {
		if *nameFilter == "" || strings.Contains(strings.ToLower(src.Name), strings.ToLower(*nameFilter)) {
			sources = append(sources, src)
		}
	}
	sort.Slice(sources, func(i, j int) bool { return sources[i].Name < sources[j].Name })

	client := &http.Client{Timeout: *timeout}
	results := make([]FeedDiagnostic, 0, len(sources))
	broken := 0
	for _, src := range sources {
		diag := probeFeed(client, src)
		results = append(results, diag)
		if diag.Status != "OK" {
			broken++
		}
		if !*asJSON {
			printResult(diag)
		}
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(results)
		return
	}

	fmt.Printf("\n%d feeds probed, %d broken\n", len(results), broken)
	if broken > 0 {
		os.Exit(1)
	}
}

func probeFeed(client *http.Client, src feeds.Source) FeedDiagnostic {
	diag := FeedDiagnostic{Name: src.Name, URL: src.URL}

	ctx, cancel := context.WithTimeout(context.Background(), client.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.URL, nil)
	if err != nil {
		diag.Status = "ERROR"
		diag.ErrorMessage = err.Error()
		return diag
	}
	// Some feed hosts reject default Go user agents.
	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36")
	req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/xml, text/xml, */*")

	start := time.Now()
	resp, err := client.Do(req)
	diag.ResponseTimeMS = time.Since(start).Milliseconds()
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			diag.Status = "TIMEOUT"
		} else {
			diag.Status = "ERROR"
		}
		diag.ErrorMessage = truncate(err.Error(), 120)
		return diag
	}
	defer resp.Body.Close()

	diag.HTTPCode = resp.StatusCode
	if resp.StatusCode != http.StatusOK {
		diag.Status = "HTTP_ERROR"
		diag.ErrorMessage = resp.Status
		return diag
	}

	contentType := strings.ToLower(resp.Header.Get("Content-Type"))
	if strings.Contains(contentType, "html") && !strings.Contains(contentType, "xml") {
		diag.Status = "PARSE_ERROR"
		diag.ErrorMessage = "got HTML instead of a feed: " + contentType
		return diag
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		diag.Status = "ERROR"
		diag.ErrorMessage = truncate(err.Error(), 120)
		return diag
	}

	feed, err := gofeed.NewParser().ParseString(string(body))
	if err != nil {
		diag.Status = "PARSE_ERROR"
		diag.ErrorMessage = truncate(err.Error(), 120)
		return diag
	}

	diag.ItemCount = len(feed.Items)
	if diag.ItemCount == 0 {
		diag.Status = "EMPTY"
		return diag
	}

	diag.Status = "OK"
	for _, item := range feed.Items {
		if item.PublishedParsed != nil {
			if diag.LatestDate == "" || item.PublishedParsed.Format(time.RFC3339) > diag.LatestDate {
				diag.LatestDate = item.PublishedParsed.Format(time.RFC3339)
			}
		}
	}
	return diag
}

func printResult(diag FeedDiagnostic) {
	mark := "ok"
	if diag.Status != "OK" {
		mark = "!!"
	}
	fmt.Printf("%s %-40s %-11s %4dms  %d items", mark, diag.Name, diag.Status, diag.ResponseTimeMS, diag.ItemCount)
	if diag.ErrorMessage != "" {
		fmt.Printf("  (%s)", diag.ErrorMessage)
	}
	fmt.Println()
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
