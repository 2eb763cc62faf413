// Command fetchdata downloads the full seaborn titanic table so it can be embedded as
// the default dataset. It is run by `go generate ./dataset`.
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"

	"github/itish2003/titanic/dataset"
)

const defaultURL = "https://raw.githubusercontent.com/mwaskom/seaborn-data/master/titanic.csv"

func main() {
	url := flag.String("url", defaultURL, "CSV to download")
	out := flag.String("out", "data/titanic.csv", "destination file")
	rows := flag.Int("rows", 891, "expected passenger rows, 0 to skip the check")
	timeout := flag.Duration("timeout", 30*time.Second, "download timeout")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	summary, err := fetch(ctx, http.DefaultClient, *url, *out, *rows)
	if err != nil {
		color.Red("Failed to fetch dataset: %v", err)
		os.Exit(1)
	}
	color.Green("Wrote %s: %d rows, %d without age", *out, summary.Rows, summary.MissingAge)
}

// fetch downloads url, checks it parses as a passenger table with the expected
// number of rows, and only then replaces out.
func fetch(ctx context.Context, client *http.Client, url, out string, wantRows int) (dataset.Summary, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return dataset.Summary{}, fmt.Errorf("build request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return dataset.Summary{}, fmt.Errorf("download %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		x, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return dataset.Summary{}, fmt.Errorf("download %s: status %d: %s", url, resp.StatusCode, strings.TrimSpace(string(x)))
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return dataset.Summary{}, fmt.Errorf("read body: %w", err)
	}

	ds, err := dataset.LoadReader(bytes.NewReader(raw))
	if err != nil {
		return dataset.Summary{}, fmt.Errorf("validate download: %w", err)
	}
	summary := ds.Summary()
	if wantRows > 0 && summary.Rows != wantRows {
		return dataset.Summary{}, fmt.Errorf("validate download: got %d rows, want %d", summary.Rows, wantRows)
	}

	if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		return dataset.Summary{}, fmt.Errorf("create %s: %w", filepath.Dir(out), err)
	}
	tmp := out + ".tmp"
	if err := os.WriteFile(tmp, raw, 0644); err != nil {
		return dataset.Summary{}, fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, out); err != nil {
		_ = os.Remove(tmp)
		return dataset.Summary{}, fmt.Errorf("rename %s: %w", tmp, err)
	}
	return summary, nil
}
