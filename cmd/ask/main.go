// Command ask answers questions about the passenger dataset from the terminal.
//
//	ask "What percentage of passengers were male?"
//	echo "show me a boxplot of fares" | ask -out charts
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"

	"github/itish2003/titanic/dataset"
	"github/itish2003/titanic/logger"
	"github/itish2003/titanic/services"
)

func main() {
	datasetPath := flag.String("dataset", os.Getenv("DATASET_PATH"), "CSV file in the titanic layout (default: bundled table)")
	outDir := flag.String("out", ".", "directory for chart PNGs")
	flag.Parse()

	ds, err := dataset.Load(*datasetPath)
	if err != nil {
		color.Red("Failed to load dataset: %v", err)
		os.Exit(1)
	}
	if ds.Summary().Sample {
		color.Yellow("Using the bundled %d-row sample; pass -dataset or set DATASET_PATH for the full table.", ds.Len())
	}

	writer, err := services.NewChartWriter(*outDir)
	if err != nil {
		color.Red("Failed to prepare output directory: %v", err)
		os.Exit(1)
	}
	dispatcher := services.NewDispatcher(services.NewChartCache(time.Hour), logger.NewNop())

	if flag.NArg() > 0 {
		if !ask(dispatcher, ds, strings.Join(flag.Args(), " "), writer) {
			os.Exit(1)
		}
		return
	}

	color.Cyan("Ask me anything about the Titanic dataset! (Ctrl-D to quit)")
	if err := askLines(os.Stdin, dispatcher, ds, writer); err != nil {
		color.Red("Failed to read input: %v", err)
		os.Exit(1)
	}
}

func askLines(r io.Reader, dispatcher *services.Dispatcher, ds *dataset.Dataset, writer *services.ChartWriter) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			continue
		}
		ask(dispatcher, ds, question, writer)
	}
	return scanner.Err()
}

func ask(dispatcher *services.Dispatcher, ds *dataset.Dataset, question string, writer *services.ChartWriter) bool {
	kind, answer, err := dispatcher.Dispatch(question, ds)
	if err != nil {
		color.Red("Error: %v", err)
		return false
	}
	if kind == services.KindUnknown {
		color.Yellow("%s", answer.Text)
		return true
	}

	color.Green("%s", answer.Text)
	if answer.HasImage() {
		path, err := writer.Write(kind, answer.Image)
		if err != nil {
			color.Red("Failed to write chart: %v", err)
			return false
		}
		fmt.Printf("Chart saved to %s\n", path)
	}
	return true
}
