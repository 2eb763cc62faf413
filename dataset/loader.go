package dataset

import (
	"bytes"
	"embed"
	"encoding/csv"
	"fmt"
	"errors"
	"io"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"
)

//go:generate go run ../cmd/fetchdata -out data/titanic.csv

//go:embed data/*.csv
var bundled embed.FS

const (
	// fullFile is the 891-row seaborn table; it is only present after `go generate ./dataset`.
	fullFile   = "data/titanic.csv"
	sampleFile = "data/titanic_sample.csv"
)

const (
	colSex        = "sex"
	colAge        = "age"
	colFare       = "fare"
	colEmbarkTown = "embark_town"
	colSurvived   = "survived"
	colPclass     = "pclass"
)

var requiredColumns = []string{colSex, colAge, colFare, colEmbarkTown, colSurvived, colPclass}

// Load reads the passenger table from path. An empty path loads the bundled table:
// the full file when it was generated, otherwise the 30-row sample.
func Load(path string) (*Dataset, error) {
	if path == "" {
		return loadBundled(bundled)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset %s: %w", path, err)
	}
	defer f.Close()

	ds, err := LoadReader(f)
	if err != nil {
		return nil, fmt.Errorf("load dataset %s: %w", path, err)
	}
	ds.source = path
	return ds, nil
}

func loadBundled(fsys fs.FS) (*Dataset, error) {
	name := fullFile
	raw, err := fs.ReadFile(fsys, name)
	if errors.Is(err, fs.ErrNotExist) {
		name = sampleFile
		raw, err = fs.ReadFile(fsys, name)
	}
	if err != nil {
		return nil, fmt.Errorf("read bundled dataset: %w", err)
	}

	ds, err := LoadReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("load bundled dataset %s: %w", name, err)
	}
	ds.source = "bundled:" + name
	ds.sample = name == sampleFile
	return ds, nil
}

// LoadReader parses a CSV with a header row. Columns are matched by name, case-insensitively;
// extra columns are ignored.
func LoadReader(r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err == io.EOF {
		return nil, ErrEmptyDataset
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV headers: %w", err)
	}

	index := make(map[string]int, len(headers))
	columns := make([]string, len(headers))
	for i, h := range headers {
		key := strings.ToLower(strings.TrimSpace(h))
		columns[i] = key
		index[key] = i
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, col)
		}
	}

	var passengers []Passenger
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}

		p, err := parsePassenger(row, index)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		passengers = append(passengers, p)
	}

	if len(passengers) == 0 {
		return nil, ErrEmptyDataset
	}
	return newDataset(columns, passengers), nil
}

func parsePassenger(row []string, index map[string]int) (Passenger, error) {
	field := func(col string) string {
		return strings.TrimSpace(row[index[col]])
	}

	var p Passenger
	p.Sex = strings.ToLower(field(colSex))
	p.EmbarkTown = field(colEmbarkTown)

	if age, ok, err := parseOptionalFloat(field(colAge)); err != nil {
		return p, fmt.Errorf("age: %w", err)
	} else if ok {
		p.Age, p.HasAge = age, true
	}

	fare, err := strconv.ParseFloat(field(colFare), 64)
	if err != nil {
		return p, fmt.Errorf("fare: %w", err)
	}
	if fare < 0 || math.IsNaN(fare) {
		return p, fmt.Errorf("fare: negative or NaN value %q", field(colFare))
	}
	p.Fare = fare

	survived, err := strconv.ParseBool(field(colSurvived))
	if err != nil {
		return p, fmt.Errorf("survived: %w", err)
	}
	p.Survived = survived

	pclass, err := strconv.Atoi(field(colPclass))
	if err != nil {
		return p, fmt.Errorf("pclass: %w", err)
	}
	if pclass < 1 || pclass > 3 {
		return p, fmt.Errorf("pclass: %d is not 1, 2 or 3", pclass)
	}
	p.Pclass = pclass

	return p, nil
}

// parseOptionalFloat treats "", "NA" and "NaN" as null.
func parseOptionalFloat(s string) (float64, bool, error) {
	switch s {
	case "", "NA", "NaN", "nan":
		return 0, false, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false, err
	}
	if math.IsNaN(v) {
		return 0, false, nil
	}
	return v, true, nil
}
