package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const threeRows = `survived,pclass,sex,age,fare,embarked,class,who,adult_male,deck,embark_town,alive,alone
0,3,male,22.0,7.25,S,Third,man,True,,Southampton,no,False
1,1,female,38.0,71.2833,C,First,woman,False,C,Cherbourg,yes,False
1,3,female,,7.925,S,Third,woman,False,,Southampton,yes,True
`

func serveCSV(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchWritesValidatedTable(t *testing.T) {
	srv := serveCSV(t, http.StatusOK, threeRows)
	out := filepath.Join(t.TempDir(), "data", "titanic.csv")

	summary, err := fetch(context.Background(), srv.Client(), srv.URL, out, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Rows)
	assert.Equal(t, 1, summary.MissingAge)

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, threeRows, string(got))
}

func TestFetchKeepsExistingFileOnBadDownload(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantRows int
		errText  string
	}{
		{name: "http error", status: http.StatusNotFound, body: "404: Not Found", wantRows: 3, errText: "status 404"},
		{name: "not a passenger table", status: http.StatusOK, body: "a,b\n1,2\n", wantRows: 3, errText: "validate download"},
		{name: "truncated", status: http.StatusOK, body: threeRows, wantRows: 891, errText: "got 3 rows, want 891"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := serveCSV(t, tt.status, tt.body)
			out := filepath.Join(t.TempDir(), "titanic.csv")
			require.NoError(t, os.WriteFile(out, []byte("previous"), 0644))

			_, err := fetch(context.Background(), srv.Client(), srv.URL, out, tt.wantRows)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errText)

			got, err := os.ReadFile(out)
			require.NoError(t, err)
			assert.Equal(t, "previous", string(got))
			_, err = os.Stat(out + ".tmp")
			assert.ErrorIs(t, err, os.ErrNotExist)
		})
	}
}
