package services

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github/itish2003/titanic/dataset"
	"github/itish2003/titanic/logger"
)

// Ten rows with hand-checked aggregates:
// 5 male / 10, mean fare 27.02082, Southampton 7 / Cherbourg 2 / Queenstown 1,
// survival 50%, class 1: 2/3, class 2: 1/1, class 3: 2/6, female 5/5, male 0/5,
// one null age.
const fixtureCSV = `survived,pclass,sex,age,fare,embark_town
0,3,male,22,7.25,Southampton
1,1,female,38,71.2833,Cherbourg
1,3,female,26,7.925,Southampton
1,1,female,35,53.1,Southampton
0,3,male,35,8.05,Southampton
0,3,male,,8.4583,Queenstown
0,1,male,54,51.8625,Southampton
0,3,male,2,21.075,Southampton
1,3,female,27,11.1333,Southampton
1,2,female,14,30.0708,Cherbourg
`

func loadFixture(t *testing.T, csv string) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.LoadReader(strings.NewReader(csv))
	require.NoError(t, err)
	return ds
}

func newTestDispatcher() *Dispatcher {
	return NewDispatcher(NewChartCache(time.Minute), logger.NewNop())
}

// parseMapping turns "prefix{'a': 1, 'b': 2}" into a map so tests never depend on entry order.
func parseMapping(t *testing.T, text, prefix string) map[string]string {
	t.Helper()
	require.True(t, strings.HasPrefix(text, prefix), "text %q lacks prefix %q", text, prefix)

	body := strings.TrimPrefix(text, prefix)
	require.True(t, strings.HasPrefix(body, "{") && strings.HasSuffix(body, "}"), "not a mapping: %q", body)
	body = body[1 : len(body)-1]

	out := make(map[string]string)
	if body == "" {
		return out
	}
	for _, part := range strings.Split(body, ", ") {
		kv := strings.SplitN(part, ": ", 2)
		require.Len(t, kv, 2, "bad entry %q", part)
		out[strings.Trim(kv[0], "'")] = kv[1]
	}
	return out
}

func loadBundled() (*dataset.Dataset, error) {
	return dataset.Load("")
}

func rows(ds *dataset.Dataset) []dataset.Passenger {
	var out []dataset.Passenger
	ds.Each(func(p dataset.Passenger) {
		out = append(out, p)
	})
	return out
}
