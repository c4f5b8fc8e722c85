package referencelist_test

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/kyb-service/internal/domain/service"
	"github.com/bibbank/kyb-service/internal/domain/valueobject"
	"github.com/bibbank/kyb-service/internal/infrastructure/referencelist"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

var _ service.ReferenceListSource = (*referencelist.Lists)(nil)

func names(entries []valueobject.ReferenceEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Name())
	}
	return out
}

func TestNewDefault(t *testing.T) {
	l, err := referencelist.NewDefault(discard)
	require.NoError(t, err)

	sanctions := l.Entries(valueobject.ScreeningTypeSanctions)
	assert.Equal(t, []string{
		"Shell Corp Ltd",
		"Suspicious Trading Co",
		"Blacklisted Enterprises",
		"Fraudulent Services Inc",
		"Money Laundering Network",
		"Terrorist Funding Corp",
	}, names(sanctions))
	assert.Equal(t, "OFAC SDN", sanctions[0].Source())

	pep := l.Entries(valueobject.ScreeningTypePEP)
	assert.Equal(t, []string{"John Politician", "Maria Governor", "Robert Senator"}, names(pep))
	assert.Equal(t, "Senator", pep[2].Source())
	assert.Equal(t, "SG", pep[2].Country())

	s, p := l.Counts()
	assert.Equal(t, 6, s)
	assert.Equal(t, 3, p)
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name          string
		path          string
		wantErr       bool
		wantSanctions []string
	}{
		{name: "file", path: "testdata/lists.yaml", wantSanctions: []string{"Northwind Smuggling Ltd"}},
		{name: "empty path uses defaults", path: "", wantSanctions: []string{
			"Shell Corp Ltd", "Suspicious Trading Co", "Blacklisted Enterprises",
			"Fraudulent Services Inc", "Money Laundering Network", "Terrorist Funding Corp",
		}},
		{name: "missing file", path: "testdata/missing.yaml", wantErr: true},
		{name: "entry without name", path: "testdata/invalid.yaml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := referencelist.Load(tt.path, discard)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSanctions, names(l.Entries(valueobject.ScreeningTypeSanctions)))
		})
	}
}

func TestLists_ScreenerSeesLoadedEntries(t *testing.T) {
	l, err := referencelist.Load("testdata/lists.yaml", discard)
	require.NoError(t, err)

	m, err := service.NewScreener(l).Screen("Dewi Minister", valueobject.ScreeningTypePEP)
	require.NoError(t, err)
	assert.Equal(t, valueobject.ScreeningMatch, m.Status)
	assert.Equal(t, "Minister of Trade", m.Entry.Source())
}

func writeLists(t *testing.T, path, sanctionName string) {
	t.Helper()
	body := "sanctions:\n  - name: " + sanctionName + "\n    list: OFAC SDN\npep: []\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
}

func TestLists_ReloadKeepsPreviousOnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lists.yaml")
	writeLists(t, path, "First Entity")

	l, err := referencelist.Load(path, discard)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("sanctions: [\n"), 0o600))
	assert.Error(t, l.Reload())
	assert.Equal(t, []string{"First Entity"}, names(l.Entries(valueobject.ScreeningTypeSanctions)))
}

func TestLists_WatchReloadsOnChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lists.yaml")
	writeLists(t, path, "First Entity")

	l, err := referencelist.Load(path, discard)
	require.NoError(t, err)

	reloaded := make(chan int, 8)
	l.OnChange(func(sanctions, _ int) { reloaded <- sanctions })

	stop, err := l.Watch()
	require.NoError(t, err)
	defer stop()

	writeLists(t, path, "Second Entity")

	assert.Eventually(t, func() bool {
		got := names(l.Entries(valueobject.ScreeningTypeSanctions))
		return len(got) == 1 && got[0] == "Second Entity"
	}, 5*time.Second, 20*time.Millisecond)
	assert.NotEmpty(t, reloaded, "OnChange callbacks run on reload")
}
