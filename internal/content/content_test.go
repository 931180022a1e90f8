package content

import (
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	site, err := Default()
	require.NoError(t, err)

	assert.Equal(t, "J2Systems", site.Company.Name)
	assert.Len(t, site.Services, 6)
	assert.Len(t, site.CaseStudies, 4)
	require.Len(t, site.Process, 4)
	assert.Equal(t, "01", site.Process[0].Number)
	assert.Equal(t, "04", site.Process[3].Number)
	assert.Equal(t, 30, site.Schedule.Minutes)
}

func TestLoad_EmptyPathUsesDefault(t *testing.T) {
	site, err := Load("")
	require.NoError(t, err)

	def, err := Default()
	require.NoError(t, err)
	assert.Equal(t, def, site)
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.yaml")
	require.NoError(t, os.WriteFile(path, []byte("company:\n  name: Acme\nprocess:\n  - title: Only step\n"), 0o644))

	site, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Acme", site.Company.Name)
	assert.Equal(t, "01", site.Process[0].Number)
	assert.Equal(t, 60, site.Schedule.Minutes, "defaults to an hour")
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Parse([]byte("services: [oops"))
	assert.Error(t, err)

	_, err = Parse([]byte("services: []"))
	assert.ErrorContains(t, err, "company.name")
}

func TestCalendarLink(t *testing.T) {
	link := CalendarLink("Llamada con J2Systems", "Integración & ERP", 30)

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "calendar.google.com", u.Host)
	assert.Equal(t, "TEMPLATE", u.Query().Get("action"))
	assert.Equal(t, "Llamada con J2Systems", u.Query().Get("text"))
	assert.Equal(t, "Integración & ERP", u.Query().Get("details"))
	assert.Equal(t, "30", u.Query().Get("duration"))

	u, _ = url.Parse(CalendarLink("x", "", 0))
	assert.Equal(t, "60", u.Query().Get("duration"))
}
