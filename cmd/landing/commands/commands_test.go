package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runRoot(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	t.Setenv("EMAIL_FROM", "web@j2systems.ec")
	t.Setenv("EMAIL_TO", "ops@j2systems.ec")
	t.Setenv("LOG_LEVEL", "error")

	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRootRegistersCommands(t *testing.T) {
	root := newRootCmd()

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"serve", "preview", "mail-relay", "validate-content"})
}

func TestPreview_PrintsNotification(t *testing.T) {
	out, _, err := runRoot(t, "preview",
		"--name", "Ana Torres",
		"--email", "ana@example.com",
		"--message", "We need our WMS talking to the ERP.",
	)
	require.NoError(t, err)

	assert.Contains(t, out, "To: ops@j2systems.ec")
	assert.Contains(t, out, "Reply-To: ana@example.com")
	assert.Contains(t, out, "Subject: New contact: Ana Torres")
	assert.Contains(t, out, "not specified")
}

func TestPreview_Raw(t *testing.T) {
	out, _, err := runRoot(t, "preview", "--raw",
		"--name", "Ana Torres",
		"--email", "ana@example.com",
		"--company", "Acme Logistics",
		"--message", "We need our WMS talking to the ERP.",
	)
	require.NoError(t, err)

	assert.Contains(t, out, "Content-Transfer-Encoding: quoted-printable\r\n")
	assert.Contains(t, out, "Reply-To: <ana@example.com>\r\n")
	assert.Contains(t, out, "Subject: New contact: Ana Torres\r\n")
}

func TestPreview_InvalidInput(t *testing.T) {
	out, stderr, err := runRoot(t, "preview",
		"--name", "Ana",
		"--email", "not-an-email",
		"--message", "short",
	)
	require.Error(t, err)

	assert.Empty(t, out)
	assert.Contains(t, stderr, "email: must be a valid email address")
	assert.Contains(t, stderr, "message: must be at least 10 characters")
}

func TestServe_RejectsIncompleteConfig(t *testing.T) {
	t.Setenv("MAIL_TRANSPORT", "smtp")
	t.Setenv("SMTP_USERNAME", "")
	t.Setenv("SMTP_PASSWORD", "")
	t.Setenv("GMAIL_USER", "")
	t.Setenv("GMAIL_PASS", "")

	_, _, err := runRoot(t, "serve")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SMTP_USERNAME")
}

func TestValidateContent(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.yaml")
	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(good, []byte("company:\n  name: J2Systems\nservices:\n  - title: ERP\n"), 0o644))
	require.NoError(t, os.WriteFile(bad, []byte("services: []\n"), 0o644))

	out, _, err := runRoot(t, "validate-content", good)
	require.NoError(t, err)
	assert.Contains(t, out, "ok   "+good+" (1 services, 0 case studies)")

	out, _, err = runRoot(t, "validate-content", good, bad, filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, out, "FAIL "+bad+": content: company.name is required")
	assert.Contains(t, out, "FAIL "+filepath.Join(dir, "missing.yaml"))
}
