package cli_test

import (
	"bytes"
	"context"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/UnknownOlympus/staffdesk/internal/auth"
	"github.com/UnknownOlympus/staffdesk/internal/cli"
	"github.com/UnknownOlympus/staffdesk/internal/metrics"
	"github.com/UnknownOlympus/staffdesk/internal/mockapi"
	"github.com/UnknownOlympus/staffdesk/internal/models"
	"github.com/UnknownOlympus/staffdesk/internal/repository"
	"github.com/UnknownOlympus/staffdesk/internal/validation"
)

// setupEnv starts a mock API and points the CLI at it with an isolated home.
// It returns the API base URL.
func setupEnv(t *testing.T) string {
	t.Helper()

	mem := repository.NewMemory()
	_, err := mem.CreateUser(context.Background(),
		models.User{Email: "admin@example.com", Name: "Admin", Password: "admin123"})
	require.NoError(t, err)

	api := mockapi.New(slog.New(slog.DiscardHandler), mem, metrics.NewMetrics(prometheus.NewRegistry()), "*")
	srv := httptest.NewServer(adaptor.FiberApp(api.App()))
	t.Cleanup(srv.Close)

	home := t.TempDir()
	t.Chdir(home)
	t.Setenv("HOME", home)
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("STAFFDESK_API_URL", srv.URL)

	return srv.URL
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	root := cli.NewRootCmd(strings.NewReader(stdin), &out, &errOut)
	root.SetArgs(args)

	err := root.ExecuteContext(t.Context())

	return out.String(), err
}

func TestCLI_RequiresLogin(t *testing.T) {
	setupEnv(t)

	_, err := execute(t, "", "whoami")
	require.ErrorContains(t, err, "not signed in")

	_, err = execute(t, "", "employees", "list")
	require.ErrorContains(t, err, "not signed in")
}

func TestCLI_LoginRejected(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
	}{
		{name: "wrong password", email: "admin@example.com", password: "wrong"},
		{name: "email with surrounding spaces", email: "  admin@example.com  ", password: "admin123"},
		{name: "email in other case", email: "Admin@Example.com", password: "admin123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupEnv(t)

			_, err := execute(t, "", "login", "--email", tt.email, "--password", tt.password)
			require.ErrorIs(t, err, auth.ErrInvalidCredentials)

			_, err = execute(t, "", "whoami")
			require.ErrorContains(t, err, "not signed in")
		})
	}
}

func TestCLI_EmployeeLifecycle(t *testing.T) {
	apiURL := setupEnv(t)

	out, err := execute(t, "admin123\n", "login", "--email", "admin@example.com")
	require.NoError(t, err)
	assert.Contains(t, out, "Signed in as Admin <admin@example.com>")

	out, err = execute(t, "", "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "admin@example.com")
	assert.Contains(t, out, "api "+apiURL)

	out, err = execute(t, "", "employees", "add",
		"--name", "Ada", "--email", "ada@example.com", "--position", "Engineer", "--salary", "100")
	require.NoError(t, err)
	assert.Contains(t, out, "Added employee #1 Ada")

	_, err = execute(t, "", "employees", "add",
		"--name", "Bob", "--email", "bob@example.com", "--position", "QA", "--salary", "50")
	require.NoError(t, err)

	_, err = execute(t, "", "employees", "add", "--name", "Nope", "--email", "broken")
	var verrs validation.Errors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, []string{"email", "position", "salary"}, verrs.Fields())

	out, err = execute(t, "", "employees", "list", "--search", "ENGINEER")
	require.NoError(t, err)
	assert.Contains(t, out, "ada@example.com")
	assert.NotContains(t, out, "bob@example.com")
	assert.Contains(t, out, "1 of 2 employees")

	out, err = execute(t, "", "employees", "update", "1", "--position", "CTO")
	require.NoError(t, err)
	assert.Contains(t, out, "Updated employee #1 Ada")

	out, err = execute(t, "", "employees", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "CTO")
	assert.Contains(t, out, "100.00", "omitted flags keep their value")

	out, err = execute(t, "n\n", "employees", "delete", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Are you sure you want to delete this employee?")
	assert.Contains(t, out, "Cancelled")

	out, err = execute(t, "y\n", "employees", "delete", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted employee #2")

	_, err = execute(t, "", "employees", "delete", "2", "--yes")
	require.ErrorContains(t, err, "Employee not found")

	_, err = execute(t, "", "employees", "update", "abc")
	require.ErrorContains(t, err, "employee id must be a positive number")

	out, err = execute(t, "", "logout")
	require.NoError(t, err)
	assert.Contains(t, out, "Signed out")

	_, err = execute(t, "", "whoami")
	require.ErrorContains(t, err, "not signed in")
}

func TestCLI_SeedNeedsPostgres(t *testing.T) {
	setupEnv(t)

	_, err := execute(t, "", "mockapi", "seed")

	require.ErrorContains(t, err, "memory storage")
}

func TestCLI_ServeRejectsNegativeSeed(t *testing.T) {
	setupEnv(t)

	_, err := execute(t, "", "mockapi", "serve", "--seed", "-1")

	require.ErrorIs(t, err, mockapi.ErrNegativeCount)
}
