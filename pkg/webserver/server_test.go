package webserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brightline/portald/pkg/authorization"
	"github.com/brightline/portald/pkg/tiers"
	"github.com/brightline/portald/pkg/titles"
	"github.com/brightline/portald/pkg/workflows"
)

const testSecret = "test-secret"

func newTestServer(t *testing.T) (*Server, *authorization.TestFixture) {
	t.Helper()

	// The resolver and the workflow endpoints must answer from the same
	// role table
	positionRoles := map[string]workflows.PositionRole{
		"cpo@brightlineschools.org": {Role: workflows.RoleSuperAdmin, CanApprove: true},
	}

	fixture, err := authorization.NewTestFixture(authorization.TestOptions{
		Domain: "brightlineschools.org",
		Tiers: []tiers.Tier{
			{
				Name:    "network_admin",
				Members: []string{"cpo@brightlineschools.org"},
				Grants:  []tiers.Grant{{Dashboard: "team", Scope: tiers.TemplateUnrestricted}},
			},
		},
		TitleRules: []titles.Rule{
			{Pattern: "chief", Match: titles.MatchFragment, Dashboard: "compensation", Scope: titles.TemplateUnrestricted},
		},
		PositionRoles: positionRoles,
	})
	require.NoError(t, err)

	registry := workflows.NewRegistry(positionRoles, nil)

	server, err := New(&Config{
		ListenAddr:    "127.0.0.1",
		Port:          0,
		SessionSecret: testSecret,
	}, fixture.Resolver, registry)
	require.NoError(t, err)

	return server, fixture
}

func sessionToken(t *testing.T, email string) string {
	t.Helper()
	claims := sessionClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func doRequest(t *testing.T, server *Server, path, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := server.app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestHealthNeedsNoSession(t *testing.T) {
	server, _ := newTestServer(t)
	resp := doRequest(t, server, "/healthz", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAccessRequiresSession(t *testing.T) {
	server, _ := newTestServer(t)

	resp := doRequest(t, server, "/api/access/compensation", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = doRequest(t, server, "/api/access/compensation", "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAccessGranted(t *testing.T) {
	server, fixture := newTestServer(t)
	fixture.AddActiveStaff("cfo@brightlineschools.org", "Chief Financial Officer", "Network", "")

	resp := doRequest(t, server, "/api/access/compensation", sessionToken(t, "cfo@brightlineschools.org"))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body grantResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Granted)
	assert.Equal(t, "title_role", body.Source)
	assert.True(t, body.Scope.Unrestricted)
}

func TestAccessDeniedIs403(t *testing.T) {
	server, fixture := newTestServer(t)
	fixture.AddActiveStaff("jdoe@brightlineschools.org", "Teacher", "Network", "")

	resp := doRequest(t, server, "/api/access/compensation", sessionToken(t, "jdoe@brightlineschools.org"))
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	var body grantResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.False(t, body.Granted)
	assert.Equal(t, "none", body.Source)
}

func TestUnknownDashboardIs404(t *testing.T) {
	server, fixture := newTestServer(t)
	fixture.AddActiveStaff("jdoe@brightlineschools.org", "Teacher", "Network", "")

	resp := doRequest(t, server, "/api/access/no-such-dashboard", sessionToken(t, "jdoe@brightlineschools.org"))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestForeignDomainIs401(t *testing.T) {
	server, _ := newTestServer(t)
	resp := doRequest(t, server, "/api/access/compensation", sessionToken(t, "intruder@elsewhere.org"))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAccessAllListsEveryDashboard(t *testing.T) {
	server, fixture := newTestServer(t)
	fixture.AddActiveStaff("cpo@brightlineschools.org", "Chief People Officer", "Network", "")

	resp := doRequest(t, server, "/api/access", sessionToken(t, "cpo@brightlineschools.org"))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Dashboards []grantResponse `json:"dashboards"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Len(t, body.Dashboards, len(authorization.Dashboards()))

	granted := make(map[string]string)
	for _, grant := range body.Dashboards {
		if grant.Granted {
			granted[grant.Dashboard] = grant.Source
		}
	}
	assert.Equal(t, "named_tier", granted["team"])
	assert.Equal(t, "title_role", granted["compensation"])
	assert.Equal(t, "workflow_role", granted["position-control"])
}

func TestAccessAgreesWithWorkflowEndpoint(t *testing.T) {
	server, fixture := newTestServer(t)
	fixture.AddActiveStaff("cpo@brightlineschools.org", "Chief People Officer", "Network", "")
	fixture.AddActiveStaff("jdoe@brightlineschools.org", "Teacher", "Network", "")

	// Listed in the role table: both surfaces grant
	resp := doRequest(t, server, "/api/access/position-control", sessionToken(t, "cpo@brightlineschools.org"))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body grantResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Granted)
	assert.Equal(t, "workflow_role", body.Source)
	assert.Equal(t, workflows.RoleSuperAdmin, body.Label)

	resp = doRequest(t, server, "/api/workflows/position-control", sessionToken(t, "cpo@brightlineschools.org"))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Unlisted: both surfaces refuse
	resp = doRequest(t, server, "/api/access/position-control", sessionToken(t, "jdoe@brightlineschools.org"))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp = doRequest(t, server, "/api/workflows/position-control", sessionToken(t, "jdoe@brightlineschools.org"))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestWorkflowPermissions(t *testing.T) {
	server, fixture := newTestServer(t)
	fixture.AddActiveStaff("cpo@brightlineschools.org", "Chief People Officer", "Network", "")

	resp := doRequest(t, server, "/api/workflows/position-control", sessionToken(t, "cpo@brightlineschools.org"))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var perms workflows.PositionPermissions
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&perms))
	assert.Equal(t, workflows.RoleSuperAdmin, perms.Role)
	assert.True(t, perms.CanDelete)

	resp = doRequest(t, server, "/api/workflows/onboarding", sessionToken(t, "cpo@brightlineschools.org"))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
