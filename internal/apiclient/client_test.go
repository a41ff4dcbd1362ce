package apiclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Marga-Ghale/creativa-crm/internal/api"
	"github.com/Marga-Ghale/creativa-crm/internal/api/handlers"
	"github.com/Marga-Ghale/creativa-crm/internal/config"
	"github.com/Marga-Ghale/creativa-crm/internal/notification"
	"github.com/Marga-Ghale/creativa-crm/internal/repository/memory"
	"github.com/Marga-Ghale/creativa-crm/internal/service"
	"github.com/Marga-Ghale/creativa-crm/internal/socket"
	"github.com/Marga-Ghale/creativa-crm/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type env struct {
	server    *httptest.Server
	hub       *socket.Hub
	projectID string
}

func newEnv(t *testing.T) *env {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	cfg := &config.Config{JWTSecret: "client-test", JWTExpiryHours: 1, Environment: "test"}
	repos := memory.NewStore().Repositories()
	hub := socket.NewHub()
	go hub.Run(ctx)

	svcs := service.NewServices(&service.ServiceDeps{
		Config:      cfg,
		Repos:       repos,
		Notifier:    notification.NewService(repos.ProjectRepo, repos.LinkRepo, nil, false),
		Broadcaster: socket.NewBroadcaster(hub),
	})

	_, err := svcs.User.Create(ctx, "Ana", "ana@test.com", "Secret123!", types.RoleUser)
	require.NoError(t, err)
	client, err := svcs.Client.Create(ctx, service.ClientInput{Name: "Acme"})
	require.NoError(t, err)
	project, err := svcs.Project.Create(ctx, "seed", service.ProjectInput{
		ClientID: client.ID, Name: "Spot", Status: types.StatusLead,
	})
	require.NoError(t, err)

	router := api.NewRouter(api.RouterDeps{
		Handlers:    handlers.NewHandlers(svcs, handlers.NewHealthHandler("memory", false, false, hub.ConnectedClients)),
		AuthService: svcs.Auth,
		WebSocket:   socket.NewHandler(hub, cfg.JWTSecret, nil).HandleWebSocket,
	})
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &env{server: server, hub: hub, projectID: project.ID}
}

func TestLoginStoresToken(t *testing.T) {
	e := newEnv(t)
	c := NewClient(e.server.URL + "/")

	_, err := c.Login(context.Background(), "ana@test.com", "wrong")
	require.Error(t, err)
	assert.True(t, IsStatus(err, http.StatusUnauthorized))
	assert.Empty(t, c.Token())

	resp, err := c.Login(context.Background(), "ana@test.com", "Secret123!")
	require.NoError(t, err)
	assert.Equal(t, "Ana", resp.User.Name)
	assert.Equal(t, resp.Token, c.Token())
}

func TestListAndUpdate(t *testing.T) {
	e := newEnv(t)
	c := NewClient(e.server.URL)
	ctx := context.Background()

	_, err := c.ListProjects(ctx, "")
	assert.True(t, IsStatus(err, http.StatusUnauthorized))

	_, err = c.Login(ctx, "ana@test.com", "Secret123!")
	require.NoError(t, err)

	projects, err := c.ListProjects(ctx, "")
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "Acme", projects[0].Client.Name)

	updated, err := c.UpdateProjectStatus(ctx, e.projectID, types.StatusCotizacion)
	require.NoError(t, err)
	assert.Equal(t, types.StatusCotizacion, updated.Status)

	lead, err := c.ListProjects(ctx, types.StatusLead)
	require.NoError(t, err)
	assert.Empty(t, lead)

	_, err = c.UpdateProjectStatus(ctx, e.projectID, "Done")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "Error de validación", apiErr.Message)
}

func TestSubscribeReceivesBoardEvents(t *testing.T) {
	e := newEnv(t)
	c := NewClient(e.server.URL)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, err := c.Login(ctx, "ana@test.com", "Secret123!")
	require.NoError(t, err)

	events, err := c.Subscribe(ctx)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return e.hub.RoomSize(socket.RoomBoard) == 1 }, 2*time.Second, 10*time.Millisecond)

	_, err = c.UpdateProjectStatus(ctx, e.projectID, types.StatusEnProduccion)
	require.NoError(t, err)

	timeout := time.After(3 * time.Second)
	for {
		select {
		case ev, ok := <-events:
			require.True(t, ok, "stream closed early")
			if ev.Type != socket.MessageProjectStatusChanged {
				continue
			}
			assert.Equal(t, e.projectID, ev.Payload["projectId"])
			assert.Equal(t, "Lead", ev.Payload["oldStatus"])
			assert.Equal(t, "EnProduccion", ev.Payload["newStatus"])

			cancel()
			for range events {
			}
			return
		case <-timeout:
			t.Fatal("no status event received")
		}
	}
}

func TestSubscribeRejectsMissingToken(t *testing.T) {
	e := newEnv(t)
	c := NewClient(e.server.URL)

	_, err := c.Subscribe(context.Background())
	assert.Error(t, err)
}
