package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	authadapters "messagely_backend/internal/feature/auth/adapters"
	authentity "messagely_backend/internal/feature/auth/domain/entity"
	authhandler "messagely_backend/internal/feature/auth/transport/handler"
	authusecase "messagely_backend/internal/feature/auth/usecase"
	messageadapters "messagely_backend/internal/feature/messages/adapters"
	messagehandler "messagely_backend/internal/feature/messages/transport/handler"
	messageusecase "messagely_backend/internal/feature/messages/usecase"
	useradapters "messagely_backend/internal/feature/users/adapters"
	userhandler "messagely_backend/internal/feature/users/transport/handler"
	userusecase "messagely_backend/internal/feature/users/usecase"
	jwtmw "messagely_backend/internal/platform/jwt"
)

const testSecret = "end-to-end-secret"

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// setupServer wires the full stack against an in-memory SQLite database,
// exactly as main does minus Redis.
func setupServer(t *testing.T) *gin.Engine {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&authentity.User{}, &messageadapters.MessageModel{}))

	userRepo := authadapters.NewUserMySQL(db)
	userReader := useradapters.NewUserReader(db)
	messageRepo := messageadapters.NewMessageMySQL(db)
	userDirectory := messageadapters.NewUserDirectory(db)

	tokens := jwtmw.NewGenerator(testSecret, time.Hour)

	authUC := authusecase.NewAuthUsecase(userRepo, tokens, nil, bcrypt.MinCost)
	userUC := userusecase.NewUserUsecase(userReader)
	messageUC := messageusecase.NewMessageUsecase(messageRepo, userDirectory)

	return NewRouter(
		authhandler.NewAuthHandler(authUC),
		userhandler.NewUserHandler(userUC),
		messagehandler.NewMessageHandler(messageUC),
		testSecret,
	)
}

func doJSON(t *testing.T, r *gin.Engine, method, target, token string, body gin.H) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func register(t *testing.T, r *gin.Engine, username string) {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/register", "", gin.H{
		"username":   username,
		"password":   "password123",
		"first_name": "First-" + username,
		"last_name":  "Last-" + username,
		"phone":      "+15550000000",
	})
	require.Equal(t, http.StatusCreated, w.Code, "register %s: %s", username, w.Body.String())
}

func login(t *testing.T, r *gin.Engine, username string) string {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/login", "", gin.H{
		"username": username,
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code, "login %s: %s", username, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

// TestEndToEnd_MessageLifecycle walks the whole flow: register two users,
// exchange a message, read it, mark it read, and verify every access rule on
// the way.
func TestEndToEnd_MessageLifecycle(t *testing.T) {
	r := setupServer(t)

	register(t, r, "alice")
	register(t, r, "bob")

	// Duplicate registration conflicts.
	w := doJSON(t, r, http.MethodPost, "/register", "", gin.H{
		"username":   "alice",
		"password":   "other",
		"first_name": "A",
		"last_name":  "B",
		"phone":      "+1",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	aliceToken := login(t, r, "alice")
	bobToken := login(t, r, "bob")

	// Unauthenticated requests are rejected.
	w = doJSON(t, r, http.MethodGet, "/users", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Any authenticated caller can list users and fetch profiles.
	w = doJSON(t, r, http.MethodGet, "/users", aliceToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"bob"`)
	assert.NotContains(t, w.Body.String(), "password")

	w = doJSON(t, r, http.MethodGet, "/users/bob", aliceToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/users/ghost", aliceToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Alice sends bob a message. The sender comes from her token.
	w = doJSON(t, r, http.MethodPost, "/messages", aliceToken, gin.H{"to_username": "bob", "body": "hi"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		Message struct {
			ID           uint       `json:"id"`
			FromUsername string     `json:"from_username"`
			ReadAt       *time.Time `json:"read_at"`
		} `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "alice", created.Message.FromUsername)
	assert.Nil(t, created.Message.ReadAt)

	msgPath := "/messages/" + strconv.FormatUint(uint64(created.Message.ID), 10)

	// Messaging a nonexistent user fails validation.
	w = doJSON(t, r, http.MethodPost, "/messages", aliceToken, gin.H{"to_username": "ghost", "body": "hi"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Bob's received list contains the unread message; alice may not read it.
	w = doJSON(t, r, http.MethodGet, "/users/bob/to", bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"body":"hi"`)
	assert.Contains(t, w.Body.String(), `"read_at":null`)
	assert.Contains(t, w.Body.String(), `"from_user"`)

	w = doJSON(t, r, http.MethodGet, "/users/bob/to", aliceToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Alice's sent list mirrors it; bob may not read hers.
	w = doJSON(t, r, http.MethodGet, "/users/alice/from", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"to_user"`)

	w = doJSON(t, r, http.MethodGet, "/users/alice/from", bobToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Bob, never alice, marks the message read.
	w = doJSON(t, r, http.MethodPost, msgPath+"/read", aliceToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, r, http.MethodPost, msgPath+"/read", bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var marked struct {
		Message struct {
			ReadAt *time.Time `json:"read_at"`
		} `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &marked))
	require.NotNil(t, marked.Message.ReadAt)
	firstReadAt := *marked.Message.ReadAt

	// Marking again is idempotent: same timestamp, no error.
	w = doJSON(t, r, http.MethodPost, msgPath+"/read", bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &marked))
	require.NotNil(t, marked.Message.ReadAt)
	assert.WithinDuration(t, firstReadAt, *marked.Message.ReadAt, time.Second)

	// The received list now reflects the read timestamp.
	w = doJSON(t, r, http.MethodGet, "/users/bob/to", bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), `"read_at":null`)

	// Both participants see the full message; a third party does not.
	register(t, r, "mallory")
	malloryToken := login(t, r, "mallory")

	w = doJSON(t, r, http.MethodGet, msgPath, aliceToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, r, http.MethodGet, msgPath, bobToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, r, http.MethodGet, msgPath, malloryToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, r, http.MethodGet, "/messages/999", aliceToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

}

// TestEndToEnd_LoginFailures verifies bad credentials yield a generic 401
// regardless of whether the username exists.
func TestEndToEnd_LoginFailures(t *testing.T) {
	r := setupServer(t)
	register(t, r, "alice")

	wrongPass := doJSON(t, r, http.MethodPost, "/login", "", gin.H{"username": "alice", "password": "wrong"})
	unknownUser := doJSON(t, r, http.MethodPost, "/login", "", gin.H{"username": "ghost", "password": "password123"})

	assert.Equal(t, http.StatusUnauthorized, wrongPass.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownUser.Code)
	assert.JSONEq(t, wrongPass.Body.String(), unknownUser.Body.String(),
		"failure responses must not reveal whether the user exists")
}

// TestEndToEnd_ExpiredToken verifies a token past its validity window is
// rejected like any invalid token.
func TestEndToEnd_ExpiredToken(t *testing.T) {
	r := setupServer(t)
	register(t, r, "alice")

	expired, err := jwtmw.NewGenerator(testSecret, -time.Minute).GenerateToken("alice")
	require.NoError(t, err)

	w := doJSON(t, r, http.MethodGet, "/users", expired, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
