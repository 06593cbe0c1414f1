package service

import (
	"context"
	"net/http"
	"strconv"
	"testing"
	"time"

	"photoai/internal/repository"
	"photoai/internal/serr"
	"photoai/internal/testutil"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	svix "github.com/svix/svix-webhooks/go"
)

const testSigningSecret = "whsec_MfKQ9r8GKYqrTwjUPD8ILPZIo2LaLaSw"

func signedHeaders(t *testing.T, payload []byte) http.Header {
	t.Helper()
	wh, err := svix.NewWebhook(testSigningSecret)
	require.NoError(t, err)
	now := time.Now()
	sig, err := wh.Sign("msg_1", now, payload)
	require.NoError(t, err)
	h := http.Header{}
	h.Set("svix-id", "msg_1")
	h.Set("svix-timestamp", strconv.FormatInt(now.Unix(), 10))
	h.Set("svix-signature", sig)
	return h
}

func newUserFixture(t *testing.T) (UserService, repository.UserRepository) {
	t.Helper()
	users := repository.NewUserRepo(testutil.NewDB(t))
	svc, err := NewUserService(testSigningSecret, users, zerolog.Nop())
	require.NoError(t, err)
	return svc, users
}

func TestParseClerkEvent(t *testing.T) {
	ev, err := ParseClerkEvent([]byte(`{"type":"user.created","data":{"id":"user_1","first_name":"Ada","last_name":null,"profile_image_url":"https://img/1","email_addresses":[{"email_address":"ada@example.com"},{"email_address":"other@example.com"}]}}`))
	require.NoError(t, err)
	up, ok := ev.(UserUpserted)
	require.True(t, ok)
	assert.Equal(t, "user_1", up.User.ID)
	assert.Equal(t, "Ada", up.User.Name)
	assert.Equal(t, "ada@example.com", up.User.Email)
	assert.Equal(t, "https://img/1", up.User.ProfilePicture)

	ev, err = ParseClerkEvent([]byte(`{"type":"user.deleted","data":{"id":"user_1","deleted":true}}`))
	require.NoError(t, err)
	assert.Equal(t, UserDeleted{UserID: "user_1"}, ev)

	ev, err = ParseClerkEvent([]byte(`{"type":"session.created","data":{}}`))
	require.NoError(t, err)
	assert.Equal(t, UnknownClerkEvent{Type: "session.created"}, ev)

	_, err = ParseClerkEvent([]byte(`{"type":"user.created","data":{}}`))
	assert.Error(t, err)
}

func TestHandleClerkWebhook_UpsertAndDelete(t *testing.T) {
	svc, users := newUserFixture(t)
	ctx := context.Background()

	created := []byte(`{"type":"user.created","data":{"id":"user_1","first_name":"Ada","last_name":"Lovelace","profile_image_url":"https://img/1","email_addresses":[{"email_address":"ada@example.com"}]}}`)
	require.NoError(t, svc.HandleClerkWebhook(ctx, created, signedHeaders(t, created)))

	u, err := users.GetByID(ctx, "user_1")
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", u.Name)
	assert.Equal(t, "ada@example.com", u.Email)

	updated := []byte(`{"type":"user.updated","data":{"id":"user_1","first_name":"Ada","last_name":"King","email_addresses":[{"email_address":"ada@king.example"}]}}`)
	require.NoError(t, svc.HandleClerkWebhook(ctx, updated, signedHeaders(t, updated)))
	u, err = users.GetByID(ctx, "user_1")
	require.NoError(t, err)
	assert.Equal(t, "Ada King", u.Name)
	assert.Equal(t, "ada@king.example", u.Email)

	deleted := []byte(`{"type":"user.deleted","data":{"id":"user_1","deleted":true}}`)
	require.NoError(t, svc.HandleClerkWebhook(ctx, deleted, signedHeaders(t, deleted)))
	_, err = users.GetByID(ctx, "user_1")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestHandleClerkWebhook_RejectsBadSignature(t *testing.T) {
	svc, users := newUserFixture(t)
	ctx := context.Background()

	payload := []byte(`{"type":"user.created","data":{"id":"user_1","email_addresses":[]}}`)
	headers := signedHeaders(t, payload)
	tampered := []byte(`{"type":"user.created","data":{"id":"user_2","email_addresses":[]}}`)

	err := svc.HandleClerkWebhook(ctx, tampered, headers)
	assert.Equal(t, http.StatusUnauthorized, serr.StatusOf(err))
	_, err = users.GetByID(ctx, "user_2")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	err = svc.HandleClerkWebhook(ctx, payload, http.Header{})
	assert.Equal(t, http.StatusBadRequest, serr.StatusOf(err))
}

func TestHandleClerkWebhook_IgnoresUnknownTypes(t *testing.T) {
	svc, _ := newUserFixture(t)
	payload := []byte(`{"type":"email.created","data":{"id":"em_1"}}`)
	assert.NoError(t, svc.HandleClerkWebhook(context.Background(), payload, signedHeaders(t, payload)))
}

func TestNewUserService_WithoutSecretRejects(t *testing.T) {
	svc, err := NewUserService("", repository.NewUserRepo(testutil.NewDB(t)), zerolog.Nop())
	require.NoError(t, err)
	payload := []byte(`{"type":"user.created","data":{"id":"user_1"}}`)
	err = svc.HandleClerkWebhook(context.Background(), payload, signedHeaders(t, payload))
	assert.Equal(t, http.StatusUnauthorized, serr.StatusOf(err))
}
