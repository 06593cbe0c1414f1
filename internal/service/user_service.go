package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"photoai/internal/model"
	"photoai/internal/repository"
	"photoai/internal/serr"

	"github.com/rs/zerolog"
	svix "github.com/svix/svix-webhooks/go"
)

// ClerkEvent is one of UserUpserted, UserDeleted or UnknownClerkEvent.
type ClerkEvent interface {
	clerkEvent()
}

type UserUpserted struct {
	User model.User
}

type UserDeleted struct {
	UserID string
}

type UnknownClerkEvent struct {
	Type string
}

func (UserUpserted) clerkEvent()      {}
func (UserDeleted) clerkEvent()       {}
func (UnknownClerkEvent) clerkEvent() {}

type clerkEnvelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type clerkUserData struct {
	ID             string `json:"id"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	ProfileImage   string `json:"profile_image_url"`
	ImageURL       string `json:"image_url"`
	EmailAddresses []struct {
		EmailAddress string `json:"email_address"`
	} `json:"email_addresses"`
}

// ParseClerkEvent decodes a verified Clerk webhook body.
func ParseClerkEvent(payload []byte) (ClerkEvent, error) {
	var env clerkEnvelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return nil, fmt.Errorf("decode clerk event: %w", err)
	}
	switch env.Type {
	case "user.created", "user.updated":
		var d clerkUserData
		if err := json.Unmarshal(env.Data, &d); err != nil {
			return nil, fmt.Errorf("decode clerk user: %w", err)
		}
		if d.ID == "" {
			return nil, errors.New("clerk user event without id")
		}
		u := model.User{
			ID:             d.ID,
			Name:           strings.TrimSpace(d.FirstName + " " + d.LastName),
			ProfilePicture: d.ProfileImage,
		}
		if u.ProfilePicture == "" {
			u.ProfilePicture = d.ImageURL
		}
		if len(d.EmailAddresses) > 0 {
			u.Email = d.EmailAddresses[0].EmailAddress
		}
		return UserUpserted{User: u}, nil
	case "user.deleted":
		var d struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(env.Data, &d); err != nil {
			return nil, fmt.Errorf("decode clerk deletion: %w", err)
		}
		if d.ID == "" {
			return nil, errors.New("clerk deletion event without id")
		}
		return UserDeleted{UserID: d.ID}, nil
	default:
		return UnknownClerkEvent{Type: env.Type}, nil
	}
}

// UserService mirrors identity provider users into the local database.
type UserService interface {
	HandleClerkWebhook(ctx context.Context, payload []byte, headers http.Header) error
}

type userService struct {
	verifier *svix.Webhook
	users    repository.UserRepository
	logger   zerolog.Logger
}

// NewUserService returns an error when the signing secret is malformed. An
// empty secret yields a service that rejects every delivery.
func NewUserService(signingSecret string, users repository.UserRepository, logger zerolog.Logger) (UserService, error) {
	s := &userService{users: users, logger: logger.With().Str("service", "UserService").Logger()}
	if signingSecret != "" {
		wh, err := svix.NewWebhook(signingSecret)
		if err != nil {
			return nil, fmt.Errorf("clerk signing secret: %w", err)
		}
		s.verifier = wh
	}
	return s, nil
}

func (s *userService) HandleClerkWebhook(ctx context.Context, payload []byte, headers http.Header) error {
	if headers.Get("svix-id") == "" || headers.Get("svix-timestamp") == "" || headers.Get("svix-signature") == "" {
		return serr.BadRequest("Missing svix headers")
	}
	if s.verifier == nil {
		s.logger.Error().Msg("Clerk webhook received but no signing secret is configured")
		return serr.Unauthorized("Invalid webhook signature")
	}
	if err := s.verifier.Verify(payload, headers); err != nil {
		s.logger.Warn().Err(err).Str("svix_id", headers.Get("svix-id")).Msg("Clerk webhook verification failed")
		return serr.Wrap(err, http.StatusUnauthorized, "Invalid webhook signature")
	}

	ev, err := ParseClerkEvent(payload)
	if err != nil {
		return serr.Wrap(err, http.StatusBadRequest, "Invalid webhook payload")
	}

	switch e := ev.(type) {
	case UserUpserted:
		if err := s.users.Upsert(ctx, &e.User); err != nil {
			return err
		}
		s.logger.Info().Str("user_id", e.User.ID).Msg("User upserted")
	case UserDeleted:
		if err := s.users.Delete(ctx, e.UserID); err != nil {
			return err
		}
		s.logger.Info().Str("user_id", e.UserID).Msg("User deleted")
	case UnknownClerkEvent:
		s.logger.Debug().Str("event_type", e.Type).Msg("Ignoring Clerk event")
	}
	return nil
}
