package service

import (
	"context"
	"fmt"
	"net/http"
	"sync/atomic"
	"testing"

	"photoai/internal/falai"
	"photoai/internal/model"
	"photoai/internal/repository"
	"photoai/internal/serr"
	"photoai/internal/testutil"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type generationFixture struct {
	svc      GenerationService
	provider *fakeProvider
	credits  repository.CreditRepository
	models   repository.ModelRepository
	images   repository.ImageRepository
	packs    repository.PackRepository
}

func newGenerationFixture(t *testing.T) *generationFixture {
	t.Helper()
	conn := testutil.NewDB(t)
	var seq atomic.Int32
	f := &generationFixture{
		provider: &fakeProvider{
			submitTraining: func(context.Context, falai.TrainingInput) (*falai.Job, error) {
				return &falai.Job{RequestID: "train_req"}, nil
			},
			submitGeneration: func(context.Context, falai.GenerationInput) (*falai.Job, error) {
				return &falai.Job{RequestID: fmt.Sprintf("img_req_%d", seq.Add(1))}, nil
			},
		},
		credits: repository.NewCreditRepo(conn),
		models:  repository.NewModelRepo(conn),
		images:  repository.NewImageRepo(conn),
		packs:   repository.NewPackRepo(conn),
	}
	logger := zerolog.Nop()
	f.svc = NewGenerationService(
		NewCreditService(f.credits, logger),
		f.provider,
		f.models,
		f.images,
		f.packs,
		Pricing{ImageCredits: 1, TrainingCredits: 20, MaxImagesPerRequest: 4, SubmitConcurrency: 2},
		logger,
	)
	return f
}

func (f *generationFixture) grant(t *testing.T, userID string, amount int) {
	t.Helper()
	_, err := f.credits.Grant(context.Background(), userID, amount)
	require.NoError(t, err)
}

func (f *generationFixture) balance(t *testing.T, userID string) int {
	t.Helper()
	bal, err := f.credits.GetBalance(context.Background(), userID)
	require.NoError(t, err)
	return bal
}

func (f *generationFixture) readyModel(t *testing.T, userID string) *model.Model {
	t.Helper()
	m := &model.Model{
		Name:           "alice",
		Type:           model.ModelTypeWoman,
		UserID:         userID,
		TensorPath:     "https://cdn.example/lora.safetensors",
		TrainingStatus: model.TrainingGenerated,
		FalAIRequestID: "train_" + userID,
	}
	require.NoError(t, f.models.Create(context.Background(), m))
	return m
}

func (f *generationFixture) imageCount(t *testing.T, userID string) int {
	t.Helper()
	imgs, err := f.images.List(context.Background(), repository.ImageFilter{UserID: userID, Limit: 100})
	require.NoError(t, err)
	return len(imgs)
}

func TestGenerate_ChargesAndCreatesPendingRow(t *testing.T) {
	f := newGenerationFixture(t)
	m := f.readyModel(t, "user_1")
	f.grant(t, "user_1", 1)

	imgs, err := f.svc.Generate(context.Background(), "user_1", m.ID, "a portrait", 1)
	require.NoError(t, err)
	require.Len(t, imgs, 1)
	assert.Equal(t, model.ImagePending, imgs[0].Status)
	assert.Equal(t, "img_req_1", imgs[0].FalAIRequestID)
	assert.NotEmpty(t, imgs[0].ID)

	assert.Equal(t, 0, f.balance(t, "user_1"))
	assert.Equal(t, 1, f.imageCount(t, "user_1"))
}

func TestGenerate_InsufficientCredits(t *testing.T) {
	f := newGenerationFixture(t)
	m := f.readyModel(t, "user_1")

	_, err := f.svc.Generate(context.Background(), "user_1", m.ID, "a portrait", 1)
	require.Error(t, err)
	assert.Equal(t, http.StatusLengthRequired, serr.StatusOf(err))
	assert.Equal(t, int32(0), f.provider.generationCalls.Load())
	assert.Equal(t, 0, f.imageCount(t, "user_1"))
}

func TestGenerate_FreeWhenImageCostIsZero(t *testing.T) {
	f := newGenerationFixture(t)
	m := f.readyModel(t, "user_1")
	logger := zerolog.Nop()
	free := NewGenerationService(
		NewCreditService(f.credits, logger),
		f.provider,
		f.models,
		f.images,
		f.packs,
		Pricing{ImageCredits: 0, TrainingCredits: 20, MaxImagesPerRequest: 4, SubmitConcurrency: 2},
		logger,
	)

	imgs, err := free.Generate(context.Background(), "user_1", m.ID, "a portrait", 2)
	require.NoError(t, err)
	assert.Len(t, imgs, 2)
	assert.Equal(t, 0, f.balance(t, "user_1"))
	assert.Equal(t, int32(2), f.provider.generationCalls.Load())
}

func TestGenerate_ProviderFailureRefunds(t *testing.T) {
	f := newGenerationFixture(t)
	m := f.readyModel(t, "user_1")
	f.grant(t, "user_1", 2)
	f.provider.submitGeneration = func(context.Context, falai.GenerationInput) (*falai.Job, error) {
		return nil, errProvider
	}

	_, err := f.svc.Generate(context.Background(), "user_1", m.ID, "a portrait", 2)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadGateway, serr.StatusOf(err))
	assert.Equal(t, 2, f.balance(t, "user_1"))
	assert.Equal(t, 0, f.imageCount(t, "user_1"))
}

func TestGenerate_ModelChecks(t *testing.T) {
	f := newGenerationFixture(t)
	f.grant(t, "user_1", 5)
	ctx := context.Background()

	_, err := f.svc.Generate(ctx, "user_1", "missing", "x", 1)
	assert.Equal(t, http.StatusNotFound, serr.StatusOf(err))

	other := f.readyModel(t, "user_2")
	_, err = f.svc.Generate(ctx, "user_1", other.ID, "x", 1)
	assert.Equal(t, http.StatusNotFound, serr.StatusOf(err), "private models of other users are invisible")

	pending := &model.Model{Name: "bob", UserID: "user_1", TrainingStatus: model.TrainingPending, FalAIRequestID: "train_pending"}
	require.NoError(t, f.models.Create(ctx, pending))
	_, err = f.svc.Generate(ctx, "user_1", pending.ID, "x", 1)
	assert.Equal(t, http.StatusConflict, serr.StatusOf(err))

	_, err = f.svc.Generate(ctx, "user_1", pending.ID, "x", 5)
	assert.Equal(t, http.StatusBadRequest, serr.StatusOf(err))

	assert.Equal(t, 5, f.balance(t, "user_1"))
}

func TestGeneratePack_ReservesBeforeSubmitting(t *testing.T) {
	f := newGenerationFixture(t)
	m := f.readyModel(t, "user_1")
	f.grant(t, "user_1", 2)
	pack := &model.Pack{Name: "Office", Prompts: []model.PackPrompt{{Prompt: "a"}, {Prompt: "b"}, {Prompt: "c"}}}
	require.NoError(t, f.packs.Create(context.Background(), pack))

	_, err := f.svc.GeneratePack(context.Background(), "user_1", m.ID, pack.ID)
	require.Error(t, err)
	assert.Equal(t, http.StatusLengthRequired, serr.StatusOf(err))
	assert.Equal(t, int32(0), f.provider.generationCalls.Load())
	assert.Equal(t, 2, f.balance(t, "user_1"))
	assert.Equal(t, 0, f.imageCount(t, "user_1"))
}

func TestGeneratePack_PartialRejectionRefunds(t *testing.T) {
	f := newGenerationFixture(t)
	m := f.readyModel(t, "user_1")
	f.grant(t, "user_1", 3)
	pack := &model.Pack{Name: "Office", Prompts: []model.PackPrompt{{Prompt: "a"}, {Prompt: "b"}, {Prompt: "c"}}}
	require.NoError(t, f.packs.Create(context.Background(), pack))
	f.provider.submitGeneration = func(_ context.Context, in falai.GenerationInput) (*falai.Job, error) {
		if in.Prompt == "b" {
			return nil, errProvider
		}
		return &falai.Job{RequestID: "req_" + in.Prompt}, nil
	}

	imgs, err := f.svc.GeneratePack(context.Background(), "user_1", m.ID, pack.ID)
	require.NoError(t, err)
	require.Len(t, imgs, 2)
	assert.Equal(t, int32(3), f.provider.generationCalls.Load())
	assert.Equal(t, 1, f.balance(t, "user_1"))
	assert.Equal(t, 2, f.imageCount(t, "user_1"))
}

func TestGeneratePack_UnknownPack(t *testing.T) {
	f := newGenerationFixture(t)
	m := f.readyModel(t, "user_1")
	_, err := f.svc.GeneratePack(context.Background(), "user_1", m.ID, "missing")
	assert.Equal(t, http.StatusNotFound, serr.StatusOf(err))
}

func TestTrain(t *testing.T) {
	f := newGenerationFixture(t)
	f.grant(t, "user_1", 20)

	m, err := f.svc.Train(context.Background(), &model.Model{Name: "alice", UserID: "user_1", ZipURL: "https://cdn.example/a.zip"})
	require.NoError(t, err)
	assert.Equal(t, model.TrainingPending, m.TrainingStatus)
	assert.Equal(t, "train_req", m.FalAIRequestID)
	assert.Equal(t, "alice", m.TriggerWord)
	assert.Equal(t, 0, f.balance(t, "user_1"))

	stored, err := f.models.GetByRequestID(context.Background(), "train_req")
	require.NoError(t, err)
	assert.Equal(t, m.ID, stored.ID)
}

func TestTrain_FailureRefunds(t *testing.T) {
	f := newGenerationFixture(t)
	f.grant(t, "user_1", 25)
	f.provider.submitTraining = func(context.Context, falai.TrainingInput) (*falai.Job, error) {
		return nil, errProvider
	}

	_, err := f.svc.Train(context.Background(), &model.Model{Name: "alice", UserID: "user_1"})
	assert.Equal(t, http.StatusBadGateway, serr.StatusOf(err))
	assert.Equal(t, 25, f.balance(t, "user_1"))

	_, err = f.models.GetByRequestID(context.Background(), "train_req")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTrain_InsufficientCredits(t *testing.T) {
	f := newGenerationFixture(t)
	f.grant(t, "user_1", 19)
	_, err := f.svc.Train(context.Background(), &model.Model{Name: "alice", UserID: "user_1"})
	assert.Equal(t, http.StatusLengthRequired, serr.StatusOf(err))
	assert.Equal(t, 19, f.balance(t, "user_1"))
}

func TestListModels_IncludesOpenModels(t *testing.T) {
	f := newGenerationFixture(t)
	ctx := context.Background()
	f.readyModel(t, "user_1")
	open := &model.Model{Name: "shared", UserID: "user_2", Open: true, FalAIRequestID: "train_open"}
	require.NoError(t, f.models.Create(ctx, open))
	f.readyModel(t, "user_3")

	models, err := f.svc.ListModels(ctx, "user_1")
	require.NoError(t, err)
	assert.Len(t, models, 2)
}
