package service

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"photoai/internal/falai"
	"photoai/internal/model"
	"photoai/internal/notify"
	"photoai/internal/repository"
	"photoai/internal/serr"
	"photoai/internal/testutil"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type webhookFixture struct {
	svc      WebhookService
	provider *fakeProvider
	models   repository.ModelRepository
	images   repository.ImageRepository
	sink     *recordingSink
}

func newWebhookFixture(t *testing.T, token string) *webhookFixture {
	t.Helper()
	conn := testutil.NewDB(t)
	f := &webhookFixture{
		provider: &fakeProvider{
			trainingResult: func(context.Context, string) (*falai.TrainingResult, error) {
				return &falai.TrainingResult{DiffusersLoraFile: falai.File{URL: "https://cdn.example/lora.safetensors"}}, nil
			},
			generateThumbnail: func(context.Context, string) (string, error) {
				return "https://cdn.example/thumb.png", nil
			},
		},
		models: repository.NewModelRepo(conn),
		images: repository.NewImageRepo(conn),
		sink:   &recordingSink{},
	}
	f.svc = NewWebhookService(f.provider, f.models, f.images, f.sink, token, zerolog.Nop())
	return f
}

func (f *webhookFixture) pendingModel(t *testing.T, requestID string) *model.Model {
	t.Helper()
	m := &model.Model{Name: "alice", UserID: "user_1", TrainingStatus: model.TrainingPending, FalAIRequestID: requestID}
	require.NoError(t, f.models.Create(context.Background(), m))
	return m
}

func (f *webhookFixture) pendingImage(t *testing.T, requestID string) *model.OutputImage {
	t.Helper()
	img := &model.OutputImage{UserID: "user_1", ModelID: "model_1", Prompt: "x", FalAIRequestID: requestID, Status: model.ImagePending}
	require.NoError(t, f.images.CreateBatch(context.Background(), []*model.OutputImage{img}))
	return img
}

func TestHandleTraining_MarksGeneratedOnce(t *testing.T) {
	f := newWebhookFixture(t, "")
	m := f.pendingModel(t, "req_1")
	ctx := context.Background()

	require.NoError(t, f.svc.HandleTraining(ctx, TrainingCallback{RequestID: "req_1", Status: "OK"}))
	require.NoError(t, f.svc.HandleTraining(ctx, TrainingCallback{RequestID: "req_1", Status: "OK"}))

	stored, err := f.models.GetByRequestID(ctx, "req_1")
	require.NoError(t, err)
	assert.Equal(t, model.TrainingGenerated, stored.TrainingStatus)
	assert.Equal(t, "https://cdn.example/lora.safetensors", stored.TensorPath)
	assert.Equal(t, "https://cdn.example/thumb.png", stored.Thumbnail)
	assert.Equal(t, int32(1), f.provider.resultCalls.Load())

	events := f.sink.all()
	require.Len(t, events, 1)
	assert.Equal(t, notify.ModelTrained, events[0].Type)
	assert.Equal(t, m.ID, events[0].ID)
	assert.Equal(t, "user_1", events[0].UserID)
}

func TestHandleTraining_ConcurrentRedeliveryRendersOnce(t *testing.T) {
	f := newWebhookFixture(t, "")
	f.pendingModel(t, "req_1")
	entered := make(chan struct{}, 2)
	release := make(chan struct{})
	f.provider.trainingResult = func(context.Context, string) (*falai.TrainingResult, error) {
		entered <- struct{}{}
		<-release
		return &falai.TrainingResult{DiffusersLoraFile: falai.File{URL: "https://cdn.example/lora.safetensors"}}, nil
	}

	ctx := context.Background()
	cb := TrainingCallback{RequestID: "req_1", Status: "OK"}
	var wg sync.WaitGroup
	errs := make([]error, 2)
	wg.Add(1)
	go func() {
		defer wg.Done()
		errs[0] = f.svc.HandleTraining(ctx, cb)
	}()
	<-entered

	wg.Add(1)
	go func() {
		defer wg.Done()
		errs[1] = f.svc.HandleTraining(ctx, cb)
	}()
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	assert.Equal(t, int32(1), f.provider.resultCalls.Load())
	assert.Equal(t, int32(1), f.provider.thumbnailCalls.Load())
	assert.Len(t, f.sink.all(), 1)
}

func TestHandleTraining_ErrorStatusFails(t *testing.T) {
	f := newWebhookFixture(t, "")
	f.pendingModel(t, "req_1")
	ctx := context.Background()

	require.NoError(t, f.svc.HandleTraining(ctx, TrainingCallback{RequestID: "req_1", Status: "ERROR"}))

	stored, err := f.models.GetByRequestID(ctx, "req_1")
	require.NoError(t, err)
	assert.Equal(t, model.TrainingFailed, stored.TrainingStatus)
	assert.Equal(t, int32(0), f.provider.resultCalls.Load())
	require.Len(t, f.sink.all(), 1)
	assert.Equal(t, notify.ModelFailed, f.sink.all()[0].Type)
}

func TestHandleTraining_ResultFailureKeepsPending(t *testing.T) {
	f := newWebhookFixture(t, "")
	f.pendingModel(t, "req_1")
	f.provider.trainingResult = func(context.Context, string) (*falai.TrainingResult, error) {
		return nil, errProvider
	}

	err := f.svc.HandleTraining(context.Background(), TrainingCallback{RequestID: "req_1"})
	assert.Equal(t, http.StatusBadGateway, serr.StatusOf(err))

	stored, err := f.models.GetByRequestID(context.Background(), "req_1")
	require.NoError(t, err)
	assert.Equal(t, model.TrainingPending, stored.TrainingStatus)
	assert.Empty(t, f.sink.all())
}

func TestHandleTraining_ThumbnailFailureStillTrains(t *testing.T) {
	f := newWebhookFixture(t, "")
	f.pendingModel(t, "req_1")
	f.provider.generateThumbnail = func(context.Context, string) (string, error) {
		return "", errProvider
	}

	require.NoError(t, f.svc.HandleTraining(context.Background(), TrainingCallback{RequestID: "req_1"}))

	stored, err := f.models.GetByRequestID(context.Background(), "req_1")
	require.NoError(t, err)
	assert.Equal(t, model.TrainingGenerated, stored.TrainingStatus)
	assert.Empty(t, stored.Thumbnail)
}

func TestHandleTraining_UnknownRequestIsAcknowledged(t *testing.T) {
	f := newWebhookFixture(t, "")
	assert.NoError(t, f.svc.HandleTraining(context.Background(), TrainingCallback{RequestID: "nope"}))
	assert.Equal(t, int32(0), f.provider.resultCalls.Load())
}

func TestHandleImage_CompletesOnce(t *testing.T) {
	f := newWebhookFixture(t, "")
	img := f.pendingImage(t, "img_1")
	ctx := context.Background()

	require.NoError(t, f.svc.HandleImage(ctx, ImageCallback{RequestID: "img_1", Status: "OK", ImageURLs: []string{"https://cdn.example/1.png"}}))
	require.NoError(t, f.svc.HandleImage(ctx, ImageCallback{RequestID: "img_1", Status: "OK", ImageURLs: []string{"https://cdn.example/2.png"}}))

	stored, err := f.images.GetByRequestID(ctx, "img_1")
	require.NoError(t, err)
	assert.Equal(t, model.ImageGenerated, stored.Status)
	assert.Equal(t, "https://cdn.example/1.png", stored.ImageURL)

	events := f.sink.all()
	require.Len(t, events, 1)
	assert.Equal(t, notify.ImageGenerated, events[0].Type)
	assert.Equal(t, img.ID, events[0].ID)
	assert.Equal(t, "https://cdn.example/1.png", events[0].URL)
}

func TestHandleImage_Failures(t *testing.T) {
	f := newWebhookFixture(t, "")
	f.pendingImage(t, "img_err")
	f.pendingImage(t, "img_empty")
	ctx := context.Background()

	require.NoError(t, f.svc.HandleImage(ctx, ImageCallback{RequestID: "img_err", Status: "ERROR"}))
	require.NoError(t, f.svc.HandleImage(ctx, ImageCallback{RequestID: "img_empty", Status: "OK"}))

	for _, id := range []string{"img_err", "img_empty"} {
		stored, err := f.images.GetByRequestID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, model.ImageFailed, stored.Status, id)
	}

	// A late success does not resurrect a failed image.
	require.NoError(t, f.svc.HandleImage(ctx, ImageCallback{RequestID: "img_err", ImageURLs: []string{"https://cdn.example/late.png"}}))
	stored, err := f.images.GetByRequestID(ctx, "img_err")
	require.NoError(t, err)
	assert.Equal(t, model.ImageFailed, stored.Status)
	assert.Empty(t, stored.ImageURL)
}

func TestHandleImage_UnknownRequestIsAcknowledged(t *testing.T) {
	f := newWebhookFixture(t, "")
	assert.NoError(t, f.svc.HandleImage(context.Background(), ImageCallback{RequestID: "nope", ImageURLs: []string{"u"}}))
	assert.Empty(t, f.sink.all())
}

func TestVerifyToken(t *testing.T) {
	open := newWebhookFixture(t, "")
	assert.True(t, open.svc.VerifyToken(""))
	assert.True(t, open.svc.VerifyToken("anything"))

	guarded := newWebhookFixture(t, "s3cret")
	assert.True(t, guarded.svc.VerifyToken("s3cret"))
	assert.False(t, guarded.svc.VerifyToken(""))
	assert.False(t, guarded.svc.VerifyToken("wrong"))
}
