package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"photoai/internal/falai"
	"photoai/internal/notify"
)

var errProvider = errors.New("provider unavailable")

type fakeProvider struct {
	submitTraining    func(ctx context.Context, in falai.TrainingInput) (*falai.Job, error)
	submitGeneration  func(ctx context.Context, in falai.GenerationInput) (*falai.Job, error)
	trainingResult    func(ctx context.Context, requestID string) (*falai.TrainingResult, error)
	generateThumbnail func(ctx context.Context, tensorPath string) (string, error)

	generationCalls atomic.Int32
	resultCalls     atomic.Int32
	thumbnailCalls  atomic.Int32
}

func (f *fakeProvider) SubmitTraining(ctx context.Context, in falai.TrainingInput) (*falai.Job, error) {
	return f.submitTraining(ctx, in)
}

func (f *fakeProvider) SubmitGeneration(ctx context.Context, in falai.GenerationInput) (*falai.Job, error) {
	f.generationCalls.Add(1)
	return f.submitGeneration(ctx, in)
}

func (f *fakeProvider) TrainingResult(ctx context.Context, requestID string) (*falai.TrainingResult, error) {
	f.resultCalls.Add(1)
	return f.trainingResult(ctx, requestID)
}

func (f *fakeProvider) GenerateThumbnail(ctx context.Context, tensorPath string) (string, error) {
	f.thumbnailCalls.Add(1)
	return f.generateThumbnail(ctx, tensorPath)
}

type recordingSink struct {
	mu     sync.Mutex
	events []notify.Event
}

func (r *recordingSink) Publish(_ context.Context, ev notify.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recordingSink) all() []notify.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]notify.Event(nil), r.events...)
}
