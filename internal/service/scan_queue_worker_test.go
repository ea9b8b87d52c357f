package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"cardintake/internal/domain"
	"cardintake/internal/service"
	"cardintake/mocks"
)

func workerConfig() service.ScanQueueConfig {
	return service.ScanQueueConfig{
		PollInterval: 50 * time.Millisecond,
		MaxRetries:   3,
		Concurrency:  2,
	}
}

func TestScanQueueWorker_PollsAndDispatches(t *testing.T) {
	scanRepo := new(mocks.MockScanRepo)
	scanSvc := new(mocks.MockScanService)

	scan := domain.CardScan{
		ID:           uuid.New(),
		TenantID:     uuid.New(),
		FileID:       uuid.New(),
		CardKind:     domain.CardKindInsurance,
		Status:       domain.ScanStatusProcessing,
		ScanAttempts: 1,
	}

	// First poll returns one scan, subsequent polls return empty
	scanRepo.On("ClaimQueued", mock.Anything, mock.AnythingOfType("int")).
		Return([]domain.CardScan{scan}, nil).Once()
	scanRepo.On("ClaimQueued", mock.Anything, mock.AnythingOfType("int")).
		Return([]domain.CardScan{}, nil).Maybe()

	scanSvc.On("ProcessScan", mock.Anything, mock.AnythingOfType("*domain.CardScan"), 3).
		Return().Maybe()

	worker := service.NewScanQueueWorker(scanRepo, scanSvc, workerConfig())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		worker.Start(ctx)
		close(done)
	}()

	// Wait for at least one poll cycle
	time.Sleep(200 * time.Millisecond)
	cancel()
	<-done

	scanRepo.AssertCalled(t, "ClaimQueued", mock.Anything, mock.AnythingOfType("int"))
	scanSvc.AssertCalled(t, "ProcessScan", mock.Anything, mock.AnythingOfType("*domain.CardScan"), 3)
}

func TestScanQueueWorker_RespectsConcurrencyCap(t *testing.T) {
	scanRepo := new(mocks.MockScanRepo)
	scanSvc := new(mocks.MockScanService)

	cfg := workerConfig()

	scanRepo.On("ClaimQueued", mock.Anything, mock.AnythingOfType("int")).
		Return([]domain.CardScan{}, nil).Maybe()
	scanSvc.On("ProcessScan", mock.Anything, mock.AnythingOfType("*domain.CardScan"), 3).
		Return().Maybe()

	worker := service.NewScanQueueWorker(scanRepo, scanSvc, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		worker.Start(ctx)
		close(done)
	}()

	time.Sleep(150 * time.Millisecond)
	cancel()
	<-done

	// Every claim must ask for at most the free concurrency slots
	for _, call := range scanRepo.Calls {
		if call.Method == "ClaimQueued" {
			limit := call.Arguments.Get(1).(int)
			assert.LessOrEqual(t, limit, cfg.Concurrency)
			assert.Greater(t, limit, 0)
		}
	}
}

func TestScanQueueWorker_CleanShutdown(t *testing.T) {
	scanRepo := new(mocks.MockScanRepo)
	scanSvc := new(mocks.MockScanService)

	scanRepo.On("ClaimQueued", mock.Anything, mock.AnythingOfType("int")).
		Return([]domain.CardScan{}, nil).Maybe()

	worker := service.NewScanQueueWorker(scanRepo, scanSvc, workerConfig())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		worker.Start(ctx)
		close(done)
	}()

	// Cancel immediately
	cancel()

	select {
	case <-done:
		// Start returned promptly
	case <-time.After(2 * time.Second):
		t.Fatal("Start did not return after context cancellation")
	}
}

func TestScanQueueWorker_EmptyQueueDoesNothing(t *testing.T) {
	scanRepo := new(mocks.MockScanRepo)
	scanSvc := new(mocks.MockScanService)

	scanRepo.On("ClaimQueued", mock.Anything, mock.AnythingOfType("int")).
		Return([]domain.CardScan{}, nil).Maybe()

	worker := service.NewScanQueueWorker(scanRepo, scanSvc, workerConfig())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		worker.Start(ctx)
		close(done)
	}()

	time.Sleep(200 * time.Millisecond)
	cancel()
	<-done

	scanSvc.AssertNotCalled(t, "ProcessScan", mock.Anything, mock.Anything, mock.Anything)
}

func TestScanQueueWorker_SurvivesClaimErrors(t *testing.T) {
	scanRepo := new(mocks.MockScanRepo)
	scanSvc := new(mocks.MockScanService)

	scanRepo.On("ClaimQueued", mock.Anything, mock.AnythingOfType("int")).
		Return(nil, errors.New("db connection error")).Maybe()

	worker := service.NewScanQueueWorker(scanRepo, scanSvc, workerConfig())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		worker.Start(ctx)
		close(done)
	}()

	// Let a few poll cycles fail
	time.Sleep(200 * time.Millisecond)
	cancel()

	select {
	case <-done:
		// No panic, no goroutine leak
	case <-time.After(2 * time.Second):
		t.Fatal("Start did not return after context cancellation")
	}

	scanSvc.AssertNotCalled(t, "ProcessScan", mock.Anything, mock.Anything, mock.Anything)
}
