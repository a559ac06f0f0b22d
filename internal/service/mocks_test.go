package service

import (
	"context"
	"os"
	"testing"

	"lingua-tutor/internal/config"
	"lingua-tutor/internal/domain"
	"lingua-tutor/internal/logger"

	"github.com/stretchr/testify/mock"
	"github.com/tmc/langchaingo/llms"
)

// TestMain initializes the logger for all tests in this package.
func TestMain(m *testing.M) {
	if err := logger.Initialize(config.LoggerConfig{}); err != nil {
		panic("Failed to initialize logger for tests: " + err.Error())
	}
	exitVal := m.Run()
	_ = logger.Sync()
	os.Exit(exitVal)
}

// --- Mocks ---

type MockCanDoRepository struct {
	mock.Mock
}

func (m *MockCanDoRepository) ListAll(ctx context.Context) ([]domain.CanDoStatement, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CanDoStatement), args.Error(1)
}

func (m *MockCanDoRepository) ListByLevels(ctx context.Context, levels []string) ([]domain.CanDoStatement, error) {
	args := m.Called(ctx, levels)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CanDoStatement), args.Error(1)
}

type MockAchievementRepository struct {
	mock.Mock
}

func (m *MockAchievementRepository) Find(ctx context.Context, userID, candoID string) (*domain.Achievement, error) {
	args := m.Called(ctx, userID, candoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Achievement), args.Error(1)
}

func (m *MockAchievementRepository) Insert(ctx context.Context, achievement *domain.Achievement) (*domain.Achievement, error) {
	args := m.Called(ctx, achievement)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Achievement), args.Error(1)
}

func (m *MockAchievementRepository) ListByUser(ctx context.Context, userID string) ([]domain.Achievement, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Achievement), args.Error(1)
}

func (m *MockAchievementRepository) SetApproval(ctx context.Context, userID, candoID string, approved bool) error {
	args := m.Called(ctx, userID, candoID, approved)
	return args.Error(0)
}

func (m *MockAchievementRepository) Delete(ctx context.Context, userID, candoID string) error {
	args := m.Called(ctx, userID, candoID)
	return args.Error(0)
}

type MockAnalysisLogRepository struct {
	mock.Mock
}

func (m *MockAnalysisLogRepository) Append(ctx context.Context, entry *domain.AnalysisLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) GetByID(ctx context.Context, userID string) (*domain.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockProfileRepository) ListAll(ctx context.Context) ([]domain.Profile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Profile), args.Error(1)
}

func (m *MockProfileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

type MockClassifier struct {
	mock.Mock
}

func (m *MockClassifier) Classify(ctx context.Context, transcript string, statements []domain.CanDoStatement, userLevel string) (*domain.ClassificationResult, error) {
	args := m.Called(ctx, transcript, statements, userLevel)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ClassificationResult), args.Error(1)
}

// fakeChatModel fakes the langchaingo chat client for ChatService tests.
type fakeChatModel struct {
	response string
	err      error
	messages []llms.MessageContent
}

func (f *fakeChatModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	f.messages = messages
	if f.err != nil {
		return nil, f.err
	}
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: f.response}},
	}, nil
}
