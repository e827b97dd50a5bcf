package testutil

import (
	"context"
	"sync"

	domain "github.com/tagihin/tagihin/internal/domain/pdf"
	"github.com/tagihin/tagihin/internal/logger"
	"github.com/tagihin/tagihin/internal/pdf"
)

var _ pdf.Generator = (*MockPDFGenerator)(nil)

// MockPDFGenerator returns a fixed byte stream instead of shelling out to
// typst, and records the last receipt it was asked to render.
type MockPDFGenerator struct {
	mu     sync.Mutex
	logger *logger.Logger

	LastReceipt *domain.ReceiptData
}

// NewMockPDFGenerator creates a new mock PDF generator
func NewMockPDFGenerator(logger *logger.Logger) *MockPDFGenerator {
	return &MockPDFGenerator{logger: logger}
}

// RenderReceiptPdf implements pdf.Generator.
func (m *MockPDFGenerator) RenderReceiptPdf(ctx context.Context, data *domain.ReceiptData) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastReceipt = data
	return []byte("%PDF-1.4 mock receipt"), nil
}
