package pdf

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tagihin/tagihin/internal/config"
	"github.com/tagihin/tagihin/internal/domain/pdf"
	ierr "github.com/tagihin/tagihin/internal/errors"
	"github.com/tagihin/tagihin/internal/typst"
)

// Generator defines the interface for PDF generation operations
type Generator interface {
	RenderReceiptPdf(ctx context.Context, data *pdf.ReceiptData) ([]byte, error)
}

type service struct {
	typst typst.Compiler
}

// NewGenerator creates a new PDF service
func NewGenerator(config *config.Configuration, typst typst.Compiler) Generator {
	return &service{
		typst: typst,
	}
}

func (s *service) RenderReceiptPdf(ctx context.Context, data *pdf.ReceiptData) ([]byte, error) {
	templateName := "receipt.typ"

	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("failed to marshal receipt data").
			Mark(ierr.ErrSystem)
	}

	out, err := s.typst.CompileTemplate(
		templateName,
		jsonData,
		typst.WithOutputFile(fmt.Sprintf("receipt-%s.pdf", data.ID)),
	)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("failed to compile receipt template").
			Mark(ierr.ErrSystem)
	}

	return out, nil
}
