package service

import (
	"context"

	"github.com/facturo/facturo/internal/api/dto"
	"github.com/facturo/facturo/internal/config"
	"github.com/facturo/facturo/internal/domain/invoice"
	"github.com/facturo/facturo/internal/logger"
	"github.com/facturo/facturo/internal/types"
	"github.com/samber/lo"
)

type InvoiceService interface {
	CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error)
	GetInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error)
	ListInvoices(ctx context.Context) (*dto.ListInvoicesResponse, error)
	UpdateInvoice(ctx context.Context, id string, req dto.UpdateInvoiceRequest) (*dto.InvoiceResponse, error)
	DeleteInvoice(ctx context.Context, id string) error
	SendInvoice(ctx context.Context, id string) (*dto.SendInvoiceResponse, error)
	UpdateInvoiceStatus(ctx context.Context, id string, req dto.UpdateInvoiceStatusRequest) (*dto.InvoiceResponse, error)
	DownloadInvoice(ctx context.Context, id string) (*dto.DownloadInvoiceResponse, error)
}

type invoiceService struct {
	invoiceRepo invoice.Repository
	builder     *invoice.Builder
	currency    string
	logger      *logger.Logger
}

func NewInvoiceService(
	invoiceRepo invoice.Repository,
	builder *invoice.Builder,
	cfg *config.Configuration,
	logger *logger.Logger,
) InvoiceService {
	return &invoiceService{
		invoiceRepo: invoiceRepo,
		builder:     builder,
		currency:    cfg.Invoice.DefaultCurrency,
		logger:      logger,
	}
}

// CreateInvoice validates the raw form, derives all monetary fields and
// stores the resulting draft invoice
func (s *invoiceService) CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	form, err := req.ToFormData()
	if err != nil {
		return nil, err
	}

	inv, err := s.builder.Build(form)
	if err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.Create(ctx, inv); err != nil {
		return nil, err
	}

	s.logger.Infow("created invoice",
		"invoice_id", inv.ID,
		"invoice_number", inv.InvoiceNumber,
		"total", inv.Total,
	)
	return dto.NewInvoiceResponse(inv, s.currency), nil
}

func (s *invoiceService) GetInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := s.invoiceRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewInvoiceResponse(inv, s.currency), nil
}

func (s *invoiceService) ListInvoices(ctx context.Context) (*dto.ListInvoicesResponse, error) {
	invoices, err := s.invoiceRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.ListInvoicesResponse{
		Items: lo.Map(invoices, func(inv *invoice.Invoice, _ int) *dto.InvoiceResponse {
			return dto.NewInvoiceResponse(inv, s.currency)
		}),
		Total: len(invoices),
	}, nil
}

// UpdateInvoice re-validates the edited form and re-derives every
// amount, keeping the invoice's identity and status. Storage is last
// write wins.
func (s *invoiceService) UpdateInvoice(ctx context.Context, id string, req dto.UpdateInvoiceRequest) (*dto.InvoiceResponse, error) {
	existing, err := s.invoiceRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}

	form, err := req.ToFormData()
	if err != nil {
		return nil, err
	}

	rebuilt, err := s.builder.Rebuild(existing, form)
	if err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.Update(ctx, rebuilt); err != nil {
		return nil, err
	}

	s.logger.Infow("updated invoice", "invoice_id", rebuilt.ID, "total", rebuilt.Total)
	return dto.NewInvoiceResponse(rebuilt, s.currency), nil
}

func (s *invoiceService) DeleteInvoice(ctx context.Context, id string) error {
	if err := s.invoiceRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Infow("deleted invoice", "invoice_id", id)
	return nil
}

// SendInvoice stamps the invoice as sent and stores the copy. Actual
// email dispatch is a placeholder acknowledgment.
func (s *invoiceService) SendInvoice(ctx context.Context, id string) (*dto.SendInvoiceResponse, error) {
	inv, err := s.invoiceRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	sent := invoice.Send(inv)
	if err := s.invoiceRepo.Update(ctx, sent); err != nil {
		return nil, err
	}

	s.logger.Infow("marked invoice as sent", "invoice_id", sent.ID, "invoice_number", sent.InvoiceNumber)
	return &dto.SendInvoiceResponse{
		Invoice:  dto.NewInvoiceResponse(sent, s.currency),
		Delivery: "email delivery is not configured; invoice marked as sent",
	}, nil
}

// UpdateInvoiceStatus applies a caller-driven transition (paid,
// overdue). The core never derives these from payment state or the
// clock.
func (s *invoiceService) UpdateInvoiceStatus(ctx context.Context, id string, req dto.UpdateInvoiceStatusRequest) (*dto.InvoiceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	inv, err := s.invoiceRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := inv.Copy()
	updated.Status = req.Status
	if err := s.invoiceRepo.Update(ctx, updated); err != nil {
		return nil, err
	}

	s.logger.Infow("updated invoice status",
		"invoice_id", updated.ID,
		"from", inv.Status,
		"to", updated.Status,
	)
	return dto.NewInvoiceResponse(updated, s.currency), nil
}

// DownloadInvoice acknowledges a download request with a generated
// token. PDF rendering is a placeholder.
func (s *invoiceService) DownloadInvoice(ctx context.Context, id string) (*dto.DownloadInvoiceResponse, error) {
	inv, err := s.invoiceRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	return &dto.DownloadInvoiceResponse{
		InvoiceID:     inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		DownloadToken: types.GenerateShortIDWithPrefix(types.SHORT_ID_PREFIX_DOWNLOAD),
		Message:       "PDF rendering is not configured; download acknowledged",
	}, nil
}
