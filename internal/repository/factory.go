package repository

import (
	"github.com/facturo/facturo/internal/domain/invoice"
	"github.com/facturo/facturo/internal/logger"
	"github.com/facturo/facturo/internal/repository/memory"
)

func NewInvoiceRepository(logger *logger.Logger) invoice.Repository {
	return memory.NewInvoiceRepository(logger)
}
