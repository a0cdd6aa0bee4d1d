package main

import (
	"fmt"
	"io"

	"github.com/cyphera/storefront/internal/checkout"
	"github.com/cyphera/storefront/internal/logger"
	"go.uber.org/zap"
)

// consolePresenter renders checkout feedback on a terminal
type consolePresenter struct {
	out io.Writer
}

func (p consolePresenter) Blur(field checkout.Field, target checkout.Target) {
	logger.Debug("Field visited", zap.String("field", string(field)), zap.String("target", target.ID))
}

func (p consolePresenter) ScrollIntoView(target checkout.Target) {
	fmt.Fprintf(p.out, "-> check %s\n", target.ID)
}

func (p consolePresenter) Focus(target checkout.Target) {
	logger.Debug("Focus", zap.String("target", target.ID))
}

func (p consolePresenter) ShowLoading() {
	fmt.Fprintln(p.out, "Processando pagamento...")
}

func (p consolePresenter) HideLoading() {}

func (p consolePresenter) Alert(message string) {
	fmt.Fprintf(p.out, "!! %s\n", message)
}

func (p consolePresenter) Redirect(url string) {
	fmt.Fprintf(p.out, "Pedido confirmado: %s\n", url)
}
