package email

import (
	"context"
	"sync"

	"github.com/dropDatabas3/cursomvc/internal/observability/logger"
)

// Dispatcher es lo que ven los services: mensajes de negocio, no MIME.
type Dispatcher interface {
	// SendNewPassword notifica una contraseña generada. No bloquea al caller.
	SendNewPassword(ctx context.Context, vars NewPasswordVars)
}

// AsyncDispatcher renderiza y envía en una goroutine (fire-and-forget).
// Las fallas sólo se loguean; el caller nunca las ve.
type AsyncDispatcher struct {
	sender Sender
	wg     sync.WaitGroup
}

func NewAsyncDispatcher(s Sender) *AsyncDispatcher {
	return &AsyncDispatcher{sender: s}
}

func (d *AsyncDispatcher) SendNewPassword(ctx context.Context, vars NewPasswordVars) {
	// el contexto del request se cancela al responder: sólo nos llevamos el logger
	log := logger.FromWithFields(ctx, logger.Component("email"), logger.Email(vars.Email))

	subject, html, text, err := RenderNewPassword(vars)
	if err != nil {
		log.Error("render new password email failed", logger.Err(err))
		return
	}

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		if err := d.sender.Send(vars.Email, subject, html, text); err != nil {
			log.Warn("new password email not sent", logger.Err(err))
		}
	}()
}

// Wait espera los envíos en vuelo. Se usa en el shutdown y en tests.
func (d *AsyncDispatcher) Wait() {
	d.wg.Wait()
}
