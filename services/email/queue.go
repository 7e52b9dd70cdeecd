package emailsvc

import (
	"sync"

	"github.com/steliasaustin/outreach/core"
)

// queuedService decouples callers from the underlying sender: messages are
// buffered on a channel and delivered by a single worker goroutine, so a slow
// provider never blocks a request. When the buffer is full the message is
// dropped and logged rather than blocking.
type queuedService struct {
	inner  core.EmailService
	logger core.Logger

	queue chan *core.EmailMessage
	done  chan struct{}
	once  sync.Once
}

var _ core.EmailService = (*queuedService)(nil)

func NewQueuedService(inner core.EmailService, logger core.Logger, size int) *queuedService {
	if size <= 0 {
		size = 64
	}
	svc := &queuedService{
		inner:  inner,
		logger: logger,
		queue:  make(chan *core.EmailMessage, size),
		done:   make(chan struct{}),
	}
	go svc.run()
	return svc
}

func (svc *queuedService) SendMessages(messages ...*core.EmailMessage) {
	for _, msg := range messages {
		select {
		case svc.queue <- msg:
		default:
			svc.logger.Warn("email queue full, dropping message: " + msg.Subject)
		}
	}
}

func (svc *queuedService) run() {
	for msg := range svc.queue {
		svc.inner.SendMessages(msg)
	}
	close(svc.done)
}

// Stop drains the queue and waits for the worker to exit.
func (svc *queuedService) Stop() {
	svc.once.Do(func() { close(svc.queue) })
	<-svc.done
}
