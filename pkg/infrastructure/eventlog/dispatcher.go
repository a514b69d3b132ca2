package eventlog

import (
	log "github.com/sirupsen/logrus"

	"github.com/arjunkhanna514-star/apexclothing/pkg/domain/service"
)

// Dispatcher is the display-layer stand-in for a headless deployment:
// every domain event is logged synchronously as it happens.
type Dispatcher struct{}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

func (d *Dispatcher) Dispatch(event service.Event) error {
	log.WithFields(log.Fields{
		"event":   event.Type(),
		"payload": event,
	}).Info("domain event")
	return nil
}
