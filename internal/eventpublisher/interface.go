// Package eventpublisher fans database document changes out to the handlers that react to them.
package eventpublisher

import (
	"context"

	"go-ecocidade/internal/eventpublisher/event"
)

type Publisher interface {
	Subscribe(event.EventWChannel)
	Unsubscribe(event.EventWChannel)
}

// Source is a Publisher fed by a database listener. Start blocks until the listener stops
// and closes every subscriber on return.
type Source interface {
	Publisher
	Start(ctx context.Context) error
}
