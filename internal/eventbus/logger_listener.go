package eventbus

import (
	"context"

	"github.com/annel0/voxel-world/internal/logging"
)

// StartLoggingListener подписывается на все события мира и пишет их в лог.
// Функция неблокирующая.
func StartLoggingListener(bus EventBus) error {
	_, err := bus.Subscribe(context.Background(), Filter{}, func(ctx context.Context, ev *Envelope) {
		logging.LogDebug("[EventBus] %s %s src=%s prio=%d meta=%v",
			ev.ID, ev.EventType, ev.Source, ev.Priority, ev.Metadata)
	})
	if err != nil {
		return err
	}
	logging.LogInfo("LoggingListener: подписка на все события активирована")
	return nil
}
