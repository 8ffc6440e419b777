package systemd

import (
	"github.com/IceWhaleTech/CasaOS-EPCISService/pkg/utils/logger"
	"github.com/coreos/go-systemd/daemon"
	"go.uber.org/zap"
)

// NotifyReady tells systemd the service is up. It reports whether a
// notification socket was found.
func NotifyReady(name string) bool {
	supported, err := daemon.SdNotify(false, daemon.SdNotifyReady)
	if err != nil {
		logger.Error("Failed to notify systemd that "+name+" is ready", zap.Any("error", err))
		return false
	}
	if supported {
		logger.Info("Notified systemd that " + name + " is ready")
	} else {
		logger.Info("This process is not running as a systemd service.")
	}
	return supported
}
