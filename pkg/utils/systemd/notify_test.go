package systemd

import (
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifyReadyOutsideSystemd(t *testing.T) {
	t.Setenv("NOTIFY_SOCKET", "")

	assert.False(t, NotifyReady("epcis service"))
}

func TestNotifyReadySendsReady(t *testing.T) {
	addr := &net.UnixAddr{Name: filepath.Join(t.TempDir(), "notify.sock"), Net: "unixgram"}
	conn, err := net.ListenUnixgram("unixgram", addr)
	require.NoError(t, err)
	defer conn.Close()

	t.Setenv("NOTIFY_SOCKET", addr.Name)

	assert.True(t, NotifyReady("epcis service"))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	buf := make([]byte, 64)
	n, err := conn.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "READY=1", string(buf[:n]))
}
