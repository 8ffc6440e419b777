package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "epcis-service.conf")
	require.NoError(t, os.WriteFile(path, []byte(`
[app]
DBPath = /tmp/epcis
LogSaveName = capture

[server]
Address = 0.0.0.0:9000

[capture]
InsertMissingVocabulary = false
MaxPayloadSize = 1024
Secret = s3cret
`), 0o600))

	require.NoError(t, Load(path))

	assert.Equal(t, "/tmp/epcis", AppInfo.DBPath)
	assert.Equal(t, "capture", AppInfo.LogSaveName)
	assert.Equal(t, "log", AppInfo.LogFileExt)
	assert.Equal(t, "0.0.0.0:9000", ServerInfo.Address)
	assert.False(t, CaptureInfo.InsertMissingVocabulary)
	assert.Equal(t, int64(1024), CaptureInfo.MaxPayloadSize)
	assert.Equal(t, "s3cret", CaptureInfo.Secret)
}

func TestLoadMissingFileKeepsDefaults(t *testing.T) {
	before := *CommonInfo
	require.NoError(t, Load(filepath.Join(t.TempDir(), "absent.conf")))
	assert.Equal(t, before, *CommonInfo)
}

func TestWriteURLFile(t *testing.T) {
	before := CommonInfo.RuntimePath
	t.Cleanup(func() { CommonInfo.RuntimePath = before })

	path := filepath.Join(t.TempDir(), "epcis-service.conf")
	require.NoError(t, os.WriteFile(path, []byte("[common]\nRuntimePath = "+filepath.Join(t.TempDir(), "run")+"\n"), 0o600))
	require.NoError(t, Load(path))

	urlFile, err := WriteURLFile("127.0.0.1:8090")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(CommonInfo.RuntimePath, URLFileName), urlFile)

	data, err := os.ReadFile(urlFile)
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:8090", string(data))
}
