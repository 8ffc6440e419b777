package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/IceWhaleTech/CasaOS-EPCISService/model"
	"github.com/IceWhaleTech/CasaOS-EPCISService/pkg/utils/file"
	"gopkg.in/ini.v1"
)

const (
	USERCONFIGURL = "/etc/casaos/epcis-service.conf"
	URLFileName   = "epcis-service.url"
)

// models with default values

var CommonInfo = &model.CommonModel{
	RuntimePath: "/var/run/casaos",
}

var AppInfo = &model.APPModel{
	DBPath:      "/var/lib/casaos",
	LogPath:     "/var/log/casaos",
	LogSaveName: "epcis",
	LogFileExt:  "log",
}

var ServerInfo = &model.ServerModel{
	Address: "127.0.0.1:8090",
}

var CaptureInfo = &model.CaptureModel{
	InsertMissingVocabulary: true,
	MaxPayloadSize:          10 << 20,
}

var Cfg *ini.File

func InitSetup(config string) {
	configDir := USERCONFIGURL
	if len(config) > 0 {
		configDir = config
	}

	if err := Load(configDir); err != nil {
		fmt.Printf("Fail to read file: %v", err)
		os.Exit(1)
	}
}

// Load reads the ini file at path over the defaults above. A missing file
// keeps the defaults.
func Load(path string) error {
	var err error

	if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
		Cfg = ini.Empty()
	} else {
		Cfg, err = ini.Load(path)
		if err != nil {
			return err
		}
	}

	mapTo("common", CommonInfo)
	mapTo("app", AppInfo)
	mapTo("server", ServerInfo)
	mapTo("capture", CaptureInfo)
	return nil
}

func mapTo(section string, v interface{}) {
	err := Cfg.Section(section).MapTo(v)
	if err != nil {
		log.Fatalf("Cfg.MapTo %s err: %v", section, err)
	}
}

// WriteURLFile publishes the service address as RuntimePath/epcis-service.url
// and returns the file's path.
func WriteURLFile(address string) (string, error) {
	path := filepath.Join(CommonInfo.RuntimePath, URLFileName)
	if err := file.WriteAtomic(path, []byte("http://"+address), 0o644); err != nil {
		return "", err
	}
	return path, nil
}
