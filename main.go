package main

import (
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/IceWhaleTech/CasaOS-EPCISService/common"
	"github.com/IceWhaleTech/CasaOS-EPCISService/pkg/config"
	"github.com/IceWhaleTech/CasaOS-EPCISService/pkg/sqlite"
	"github.com/IceWhaleTech/CasaOS-EPCISService/pkg/utils/logger"
	"github.com/IceWhaleTech/CasaOS-EPCISService/pkg/utils/systemd"
	"github.com/IceWhaleTech/CasaOS-EPCISService/route"
	"github.com/IceWhaleTech/CasaOS-EPCISService/service"
	"go.uber.org/zap"
)

func init() {
	configFlag := flag.String("c", "", "config address")
	dbFlag := flag.String("db", "", "db path")
	versionFlag := flag.Bool("v", false, "version")

	flag.Parse()

	if *versionFlag {
		fmt.Printf("v%s\n", common.Version)
		os.Exit(0)
	}

	config.InitSetup(*configFlag)

	logger.LogInit(config.AppInfo.LogPath, config.AppInfo.LogSaveName, config.AppInfo.LogFileExt)

	if len(*dbFlag) == 0 {
		*dbFlag = config.AppInfo.DBPath
	}

	sqliteDB := sqlite.GetDb(*dbFlag)
	service.MyService = service.NewService(sqliteDB, service.PolicyFromConfig(config.CaptureInfo.InsertMissingVocabulary))
}

func main() {
	defer logger.Sync()

	mux := http.NewServeMux()
	mux.Handle(route.V2APIPath+"/", route.InitV2Router())
	mux.Handle("/", route.InitRouter())

	listener, err := net.Listen("tcp", config.ServerInfo.Address)
	if err != nil {
		panic(err)
	}

	if urlFilePath, err := config.WriteURLFile(listener.Addr().String()); err != nil {
		logger.Error("error when writing to url file", zap.Error(err), zap.String("runtime_path", config.CommonInfo.RuntimePath))
	} else {
		logger.Info("url file written", zap.String("path", urlFilePath))
	}

	systemd.NotifyReady("epcis service")

	logger.Info("EPCIS service is listening...",
		zap.Any("address", listener.Addr().String()),
		zap.Bool("insert_missing_vocabulary", config.CaptureInfo.InsertMissingVocabulary),
		zap.Bool("token_required", len(config.CaptureInfo.Secret) > 0))

	s := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second, // fix G112: Potential slowloris attack (see https://github.com/securego/gosec)
	}

	err = s.Serve(listener) // not using http.serve() to fix G114: Use of net/http serve function that has no support for setting timeouts (see https://github.com/securego/gosec)
	if err != nil {
		panic(err)
	}
}
