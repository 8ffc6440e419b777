package route

import (
	"os"

	"github.com/IceWhaleTech/CasaOS-EPCISService/pkg/config"
	v1 "github.com/IceWhaleTech/CasaOS-EPCISService/route/v1"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

func InitRouter() *gin.Engine {
	// check if environment variable is set
	if ginMode, success := os.LookupEnv("GIN_MODE"); success {
		gin.SetMode(ginMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(v1.WriteLog())
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	r.GET("/capture", v1.GetCaptureInfo)

	captureGroup := r.Group("/capture")
	if len(config.CaptureInfo.Secret) > 0 {
		captureGroup.Use(v1.JWT([]byte(config.CaptureInfo.Secret)))
	}
	captureGroup.Use(v1.LimitPayload(config.CaptureInfo.MaxPayloadSize))
	{
		captureGroup.POST("", v1.PostCapture)
	}

	return r
}
