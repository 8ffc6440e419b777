package route

import (
	"net/http"

	"github.com/IceWhaleTech/CasaOS-EPCISService/pkg/config"
	"github.com/IceWhaleTech/CasaOS-EPCISService/pkg/utils/jwt"
	v2 "github.com/IceWhaleTech/CasaOS-EPCISService/route/v2"
	"github.com/labstack/echo/v4"
	echo_middleware "github.com/labstack/echo/v4/middleware"
)

const V2APIPath = "/v2/epcis"

func InitV2Router() http.Handler {
	EPCIS := v2.NewEPCIS()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use((echo_middleware.CORSWithConfig(echo_middleware.CORSConfig{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{echo.GET, echo.OPTIONS},
		AllowHeaders:  []string{echo.HeaderAuthorization, echo.HeaderContentLength, echo.HeaderContentType, echo.HeaderOrigin, echo.HeaderXRequestedWith},
		ExposeHeaders: []string{echo.HeaderContentLength},
		MaxAge:        172800,
	})))

	e.Use(echo_middleware.Recover())
	e.Use(echo_middleware.Gzip())

	if secret := []byte(config.CaptureInfo.Secret); len(secret) > 0 {
		e.Use(echo_middleware.KeyAuthWithConfig(echo_middleware.KeyAuthConfig{
			Skipper: func(c echo.Context) bool {
				return c.RealIP() == "::1" || c.RealIP() == "127.0.0.1"
			},
			KeyLookup:  "header:" + echo.HeaderAuthorization,
			AuthScheme: "Bearer",
			Validator: func(token string, c echo.Context) (bool, error) {
				claims, err := jwt.ParseToken(token, secret)
				if err != nil {
					return false, nil
				}
				c.Set("client", claims.Client)
				return true, nil
			},
		}))
	}

	g := e.Group(V2APIPath)
	g.GET("/events/:kind", EPCIS.CountEvents)
	g.GET("/events/:kind/:id", EPCIS.GetEvent)
	g.GET("/vocabularies/:scope", EPCIS.GetVocabularyID)
	g.GET("/vocabularies/:scope/:id", EPCIS.GetVocabularyURI)

	return e
}
