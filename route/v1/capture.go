package v1

import (
	"errors"
	"io"
	"net/http"

	"github.com/IceWhaleTech/CasaOS-EPCISService/common"
	"github.com/IceWhaleTech/CasaOS-EPCISService/model"
	"github.com/IceWhaleTech/CasaOS-EPCISService/pkg/utils/common_err"
	"github.com/IceWhaleTech/CasaOS-EPCISService/service"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

const multipartMemory = 32 << 20

const infoPage = `<html>
<head><title>EPCIS capture interface</title></head>
<body>
<p>This service captures EPCIS events made available through HTTP POST requests.</p>
<p>POST an EPCIS document either as the raw request body (Content-Type: application/xml)
or url-encoded in the form field <code>event</code>.</p>
<p>Version ` + common.Version + `</p>
</body>
</html>
`

// @Summary describe the capture interface
// @Router /capture [get]
func GetCaptureInfo(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(infoPage))
}

// @Summary capture an EPCIS document
// @Router /capture [post]
func PostCapture(c *gin.Context) {
	payload, err := readPayload(c)
	if err != nil {
		status, code := StatusOf(err)
		c.JSON(status, model.Result{Success: code, Message: err.Error()})
		return
	}

	report, err := service.MyService.Capture().CaptureDocument(c.Request.Context(), payload)
	if err != nil {
		status, code := StatusOf(err)
		c.JSON(status, model.Result{Success: code, Message: err.Error(), Data: gin.H{"request_id": report.RequestID}})
		return
	}

	c.JSON(http.StatusOK, model.Result{Success: common_err.SUCCESS, Message: common_err.GetMsg(common_err.SUCCESS), Data: report})
}

// readPayload accepts the document in the form field "event" or as the raw body.
func readPayload(c *gin.Context) ([]byte, error) {
	switch c.ContentType() {
	case binding.MIMEPOSTForm:
		if err := c.Request.ParseForm(); err != nil {
			return nil, err
		}
		return []byte(c.Request.PostForm.Get("event")), nil
	case binding.MIMEMultipartPOSTForm:
		if err := c.Request.ParseMultipartForm(multipartMemory); err != nil {
			return nil, err
		}
		return []byte(c.Request.FormValue("event")), nil
	}
	return io.ReadAll(c.Request.Body)
}

// StatusOf maps a capture error to its HTTP status and result code.
func StatusOf(err error) (int, int) {
	var tooLarge *http.MaxBytesError
	var xerr *service.ExtractionError

	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge, common_err.PAYLOAD_TOO_LARGE
	case errors.Is(err, service.ErrPolicyViolation):
		return http.StatusUnprocessableEntity, common_err.VOCABULARY_REJECTED
	case errors.Is(err, service.ErrMalformedDocument), errors.Is(err, service.ErrMissingEventList):
		return http.StatusBadRequest, common_err.MALFORMED_DOCUMENT
	case errors.As(err, &xerr):
		return http.StatusBadRequest, common_err.INVALID_EVENT
	case errors.Is(err, service.ErrPersist):
		return http.StatusInternalServerError, common_err.PERSIST_ERROR
	}
	return http.StatusInternalServerError, common_err.SERVICE_ERROR
}
