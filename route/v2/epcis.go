package v2

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/IceWhaleTech/CasaOS-EPCISService/model"
	"github.com/IceWhaleTech/CasaOS-EPCISService/pkg/utils/common_err"
	"github.com/IceWhaleTech/CasaOS-EPCISService/pkg/utils/logger"
	"github.com/IceWhaleTech/CasaOS-EPCISService/service"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type EPCIS struct{}

func NewEPCIS() *EPCIS {
	return &EPCIS{}
}

type EventResponse struct {
	Kind  model.EventKind       `json:"kind"`
	ID    int64                 `json:"id"`
	Event model.StructuredEvent `json:"event"`
}

type VocabularyResponse struct {
	Scope model.VocabularyScope `json:"scope"`
	ID    int64                 `json:"id"`
	URI   string                `json:"uri"`
}

func (s *EPCIS) GetEvent(ctx echo.Context) error {
	kind, ok := model.ParseEventKind(ctx.Param("kind"))
	if !ok {
		return invalidParams(ctx, "unknown event kind")
	}
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		return invalidParams(ctx, "id must be an integer")
	}

	ev, err := service.MyService.Event().GetEvent(ctx.Request().Context(), kind, id)
	if errors.Is(err, service.ErrEventNotFound) {
		return ctx.JSON(http.StatusNotFound, model.Result{Success: common_err.EVENT_NOT_EXIST, Message: common_err.GetMsg(common_err.EVENT_NOT_EXIST)})
	}
	if err != nil {
		return serviceError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, model.Result{Success: common_err.SUCCESS, Message: common_err.GetMsg(common_err.SUCCESS), Data: EventResponse{Kind: kind, ID: id, Event: ev}})
}

func (s *EPCIS) CountEvents(ctx echo.Context) error {
	kind, ok := model.ParseEventKind(ctx.Param("kind"))
	if !ok {
		return invalidParams(ctx, "unknown event kind")
	}

	count, err := service.MyService.Event().CountEvents(ctx.Request().Context(), kind)
	if err != nil {
		return serviceError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, model.Result{Success: common_err.SUCCESS, Message: common_err.GetMsg(common_err.SUCCESS), Data: map[string]interface{}{"kind": kind, "count": count}})
}

// GetVocabularyID looks uri up in scope. It never inserts.
func (s *EPCIS) GetVocabularyID(ctx echo.Context) error {
	scope, ok := model.ParseVocabularyScope(ctx.Param("scope"))
	if !ok {
		return invalidParams(ctx, "unknown vocabulary scope")
	}
	uri := ctx.QueryParam("uri")
	if len(uri) == 0 {
		return invalidParams(ctx, "uri is required")
	}

	id, err := service.MyService.Vocabulary().GetID(ctx.Request().Context(), scope, uri)
	if errors.Is(err, service.ErrVocabularyNotFound) {
		return ctx.JSON(http.StatusNotFound, model.Result{Success: common_err.VOCABULARY_NOT_EXIST, Message: common_err.GetMsg(common_err.VOCABULARY_NOT_EXIST)})
	}
	if err != nil {
		return serviceError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, model.Result{Success: common_err.SUCCESS, Message: common_err.GetMsg(common_err.SUCCESS), Data: VocabularyResponse{Scope: scope, ID: id, URI: uri}})
}

func (s *EPCIS) GetVocabularyURI(ctx echo.Context) error {
	scope, ok := model.ParseVocabularyScope(ctx.Param("scope"))
	if !ok {
		return invalidParams(ctx, "unknown vocabulary scope")
	}
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		return invalidParams(ctx, "id must be an integer")
	}

	uri, err := service.MyService.Vocabulary().GetURI(ctx.Request().Context(), scope, id)
	if errors.Is(err, service.ErrVocabularyNotFound) {
		return ctx.JSON(http.StatusNotFound, model.Result{Success: common_err.VOCABULARY_NOT_EXIST, Message: common_err.GetMsg(common_err.VOCABULARY_NOT_EXIST)})
	}
	if err != nil {
		return serviceError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, model.Result{Success: common_err.SUCCESS, Message: common_err.GetMsg(common_err.SUCCESS), Data: VocabularyResponse{Scope: scope, ID: id, URI: uri}})
}

func invalidParams(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, model.Result{Success: common_err.INVALID_PARAMS, Message: message})
}

func serviceError(ctx echo.Context, err error) error {
	logger.Error("read api failed", zap.String("path", ctx.Path()), zap.Error(err))
	return ctx.JSON(http.StatusInternalServerError, model.Result{Success: common_err.SERVICE_ERROR, Message: err.Error()})
}
