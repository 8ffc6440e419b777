package model

type CommonModel struct {
	RuntimePath string
}

type APPModel struct {
	LogPath     string
	LogSaveName string
	LogFileExt  string
	DBPath      string
}

type ServerModel struct {
	Address string
}

type CaptureModel struct {
	InsertMissingVocabulary bool
	MaxPayloadSize          int64
	// Secret enables bearer-token checks on the capture endpoint when set.
	Secret string
}

type Result struct {
	Success int         `json:"success" example:"200"`
	Message string      `json:"message" example:"ok"`
	Data    interface{} `json:"data"`
}
