package common

const (
	SERVICENAME = "casaos-epcis-service"
	Version     = "0.1.0"
)
