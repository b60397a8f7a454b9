package consts

const (
	TokenBlacklistKey = "auth:token:blacklist:"
	MediaTempKey      = "media:temp"
)
