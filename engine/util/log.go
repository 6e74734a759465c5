package util

import "strings"

var GLOBAL_LOG_LEVEL = LogLevelInfo
var GLOBAL_LOG_CATEGORIES = LogScene | LogSystem | LogAssets

type LogLevel int

const (
	LogLevelError LogLevel = 1 << iota
	LogLevelWarning
	LogLevelDebug
	LogLevelInfo
)

type LogCategory int

const (
	LogScene LogCategory = 1 << iota
	LogFoliage
	LogTerrain
	LogAssets
	LogOpenGL
	LogSystem

	LogAll = LogScene | LogFoliage | LogTerrain | LogAssets | LogOpenGL | LogSystem
)

var logLevelNames = map[string]LogLevel{
	"error":   LogLevelError,
	"warning": LogLevelWarning,
	"debug":   LogLevelDebug,
	"info":    LogLevelInfo,
}

var logCategoryNames = map[string]LogCategory{
	"scene":   LogScene,
	"foliage": LogFoliage,
	"terrain": LogTerrain,
	"assets":  LogAssets,
	"opengl":  LogOpenGL,
	"system":  LogSystem,
	"all":     LogAll,
}

func ParseLogLevel(name string) (LogLevel, bool) {
	lvl, ok := logLevelNames[strings.ToLower(name)]
	return lvl, ok
}

// ParseLogCategories combines the named categories into one filter mask.
// The second return value is the first name that was not recognized.
func ParseLogCategories(names []string) (LogCategory, string) {
	var mask LogCategory
	for _, name := range names {
		cat, ok := logCategoryNames[strings.ToLower(name)]
		if !ok {
			return mask, name
		}
		mask |= cat
	}
	return mask, ""
}

func log(cat LogCategory, lvl LogLevel, txt string) {
	if lvl > GLOBAL_LOG_LEVEL {
		return
	}
	if GLOBAL_LOG_CATEGORIES&cat == 0 {
		return
	}
	println(txt)
}

func LogSceneInfo(txt string) {
	log(LogScene, LogLevelInfo, txt)
}

func LogSceneDebug(txt string) {
	log(LogScene, LogLevelDebug, txt)
}

func LogSceneError(txt string) {
	log(LogScene, LogLevelError, txt)
}

func LogFoliageInfo(txt string) {
	log(LogFoliage, LogLevelInfo, txt)
}

func LogFoliageDebug(txt string) {
	log(LogFoliage, LogLevelDebug, txt)
}

func LogFoliageWarning(txt string) {
	log(LogFoliage, LogLevelWarning, txt)
}

func LogTerrainInfo(txt string) {
	log(LogTerrain, LogLevelInfo, txt)
}

func LogTerrainDebug(txt string) {
	log(LogTerrain, LogLevelDebug, txt)
}

func LogAssetsInfo(txt string) {
	log(LogAssets, LogLevelInfo, txt)
}

func LogAssetsDebug(txt string) {
	log(LogAssets, LogLevelDebug, txt)
}

func LogAssetsError(txt string) {
	log(LogAssets, LogLevelError, txt)
}

func LogSystemInfo(txt string) {
	log(LogSystem, LogLevelInfo, txt)
}

func LogSystemError(txt string) {
	log(LogSystem, LogLevelError, txt)
}

func LogGlInfo(txt string) {
	log(LogOpenGL, LogLevelInfo, txt)
}

func LogGlDebug(txt string) {
	log(LogOpenGL, LogLevelDebug, txt)
}

func LogGlError(txt string) {
	log(LogOpenGL, LogLevelError, txt)
}

func LogGlWarning(txt string) {
	log(LogOpenGL, LogLevelWarning, txt)
}
