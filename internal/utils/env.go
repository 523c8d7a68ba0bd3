package utils

import (
  "os"
  "strconv"
  "github.com/lumenlearn/content-backend/internal/logger"
)

// debug logs through an optional logger; callers may pass nil when no logger
// has been constructed yet.
func debug(log *logger.Logger, key, msg string, keysAndValues ...interface{}) {
  if log == nil {
    return
  }
  log.With("env_var", key).Debug(msg, keysAndValues...)
}

func GetEnv(key, defaultVal string, log *logger.Logger) string {
  val, ok := os.LookupEnv(key)
  if !ok {
    debug(log, key, "Environment variable not set, using default", "default", defaultVal)
    return defaultVal
  }
  debug(log, key, "Environment variable set", "value", val)
  return val
}

func GetEnvAsInt(key string, defaultVal int, log *logger.Logger) int {
  valStr, ok := os.LookupEnv(key)
  if !ok {
    debug(log, key, "Environment variable not set, using default", "default", defaultVal)
    return defaultVal
  }
  i, err := strconv.Atoi(valStr)
  if err != nil {
    debug(log, key, "Environment variable is not an int, using default", "provided", valStr, "default", defaultVal, "error", err)
    return defaultVal
  }
  debug(log, key, "Environment variable set", "value", i)
  return i
}
