package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"foundry.dev/pkg/foundry/internal/adapter"
)

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "foundry"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	cacheDirFlagName    = "cache-dir"
	noCacheFlagName     = "no-cache"
	excludeFlagName     = "exclude"
	patternFlagName     = "pattern"
	maxStepsFlagName    = "max-steps"
	formatFlagName      = "format"
	verboseFlagName     = "verbose"
	logFileFlagName     = "log-file"
	runParallelFlagName = "parallel"
	entrypointFlagName  = "entrypoint"

	cacheDirConfigKey        = "cache.dir"
	runParallelConfigKey     = "run.parallel"
	maxStepsConfigKey        = "run.max_steps"
	excludeConfigKey         = "paths.exclude"
	patternConfigKey         = "paths.pattern"
	compilerCommandConfigKey = "compiler.command"
	compilerTimeoutConfigKey = "compiler.timeout"
	formatConfigKey          = "output.format"

	defaultCacheDir        = ".foundry"
	defaultNoCache         = false
	defaultRunParallel     = 0
	defaultMaxSteps        = 1_000_000
	defaultTestFilePattern = adapter.DefaultTestFilePattern
	defaultFormat          = "text"
	defaultCompilerTimeout = 30 * time.Second

	envPrefix = "FOUNDRY"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ".foundry.log"
	defaultLogLevel      = int(slog.LevelInfo)
	defaultLogVerbose    = false
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

var globalLogger *slog.Logger

func init() {
	viper.SetConfigName(configBaseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configFolderPath)
	viper.SetConfigFile(filepath.Join(configFolderPath, configFileName))
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	setConfigDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
			return
		}

		fmt.Fprintf(os.Stderr, "warning: ignoring %s: %v\n", configFileName, err)
	}
}

func setConfigDefaults() {
	viper.SetDefault(configVersionKey, currentConfigVersion)
	viper.SetDefault(cacheDirConfigKey, defaultCacheDir)
	viper.SetDefault(noCacheFlagName, defaultNoCache)
	viper.SetDefault(runParallelConfigKey, defaultRunParallel)
	viper.SetDefault(maxStepsConfigKey, defaultMaxSteps)
	viper.SetDefault(excludeConfigKey, []string{})
	viper.SetDefault(patternConfigKey, defaultTestFilePattern)
	viper.SetDefault(compilerCommandConfigKey, []string{})
	viper.SetDefault(compilerTimeoutConfigKey, int64(defaultCompilerTimeout.Seconds()))
	viper.SetDefault(formatConfigKey, defaultFormat)

	// Logging defaults (used by config/env and as fallbacks for flags).
	viper.SetDefault(logFilenameKey, defaultLogFilename)
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logVerboseKey, defaultLogVerbose)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)
}

// runThreads is the configured worker count; zero or less means one worker
// per CPU.
func runThreads() int {
	threads := viper.GetInt(runParallelConfigKey)
	if threads <= 0 {
		return runtime.NumCPU()
	}

	return threads
}

// maxSteps is the configured step budget. Negative values disable it.
func maxSteps() uint64 {
	steps := viper.GetInt64(maxStepsConfigKey)
	if steps < 0 {
		return 0
	}

	return uint64(steps)
}

// compilerCommand is the configured compiler command line, defaulting to the
// compile subcommand of the running binary.
func compilerCommand() ([]string, error) {
	command := viper.GetStringSlice(compilerCommandConfigKey)
	if len(command) > 0 {
		return command, nil
	}

	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("locate foundry executable: %w", err)
	}

	return []string{exe, compileCmdName}, nil
}

func compilerTimeout() time.Duration {
	seconds := viper.GetInt64(compilerTimeoutConfigKey)
	if seconds <= 0 {
		return defaultCompilerTimeout
	}

	return time.Duration(seconds) * time.Second
}

func parseSlogLevel(value string, defaultLevel slog.Level) slog.Level {
	level := strings.ToLower(strings.TrimSpace(value))
	if level == "" {
		return defaultLevel
	}

	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	// Allow numeric slog levels as well (e.g. -4 for debug).
	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}

	return defaultLevel
}

// configureLogger configures the global slog logger.
//
// By default it logs at the configured level; if verbose is true it logs at Debug.
func configureLogger(logPath string, verbose bool) {
	if strings.TrimSpace(logPath) == "" {
		logPath = viper.GetString(logFilenameKey)
	}

	if strings.TrimSpace(logPath) == "" {
		logPath = defaultLogFilename
	}

	var logLevel slog.Level
	if verbose {
		logLevel = slog.LevelDebug
	} else {
		logLevel = parseSlogLevel(viper.GetString(logLevelKey), slog.LevelInfo)
	}

	logWriter := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    viper.GetInt(logMaxSizeKey),
		MaxBackups: viper.GetInt(logMaxBackupsKey),
		MaxAge:     viper.GetInt(logMaxAgeKey),
		Compress:   viper.GetBool(logCompressKey),
	}

	handler := slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		AddSource: true,
		Level:     logLevel,
	})

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)
}
