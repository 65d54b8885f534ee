package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const (
	verbosityFlag = "verbosity"
	formatFlag    = "log-format"
	outputFlag    = "log-output"

	// LogVerbosityInfo is the default verbosity.
	LogVerbosityInfo = 0
	// LogVerbosityDebug enables debug logging.
	LogVerbosityDebug = 1
	// LogVerbosityTrace enables everything.
	LogVerbosityTrace = 2
)

type loggerCtxKey struct{}

// logFile is the file opened for a file path output, closed on reconfigure or Close.
var logFile *os.File

// Config represents the logging configuration.
type Config struct {
	// Verbosity specifies the logging verbosity level.
	Verbosity int
	// Format specifies the output log format (text or json).
	Format string
	// Output specifies the destination: stderr, stdout or a file path.
	Output string
}

// Configure will configure the logger from the supplied config.
func Configure(logConfig *Config) error {
	configureVerbosity(logConfig)

	switch strings.ToLower(logConfig.Format) {
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	case "text":
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return invalidLogFormatError{format: logConfig.Format}
	}

	output, err := openOutput(logConfig.Output)
	if err != nil {
		return err
	}

	if err := Close(); err != nil {
		return err
	}

	if file, ok := output.(*os.File); ok && file != os.Stderr && file != os.Stdout {
		logFile = file
	}

	logrus.SetOutput(output)

	return nil
}

// Close releases the log file, if one is open, and sends further output to stderr.
func Close() error {
	if logFile == nil {
		return nil
	}

	file := logFile
	logFile = nil

	logrus.SetOutput(os.Stderr)

	if err := file.Close(); err != nil {
		return fmt.Errorf("closing log file %s: %w", file.Name(), err)
	}

	return nil
}

// AddFlagsToCommand will add the logging flags to the command.
func AddFlagsToCommand(cmd *cobra.Command, config *Config) {
	cmd.PersistentFlags().IntVar(&config.Verbosity,
		verbosityFlag,
		LogVerbosityInfo,
		"The verbosity level of the logging. The level increases with the value (0 info, 1 debug, 2 trace).")
	cmd.PersistentFlags().StringVar(&config.Format,
		formatFlag,
		"text",
		"The format of the logging output. Can be 'text' or 'json'.")
	cmd.PersistentFlags().StringVar(&config.Output,
		outputFlag,
		"stderr",
		"The output for logging. Supply a file path or 'stderr' or 'stdout'.")
}

// WithLogger returns a new context with the supplied logger attached.
func WithLogger(ctx context.Context, logger *logrus.Entry) context.Context {
	return context.WithValue(ctx, loggerCtxKey{}, logger)
}

// GetLogger returns the logger from the context, falling back to the standard logger.
func GetLogger(ctx context.Context) *logrus.Entry {
	if ctx != nil {
		if logger, ok := ctx.Value(loggerCtxKey{}).(*logrus.Entry); ok {
			return logger
		}
	}

	return logrus.NewEntry(logrus.StandardLogger())
}

func configureVerbosity(logConfig *Config) {
	switch {
	case logConfig.Verbosity >= LogVerbosityTrace:
		logrus.SetLevel(logrus.TraceLevel)
	case logConfig.Verbosity == LogVerbosityDebug:
		logrus.SetLevel(logrus.DebugLevel)
	default:
		logrus.SetLevel(logrus.InfoLevel)
	}
}

func openOutput(output string) (io.Writer, error) {
	switch strings.ToLower(output) {
	case "":
		return nil, ErrLogOutputRequired
	case "stderr":
		return os.Stderr, nil
	case "stdout":
		return os.Stdout, nil
	default:
		file, err := os.OpenFile(output, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("opening log file %s: %w", output, err)
		}

		return file, nil
	}
}
