package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"text/template"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"
)

var (
	Lock sync.RWMutex

	initLock  sync.Mutex
	hasInit   bool
	initError error
)

func IsDebugLoggingEnabled() bool {
	return os.Getenv("DEBUG_LOG") == "true"
}

// Dir is where the config file and history database live unless configured otherwise.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "elapsed")
}

func SetDefaults() {
	viper.SetDefault(KeyLogLevel, zerolog.LevelInfoValue)
	viper.SetDefault(KeyOutputMode, OutputModePlain)
	viper.SetDefault(KeyOutputTemplate, DefaultOutputTemplate)
	viper.SetDefault(KeyHistoryEnabled, true)
	viper.SetDefault(KeyHistoryFile, filepath.Join(Dir(), "history.db"))
	viper.SetDefault(KeyHistoryLimit, DefaultHistoryLimit)
}

func Init() error {
	initLock.Lock()
	defer initLock.Unlock()

	if hasInit {
		return initError
	}
	hasInit = true

	Lock.Lock()
	defer Lock.Unlock()

	SetDefaults()

	configFilePath := os.Getenv("CONFIG_FILE_PATH")
	if configFilePath == "" {
		viper.SetConfigName("elapsed")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(Dir())
		viper.AddConfigPath(".")
	} else {
		viper.SetConfigFile(configFilePath)
	}

	err := viper.ReadInConfig()
	if err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			log.Debug().Msg("no config file found; using defaults")
			return nil
		}

		log.Error().Str("config_file", viper.ConfigFileUsed()).Err(err).Msg("could not read config")
		initError = fmt.Errorf("config: Init: could not read config: %w", err)
		return initError
	}
	log.Debug().Str("config_file_path", viper.ConfigFileUsed()).Msg("initialized configuration")

	return nil
}

func ValidateConfig() []string {
	var errorsFound []string

	if level := viper.GetString(KeyLogLevel); level != "" {
		if _, err := zerolog.ParseLevel(level); err != nil {
			log.Error().Str(KeyLogLevel, level).Msg("invalid log level")
			errorsFound = append(errorsFound, fmt.Sprintf("invalid `%s`: %s", KeyLogLevel, level))
		}
	}

	if mode := viper.GetString(KeyOutputMode); !slices.Contains(OutputModes, mode) {
		log.Error().Str(KeyOutputMode, mode).Msg("invalid output mode")
		errorsFound = append(errorsFound, fmt.Sprintf("invalid `%s`; must be one of %s", KeyOutputMode, strings.Join(OutputModes, ", ")))
	}

	if tmpl := viper.GetString(KeyOutputTemplate); tmpl == "" {
		log.Error().Msg("output template is empty")
		errorsFound = append(errorsFound, fmt.Sprintf("`%s` is not set", KeyOutputTemplate))
	} else if _, err := template.New("output").Parse(tmpl); err != nil {
		log.Error().Err(err).Msg("output template does not parse")
		errorsFound = append(errorsFound, fmt.Sprintf("`%s` is not a valid template", KeyOutputTemplate))
	}

	if viper.GetBool(KeyHistoryEnabled) && viper.GetString(KeyHistoryFile) == "" {
		log.Error().Msg("history is enabled but history.file is not set")
		errorsFound = append(errorsFound, fmt.Sprintf("`%s` is not set", KeyHistoryFile))
	}

	if limit := viper.GetInt(KeyHistoryLimit); limit <= 0 {
		log.Error().Int(KeyHistoryLimit, limit).Msg("invalid history limit")
		errorsFound = append(errorsFound, fmt.Sprintf("`%s` must be positive", KeyHistoryLimit))
	}

	return errorsFound
}

func cleanDefaultOutput(everything map[string]any) {
	outputBlock, found := everything["output"].(map[string]any)
	if !found {
		return
	}

	if outputBlock["template"] == DefaultOutputTemplate {
		delete(outputBlock, "template")
	}

	if len(outputBlock) == 0 {
		delete(everything, "output")
	}
}

// WriteCurrentConfigState writes the effective configuration to the file it was read from, or
// to fallbackPath when no config file was loaded. It returns the path written.
func WriteCurrentConfigState(fallbackPath string) (string, error) {
	Lock.Lock()
	defer Lock.Unlock()

	configFileName := viper.ConfigFileUsed()
	mode := os.FileMode(0o600)
	if configFileName == "" {
		configFileName = fallbackPath
		if err := os.MkdirAll(filepath.Dir(configFileName), 0o700); err != nil {
			log.Error().Err(err).Str("config_file_path", configFileName).Msg("could not create config directory")
			return "", fmt.Errorf("config: WriteCurrentConfigState: could not create config directory: %w", err)
		}
	} else {
		stats, err := os.Stat(configFileName)
		if err != nil {
			log.Error().Err(err).Msg("could not stat file")
			return "", fmt.Errorf("config: WriteCurrentConfigState: could not stat config file: %w", err)
		}
		mode = stats.Mode()
	}

	everything := viper.AllSettings()
	cleanDefaultOutput(everything)

	data, err := yaml.Marshal(everything)
	if err != nil {
		log.Error().Err(err).Msg("could not marshall")
		return "", fmt.Errorf("config: WriteCurrentConfigState: could not marshal config: %w", err)
	}

	err = os.WriteFile(configFileName, data, mode)
	if err != nil {
		log.Error().Err(err).Msg("could not write file")
		return "", fmt.Errorf("config: WriteCurrentConfigState: could not write config: %w", err)
	}

	log.Info().Str("config_file_path", configFileName).Int("bytes_written", len(data)).Msg("wrote config file")

	return configFileName, nil
}
