package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config корневая структура конфигурации приложения.

type Config struct {
	World   WorldConfig   `yaml:"world"`
	Sim     SimConfig     `yaml:"sim"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// WorldConfig — настройки ядра мира и генерации ландшафта.
type WorldConfig struct {
	Seed             int64 `yaml:"seed"`
	VisibilityRadius int   `yaml:"visibility_radius"`
	GenerationMargin int   `yaml:"generation_margin"`
	MaxHeight        int   `yaml:"max_height"`
	Octaves          int   `yaml:"octaves"`
	SmoothnessMin    int   `yaml:"smoothness_min"`
	SmoothnessMax    int   `yaml:"smoothness_max"`
}

// SimConfig — настройки кадрового цикла worldsim.
type SimConfig struct {
	FramesPerSec     int     `yaml:"frames_per_sec"`
	TimeBudgetMs     int     `yaml:"time_budget_ms"`
	GameSpeed        float64 `yaml:"game_speed"`
	Gravity          float64 `yaml:"gravity"`
	TerminalVelocity float64 `yaml:"terminal_velocity"`
	MicroSteps       int     `yaml:"micro_steps"`
}

// MetricsConfig — настройки экспорта метрик.
type MetricsConfig struct {
	Port int `yaml:"port"`
}

// GetSeed возвращает сид мира с приоритетом: config -> env -> default
func (w *WorldConfig) GetSeed() int64 {
	if w.Seed != 0 {
		return w.Seed
	}
	if envVal := os.Getenv("WORLD_SEED"); envVal != "" {
		if seed, err := strconv.ParseInt(envVal, 10, 64); err == nil {
			return seed
		}
	}
	return 1
}

// GetVisibilityRadius возвращает радиус видимости в чанках
func (w *WorldConfig) GetVisibilityRadius() int {
	if w.VisibilityRadius > 0 {
		return w.VisibilityRadius
	}
	return 4
}

// GetGenerationMargin возвращает запас упреждающей генерации в чанках
func (w *WorldConfig) GetGenerationMargin() int {
	if w.GenerationMargin > 0 {
		return w.GenerationMargin
	}
	return 3
}

// GetFramesPerSec возвращает частоту кадров симуляции
func (s *SimConfig) GetFramesPerSec() int {
	if s.FramesPerSec > 0 {
		return s.FramesPerSec
	}
	return 60
}

// GetTimeBudgetMs возвращает бюджет времени на разбор очередей за кадр
func (s *SimConfig) GetTimeBudgetMs() int {
	if s.TimeBudgetMs > 0 {
		return s.TimeBudgetMs
	}
	return 16
}

// GetGameSpeed возвращает множитель скорости симуляции
func (s *SimConfig) GetGameSpeed() float64 {
	if s.GameSpeed > 0 {
		return s.GameSpeed
	}
	return 4.0
}

// GetGravity возвращает ускорение свободного падения
func (s *SimConfig) GetGravity() float64 {
	if s.Gravity > 0 {
		return s.Gravity
	}
	return 0.5
}

// GetTerminalVelocity возвращает предельную скорость падения
func (s *SimConfig) GetTerminalVelocity() float64 {
	if s.TerminalVelocity > 0 {
		return s.TerminalVelocity
	}
	return 10.0
}

// GetMicroSteps возвращает число микрошагов физики на кадр.
// Движение применяется маленькими порциями, иначе можно провалиться
// сквозь блок: система заметит пересечение слишком поздно.
func (s *SimConfig) GetMicroSteps() int {
	if s.MicroSteps > 0 {
		return s.MicroSteps
	}
	return 10
}

// GetMetricsPort возвращает порт Prometheus с поддержкой fallback значений
func (m *MetricsConfig) GetMetricsPort() int {
	return getPortWithEnvFallback(m.Port, "WORLD_METRICS_PORT", 2112)
}

// getPortWithEnvFallback возвращает порт с приоритетом: config -> env -> default
func getPortWithEnvFallback(configPort int, envVar string, defaultPort int) int {
	if configPort > 0 {
		return configPort
	}

	if envVal := os.Getenv(envVar); envVal != "" {
		if port, err := strconv.Atoi(envVal); err == nil && port > 0 {
			return port
		}
	}

	return defaultPort
}

// Load читает YAML файл конфигурации.
// Если path == "", пытается прочитать из ENV WORLD_CONFIG или возвращает nil, nil.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("WORLD_CONFIG")
		if path == "" {
			return nil, nil // конфиг не задан — использовать дефолты
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
