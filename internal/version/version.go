// Package version хранит сведения о сборке, заданные через -ldflags:
//
//	-X github.com/vladislavdragonenkov/purchasing/internal/version.version=v1.2.0
package version

import "fmt"

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Build — сведения о сборке.
type Build struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Current возвращает сведения о текущей сборке.
func Current() Build {
	return Build{Version: version, Commit: commit, Date: date}
}

// String форматирует сборку для логов при старте.
func (b Build) String() string {
	return fmt.Sprintf("version=%s commit=%s date=%s", b.Version, b.Commit, b.Date)
}

// Short — версия с коротким хешем коммита, попадает в /healthz.
func (b Build) Short() string {
	c := b.Commit
	if len(c) > 7 {
		c = c[:7]
	}
	if c == "" || c == "unknown" {
		return b.Version
	}
	return b.Version + "+" + c
}
