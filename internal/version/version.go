package version

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// Заполняются через -ldflags "-X labyrinth-server/internal/version.BuildDate=..."
var (
	BuildDate   string // YYYY-MM-DD (UTC)
	BuildCommit string
	BuildBranch string
	BuildCI     string
)

// Номер сборки - число дней от этой даты
var buildEpoch = time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

// VersionInfo - метаданные сборки для /version и логов старта.
type VersionInfo struct {
	BuildID    int    `json:"buildId"`
	BuildDate  string `json:"buildDate,omitempty"`
	Commit     string `json:"commit,omitempty"`
	Branch     string `json:"branch,omitempty"`
	CI         string `json:"ci,omitempty"`
	Calculated bool   `json:"calculated"`
	Error      string `json:"error,omitempty"`
}

// CalculateBuildID считает номер сборки по BuildDate.
func CalculateBuildID() (int, error) {
	return buildID(BuildDate)
}

func buildID(date string) (int, error) {
	if date == "" {
		return 0, fmt.Errorf("build date is empty")
	}

	t, err := time.ParseInLocation("2006-01-02", date, time.UTC)
	if err != nil {
		return 0, fmt.Errorf("invalid build date %q: %w", date, err)
	}
	if t.Before(buildEpoch) {
		return 0, fmt.Errorf("build date %s is before epoch", date)
	}

	// Обе даты в UTC, переходов на летнее время нет
	return int(t.Sub(buildEpoch).Hours() / 24), nil
}

// Info собирает метаданные. Ошибка даты не фатальна, она попадает в Error.
func Info() VersionInfo {
	info := VersionInfo{
		BuildDate: BuildDate,
		Commit:    BuildCommit,
		Branch:    BuildBranch,
		CI:        BuildCI,
	}

	id, err := CalculateBuildID()
	if err != nil {
		info.Error = err.Error()
		return info
	}

	info.BuildID = id
	info.Calculated = true
	return info
}

// Fields - метаданные для структурного лога.
func (v VersionInfo) Fields() logrus.Fields {
	return logrus.Fields{
		"build":  v.BuildID,
		"commit": coalesce(v.Commit, "unknown"),
		"branch": coalesce(v.Branch, "unknown"),
		"ci":     coalesce(v.CI, "local"),
	}
}

// String - строка для --version.
func String() string {
	info := Info()
	if !info.Calculated {
		return fmt.Sprintf("labyrinth build unknown (%s)", info.Error)
	}

	return fmt.Sprintf(
		"labyrinth build %d (%s) commit[%s] branch[%s] ci[%s]",
		info.BuildID,
		info.BuildDate,
		coalesce(info.Commit, "unknown"),
		coalesce(info.Branch, "unknown"),
		coalesce(info.CI, "local"),
	)
}

func coalesce(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
