package version

import (
	"fmt"
	"runtime/debug"
	"strings"
	"time"
)

// Valores padrão (sobrescritos por ldflags ou por build info)
var Version = "0.0.0-dev"
var Commit = ""
var BuildTime = ""

const devVersion = "0.0.0-dev"

// appName identifica a ferramenta no user agent das chamadas AWS.
const appName = "aws-cost-report"

// buildSetting procura uma chave nas configurações embutidas pelo Go.
type buildSetting func(key string) (string, bool)

// populateFromBuildInfo preenche Version/Commit/BuildTime a partir do build
// info (vcs.*) quando ldflags não definiu uma versão.
func populateFromBuildInfo() {
	bi, ok := debug.ReadBuildInfo()
	if !ok || bi == nil {
		return
	}
	applyBuildSettings(func(key string) (string, bool) {
		for _, s := range bi.Settings {
			if s.Key == key {
				return s.Value, true
			}
		}
		return "", false
	})
}

func applyBuildSettings(get buildSetting) {
	// Se já temos uma versão "confiável" de ldflags, não mexe.
	if Version != "" && Version != devVersion {
		return
	}

	if Commit == "" {
		if rev, ok := get("vcs.revision"); ok && len(rev) >= 7 {
			Commit = rev[:7]
		}
	}

	if BuildTime == "" {
		if t, ok := get("vcs.time"); ok && t != "" {
			if ts, err := time.Parse(time.RFC3339, t); err == nil {
				BuildTime = ts.UTC().Format("2006-01-02T15:04:05Z")
			}
		}
	}

	if tag, ok := get("vcs.tag"); ok && tag != "" {
		Version = strings.TrimPrefix(tag, "v")
		if m, _ := get("vcs.modified"); strings.EqualFold(m, "true") {
			Version += "-dirty"
		}
	}
}

func init() {
	populateFromBuildInfo()
}

// FormatVersion retorna a versão formatada com commit e build time.
// Ex.: "1.2.3 (commit: abc1234, built at: 2025-10-23T10:20:30Z)"
func FormatVersion() string {
	ver := Version
	if ver == "" {
		ver = devVersion
	}

	switch {
	case Commit == "" && BuildTime == "":
		return fmt.Sprintf("%s (development)", ver)
	case Commit == "":
		return fmt.Sprintf("%s (built at: %s)", ver, BuildTime)
	case BuildTime == "":
		return fmt.Sprintf("%s (commit: %s)", ver, Commit)
	}
	return fmt.Sprintf("%s (commit: %s, built at: %s)", ver, Commit, BuildTime)
}

// AppID is the application id sent with AWS requests, e.g. "aws-cost-report/1.2.3".
func AppID() string {
	ver := Version
	if ver == "" {
		ver = devVersion
	}
	return appName + "/" + ver
}
